package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Amount
	}{
		{"500", 50000},
		{"500.00", 50000},
		{"500.5", 50050},
		{"0.01", 1},
		{"1234567.89", 123456789},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "-5", "+5", "1.234", "abc", ".50", "1,5", "1.-5", "1.+5"} {
		_, err := ParseAmount(bad)
		require.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestAmountString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "500.00", Amount(50000).String())
	require.Equal(t, "0.05", Amount(5).String())
	require.Equal(t, "12.30", Amount(1230).String())
}
