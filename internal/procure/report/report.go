// Package report renders opening records into a plain-text audit
// document. Rendering is a pure function of the record, so rendering the
// same record twice yields byte-identical output.
package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/upvn/procure/internal/procure/domain"
)

const openingTemplate = `BID OPENING RECORD
==================

Project:      {{.Title}} ({{.ProjectID}})
Description:  {{.Description}}
Currency:     {{.Currency}}
Closing time: {{rfc3339 .ClosingTime}}
Opened by:    {{.OpenerName}}{{if .OpenedAt}}
Opened at:    {{rfc3339 .OpenedAt}}{{end}}

Entries ({{len .Entries}}):
{{range $i, $e := .Entries}}
{{printf "%3d" (inc $i)}}. {{$e.DisplayName}}{{if $e.HasBid}}
     Amount:    {{$e.Amount}} {{$.Currency}}
     Submitted: {{rfc3339 $e.BidTime}}{{range $e.Attachments}}
     Attachment: {{.}}{{end}}{{else}}
     No bid submitted{{end}}
{{end}}`

var tmpl = template.Must(template.New("opening").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"rfc3339": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.UTC().Format(time.RFC3339)
		case *time.Time:
			if t == nil {
				return ""
			}
			return t.UTC().Format(time.RFC3339)
		}
		return ""
	},
}).Parse(openingTemplate))

// RenderOpeningRecord produces the downloadable plain-text form of an
// opening record.
func RenderOpeningRecord(rec domain.OpeningRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("render opening record: %w", err)
	}
	return buf.Bytes(), nil
}
