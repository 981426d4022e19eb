// Package procsdk provides the wire types and a typed HTTP client for
// the procurement service. Handlers marshal these types; external Go
// consumers import the package instead of hand-rolling requests.
package procsdk
