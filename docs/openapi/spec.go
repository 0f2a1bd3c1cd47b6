// Package openapi embeds the OpenAPI description of the read-only HTTP API.
package openapi

import _ "embed"

// LegislationSpec is the OpenAPI 3 document for /api/v1.
//
//go:embed legislation.yaml
var LegislationSpec []byte

// Spec returns a copy of the embedded document.
func Spec() []byte {
	return append([]byte(nil), LegislationSpec...)
}
