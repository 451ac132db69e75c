// Package docs embeds the OpenAPI document served under /swagger.
package docs

import _ "embed"

// SwaggerJSON is the OpenAPI 2.0 description of the HTTP API.
//
//go:embed swagger.json
var SwaggerJSON []byte
