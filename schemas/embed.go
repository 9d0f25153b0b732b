// Package schemas holds the JSON Schemas for model replies and analysis output.
package schemas

import "embed"

// Files contains every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS
