// Package scenario provides the embedded demo data that seeds the client.
package scenario

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
