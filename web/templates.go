// Package web carries the embedded template assets so the binary and
// the test suite render identically regardless of working directory.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
