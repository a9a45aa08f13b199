package frontend

import "embed"

// StaticFiles holds the browser assets served under /static
//
//go:embed static
var StaticFiles embed.FS
