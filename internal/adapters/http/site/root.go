// Package site serves the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the landing page to the exact root path of mux. Other
// unmatched paths keep the mux's 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", http.FileServer(FS()))
}
