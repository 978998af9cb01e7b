package web

import (
	"net/http"
	"os"
	"path"

	"github.com/rook-computer/cover/internal/assets"
)

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, api APIV1) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(api)))
	mux.HandleFunc("/healthz", handleHealthz)
}

// RegisterUI serves either the embedded preview page or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the server mux:
// - /api/v1/* and /healthz for the API
// - / for the preview UI
func NewDefaultMux(staticDir string, api APIV1) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, api)
	RegisterUI(mux, staticDir)
	return mux
}

// StaticUIHandler serves staticDir when it is an existing directory and
// the embedded UI when it is empty.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	switch {
	case staticDir == "":
		fileServer = http.FileServer(http.FS(assets.WebUI))
	default:
		if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
			return http.NotFoundHandler()
		}
		fileServer = http.FileServer(http.Dir(staticDir))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean("/" + r.URL.Path)
		fileServer.ServeHTTP(w, r)
	})
}
