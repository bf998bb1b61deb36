package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"keypub/internal/models"
)

//go:embed uiassets/templates/*.html uiassets/static/*
var uiFS embed.FS

var pageTemplates = template.Must(template.ParseFS(uiFS, "uiassets/templates/*.html"))

type formPage struct {
	KeyMaxBytes  int
	NoteMaxBytes int
}

type recordPage struct {
	ID        string
	PublicKey string
	Note      string
	OpenSSH   string
	ShareURL  string
}

// staticAssets serves the embedded stylesheet. Directory paths are 404s.
func (s *Server) staticAssets() http.Handler {
	static, err := fs.Sub(uiFS, "uiassets/static")
	if err != nil {
		return http.NotFoundHandler()
	}
	files := http.StripPrefix("/static/", http.FileServerFS(static))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	// The pattern "GET /{$}" only matches the root; anything else falls through to 404.
	s.renderPage(w, r, http.StatusOK, "form.html", formPage{
		KeyMaxBytes:  models.PublicKeyMaxBytes,
		NoteMaxBytes: models.NoteMaxBytes,
	}, "no-cache")
}

// renderPage executes a template into a buffer first so a failing template
// never leaves a half-written 200 response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any, cacheControl string) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.writeTextError(w, r, internal(err, ErrCodeRenderFailed))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
