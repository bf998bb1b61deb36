package server

import (
	"net/http"
	"strings"
	"testing"
)

func TestFormPage(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv.routes(), "/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); got != "no-cache" {
		t.Fatalf("expected no-cache, got %q", got)
	}
	body := w.Body.String()
	for _, want := range []string{
		`action="/publish"`,
		`method="post"`,
		`name="public_key"`,
		`name="note"`,
		`href="/static/site.css"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("form page is missing %s", want)
		}
	}
}

func TestUIRouting(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		status      int
		contentType string
		cache       string
	}{
		{name: "stylesheet", target: "/static/site.css", status: http.StatusOK, contentType: "text/css", cache: "public, max-age=3600"},
		{name: "static listing", target: "/static/", status: http.StatusNotFound},
		{name: "missing asset", target: "/static/app.js", status: http.StatusNotFound},
		{name: "unknown page", target: "/about", status: http.StatusNotFound},
		{name: "record prefix alone", target: "/k/", status: http.StatusNotFound},
		{name: "publish is post only", target: "/publish", status: http.StatusMethodNotAllowed},
		{name: "api stays json", target: "/v1/info", status: http.StatusOK, contentType: "application/json"},
	}

	srv := newTestServer(t)
	h := srv.routes()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, tt.target)
			if w.Code != tt.status {
				t.Fatalf("GET %s: expected %d, got %d", tt.target, tt.status, w.Code)
			}
			if tt.contentType != "" && !strings.HasPrefix(w.Header().Get("Content-Type"), tt.contentType) {
				t.Fatalf("GET %s: expected %s, got %q", tt.target, tt.contentType, w.Header().Get("Content-Type"))
			}
			if tt.cache != "" && w.Header().Get("Cache-Control") != tt.cache {
				t.Fatalf("GET %s: expected cache %q, got %q", tt.target, tt.cache, w.Header().Get("Cache-Control"))
			}
		})
	}
}
