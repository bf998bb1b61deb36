package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Browser pages.
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /publish", s.handlePublish)
	mux.HandleFunc("GET /k/{id}", s.handleRecord)
	mux.Handle("GET /static/", s.staticAssets())

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// JSON API.
	mux.HandleFunc("POST /v1/keys", s.handleCreateKey)
	mux.HandleFunc("GET /v1/keys/{id}", s.handleGetKey)

	return s.withRequestLogging(mux)
}
