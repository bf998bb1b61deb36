package server

import (
	"net/http"

	"keypub/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.StoreInfo(r.Context())
	if err != nil {
		s.writeJSONError(w, r, storeFailure(err))
		return
	}

	resp := api.InfoResponse{
		SiteHost:      s.siteHost,
		SchemaVersion: info.SchemaVersion,
		TotalKeys:     info.TotalKeys,
	}

	s.writeJSON(w, http.StatusOK, resp)
}
