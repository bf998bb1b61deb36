package server

import (
	"net/http"

	"keypub/internal/api"
)

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if !s.readForm(w, r) {
		return
	}

	record, err := s.service.Publish(r.Context(), r.PostForm.Get("public_key"), formValue(r, "note"))
	if err != nil {
		s.writeTextError(w, r, err)
		return
	}

	s.log().Info("key published", "id", record.ID, "has_note", record.HasNote())
	http.Redirect(w, r, "/k/"+record.ID, http.StatusSeeOther)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeTextError(w, r, err)
		return
	}

	resp := s.service.Response(record)
	s.renderPage(w, r, http.StatusOK, "record.html", recordPage{
		ID:        resp.ID,
		PublicKey: resp.PublicKey,
		Note:      resp.Note,
		OpenSSH:   resp.OpenSSH,
		ShareURL:  resp.ShareURL,
	}, "no-cache")
}

func (s *Server) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	var req api.KeyPublishRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	record, err := s.service.Publish(r.Context(), req.PublicKey, req.Note)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}

	s.log().Info("key published", "id", record.ID, "has_note", record.HasNote())
	w.Header().Set("Location", "/v1/keys/"+record.ID)
	s.writeJSON(w, http.StatusCreated, s.service.Response(record))
}

func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.Lookup(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.service.Response(record))
}
