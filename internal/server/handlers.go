package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"keypub/internal/api"
)

const (
	maxBodyBytes    = 64 << 10 // 64 KiB, form and JSON alike
	formContentType = "application/x-www-form-urlencoded"
)

// report logs err with request context and returns what the client may see.
// Detail of server-side failures stays in the log.
func (s *Server) report(r *http.Request, err error) failure {
	f := describe(err)
	attrs := []any{
		"status", f.status,
		"code", f.code,
		"error_code", f.num,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	}
	if f.status >= http.StatusInternalServerError {
		s.log().Error("request failed", attrs...)
	} else {
		s.log().Debug("request rejected", attrs...)
	}
	return f
}

// writeJSONError answers /v1 routes.
func (s *Server) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	f := s.report(r, err)
	s.writeJSON(w, f.status, api.ErrorResponse{Error: f.message, Code: f.code, ErrorCode: f.num})
}

// writeTextError answers browser routes with the bare message.
func (s *Server) writeTextError(w http.ResponseWriter, r *http.Request, err error) {
	f := s.report(r, err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.message)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// bodyError maps a body read failure to a 400, singling out oversized bodies.
func bodyError(err error, num int, message string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return invalid(errors.New("request body too large"), ErrCodeRequestTooLarge)
	}
	return invalid(errors.New(message), num)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSONError(w, r, bodyError(err, ErrCodeInvalidJSON, "invalid JSON payload"))
		return false
	}
	return true
}

// readForm accepts only urlencoded bodies. r.ParseForm silently skips
// multipart and unknown types, which would surface as a missing key.
func (s *Server) readForm(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != formContentType {
		s.writeTextError(w, r, unsupportedMedia(fmt.Errorf("expected %s form body", formContentType)))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeTextError(w, r, bodyError(err, ErrCodeInvalidForm, "invalid form body"))
		return false
	}
	return true
}

// formValue returns nil when the field is absent from the posted form.
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
