package server

import (
	"errors"
	"net/http"
)

// httpError ties a handler failure to its status and error codes.
type httpError struct {
	status int
	code   string
	num    int
	err    error
}

func (e *httpError) Error() string { return e.err.Error() }

func (e *httpError) Unwrap() error { return e.err }

// newHTTPError wraps err unless it already carries a classification.
func newHTTPError(status int, code string, num int, err error) error {
	var existing *httpError
	if errors.As(err, &existing) {
		return existing
	}
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	return &httpError{status: status, code: code, num: num, err: err}
}

func invalid(err error, num int) error {
	return newHTTPError(http.StatusBadRequest, "invalid_argument", num, err)
}

func notFound(err error, num int) error {
	return newHTTPError(http.StatusNotFound, "not_found", num, err)
}

func unsupportedMedia(err error) error {
	return newHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type", ErrCodeUnsupportedMedia, err)
}

func internal(err error, num int) error {
	return newHTTPError(http.StatusInternalServerError, "internal", num, err)
}

func storeFailure(err error) error {
	return internal(err, ErrCodeStoreFailure)
}

// failure is what a client is told about an error.
type failure struct {
	status  int
	code    string
	num     int
	message string
}

// describe resolves err into a client-facing failure. Anything unclassified,
// and every 5xx, is reported as "internal error".
func describe(err error) failure {
	f := failure{status: http.StatusInternalServerError, code: "internal", num: ErrCodeInternal, message: "internal error"}

	var he *httpError
	if !errors.As(err, &he) {
		return f
	}
	f.status, f.code, f.num = he.status, he.code, he.num
	if f.num == 0 {
		f.num = defaultErrorCodeByStatus(f.status)
	}
	if f.status < http.StatusInternalServerError {
		f.message = he.Error()
	}
	return f
}
