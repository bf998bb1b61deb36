package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"

	"keypub/internal/api"
)

// formatCLIError turns err into the lines printed on stderr: the error
// itself, then hints for the failures users can act on.
func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{err.Error()}
	for _, hint := range hintsFor(err) {
		if !slices.Contains(lines, hint) {
			lines = append(lines, hint)
		}
	}
	return lines
}

func hintsFor(err error) []string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == "":
			return []string{"hint: verify KEYPUB_API_URL points to a keypub server."}
		case apiErr.Status >= http.StatusInternalServerError:
			return []string{"hint: server returned an internal error; check server logs for details."}
		case apiErr.Status == http.StatusBadRequest:
			return []string{"hint: public keys are one line of Base64 encoding a 32-byte ED25519 key."}
		case apiErr.Status == http.StatusNotFound:
			return []string{"hint: check the id against the share link."}
		}
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return []string{"hint: request timed out; check server health or increase KEYPUB_HTTP_TIMEOUT."}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return []string{
			"hint: ensure a keypub server is running at KEYPUB_API_URL.",
			"hint: start one with: keypub srv",
		}
	}
	return nil
}
