package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutFromEnv(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{raw: "", want: defaultTimeout},
		{raw: "45s", want: 45 * time.Second},
		{raw: "1m30s", want: 90 * time.Second},
		{raw: "25", want: 25 * time.Second},
		{raw: "0", want: defaultTimeout},
		{raw: "-5s", want: defaultTimeout},
		{raw: "soon", want: defaultTimeout},
	}

	for _, tt := range tests {
		t.Run("value "+tt.raw, func(t *testing.T) {
			t.Setenv(timeoutEnvKey, tt.raw)
			if got := timeoutFromEnv(); got != tt.want {
				t.Fatalf("KEYPUB_HTTP_TIMEOUT=%q: expected %v, got %v", tt.raw, tt.want, got)
			}
		})
	}
}

// keyServer fakes the two key routes; everything else is a JSON 404.
func keyServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/keys", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json request, got %q", got)
		}
		var req KeyPublishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(KeyResponse{ID: "abc", PublicKey: req.PublicKey, ShareURL: "https://keys.example.test/k/abc"})
	})
	mux.HandleFunc("GET /v1/keys/abc", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(KeyResponse{ID: "abc", PublicKey: "k"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "key not found", Code: "not_found", ErrorCode: 2001})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPublishThenGet(t *testing.T) {
	client := NewClient(keyServer(t).URL + "/")
	ctx := context.Background()

	created, err := client.PublishKey(ctx, KeyPublishRequest{PublicKey: "k"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if created.ID != "abc" || created.ShareURL != "https://keys.example.test/k/abc" {
		t.Fatalf("unexpected publish response: %+v", created)
	}

	got, err := client.GetKey(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "abc" {
		t.Fatalf("unexpected get response: %+v", got)
	}
}

func TestErrorResponses(t *testing.T) {
	t.Run("structured", func(t *testing.T) {
		_, err := NewClient(keyServer(t).URL).GetKey(context.Background(), "missing")
		if !IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.ErrorCode != 2001 {
			t.Fatalf("unexpected api error: %#v", err)
		}
		if got := err.Error(); got != "not_found: key not found" {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("plain text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		t.Cleanup(srv.Close)

		err := NewClient(srv.URL).Ping(context.Background())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusBadGateway || apiErr.Code != "" {
			t.Fatalf("unexpected api error: %#v", apiErr)
		}
	})
}
