package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/nfalab/machina/pkg/errors"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("http://localhost:9000/", map[string]string{"Authorization": "Bearer token"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.BaseURL() != "http://localhost:9000" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", client.BaseURL())
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientRejectsBadScheme(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "localhost:9000"},
		{"file scheme", "file:///etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClient(tt.url, nil); err == nil {
				t.Errorf("NewClient(%q) should fail", tt.url)
			}
		})
	}
}

func TestClientPostJSON(t *testing.T) {
	type request struct {
		Name string `json:"name"`
	}
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Name != "machina" {
			t.Errorf("request name = %q, want %q", req.Name, "machina")
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	var resp response
	if err := client.PostJSON(context.Background(), "/echo", request{Name: "machina"}, &resp); err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("PostJSON() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientPostJSONDefaultHeaders(t *testing.T) {
	var received string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Token")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, map[string]string{"X-Token": "secret"})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	if err := client.PostJSON(context.Background(), "/", struct{}{}, nil); err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if received != "secret" {
		t.Errorf("default header = %q, want %q", received, "secret")
	}
}

func TestClientPostJSONNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, nil)

	err := client.PostJSON(context.Background(), "/missing", struct{}{}, nil)
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("PostJSON() error = %v, want NOT_FOUND code", err)
	}
}

func TestClientPostJSONServiceRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "left-recursive rule"})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, nil)

	err := client.PostJSON(context.Background(), "/convert", struct{}{}, nil)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Fatalf("PostJSON() error = %v, want INVALID_INPUT code", err)
	}
	if msg := apperrors.UserMessage(err); msg != "service rejected request: left-recursive rule" {
		t.Errorf("PostJSON() message = %q, want service message surfaced", msg)
	}
}

func TestClientPostJSONServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, nil)

	err := client.PostJSON(context.Background(), "/convert", struct{}{}, nil)
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("PostJSON() error = %v, want NETWORK_ERROR code", err)
	}
}

func TestClientPostJSONConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse every connection

	client, _ := NewClient(server.URL, nil)

	err := client.PostJSON(context.Background(), "/convert", struct{}{}, nil)
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("PostJSON() error = %v, want NETWORK_ERROR code", err)
	}
}

func TestClientPostJSONDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, nil)

	var out map[string]string
	err := client.PostJSON(context.Background(), "/convert", struct{}{}, &out)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("PostJSON() error = %v, want INVALID_FORMAT code", err)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error key", `{"error": "bad automaton"}`, "bad automaton"},
		{"message key", `{"message": "try again"}`, "try again"},
		{"plain text", "plain failure", "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := NewClient(server.URL, nil)
			err := client.PostJSON(context.Background(), "/", struct{}{}, nil)
			if err == nil {
				t.Fatal("PostJSON() should fail for 400")
			}
			want := "service rejected request: " + tt.want
			if got := apperrors.UserMessage(err); got != want {
				t.Errorf("message = %q, want %q", got, want)
			}
		})
	}
}
