package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

// WriteEnvelope writes a Powerdrill-style {code, message, data} response.
func WriteEnvelope(t *testing.T, w http.ResponseWriter, code int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"code": code, "message": message}
	if data != nil {
		body["data"] = data
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("Failed to encode envelope: %v", err)
	}
}

// TempFile creates a file of size bytes under t.TempDir and returns its path.
func TempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := bytes.Repeat([]byte("x"), size)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write temp file %s: %v", name, err)
	}
	return path
}

// DecodeBody unmarshals a request body for assertions.
func DecodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode request body: %v", err)
	}
}
