package tika

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"educhat-go/internal/config"
)

func TestExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tika" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Accept") != "text/plain" {
			t.Errorf("Accept header = %q, want text/plain", r.Header.Get("Accept"))
		}
		if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "pdf") {
			t.Errorf("Content-Type = %q, want a pdf mime type", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "raw pdf bytes" {
			t.Errorf("body = %q", string(body))
		}
		w.Write([]byte("extracted plain text"))
	}))
	defer server.Close()

	client := NewClient(config.TikaConfig{ServerURL: server.URL})

	got, err := client.ExtractText(strings.NewReader("raw pdf bytes"), "paper.pdf")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if got != "extracted plain text" {
		t.Errorf("ExtractText = %q", got)
	}
}

func TestExtractTextServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unprocessable", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(config.TikaConfig{ServerURL: server.URL})

	if _, err := client.ExtractText(strings.NewReader("bad bytes"), "broken.docx"); err == nil {
		t.Error("expected an error for a non-200 Tika response")
	}
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"paper.pdf", "application/pdf"},
		{"noext", "application/octet-stream"},
		{"weird.zzz", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := detectMimeType(tt.fileName); got != tt.want {
			t.Errorf("detectMimeType(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}
