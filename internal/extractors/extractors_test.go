package extractors

import (
	"context"
	"strings"
	"testing"
)

func TestPlainExtractor_Supports(t *testing.T) {
	e := NewPlainExtractor()

	tests := []struct {
		contentType string
		expected    bool
	}{
		{"text/plain", true},
		{"text/plain; charset=utf-8", true},
		{"text/markdown", true},
		{"TEXT/PLAIN", true},
		{"application/pdf", false},
		{"image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := e.Supports(tt.contentType); got != tt.expected {
				t.Errorf("Supports(%q) = %v, expected %v", tt.contentType, got, tt.expected)
			}
		})
	}
}

func TestPlainExtractor_Extract(t *testing.T) {
	e := NewPlainExtractor()
	content := "This agreement is made between Acme Corp and Beta LLC."

	got, err := e.Extract(context.Background(), strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestPDFExtractor_Supports(t *testing.T) {
	e := NewPDFExtractor()

	if !e.Supports("application/pdf") {
		t.Error("expected application/pdf to be supported")
	}
	if e.Supports("text/plain") {
		t.Error("expected text/plain to be unsupported")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if !r.Supports("text/plain") {
		t.Error("expected registry to support text/plain")
	}
	if !r.Supports("application/pdf") {
		t.Error("expected registry to support application/pdf")
	}
	if r.Supports("image/png") {
		t.Error("expected registry to reject image/png")
	}

	content := "plain text body"
	got, err := r.Extract(context.Background(), strings.NewReader(content), int64(len(content)), "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("expected %q, got %q", content, got)
	}

	if _, err := r.Extract(context.Background(), strings.NewReader(""), 0, "image/png"); err == nil {
		t.Error("expected error for unsupported content type")
	}
}
