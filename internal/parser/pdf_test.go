package parser

import (
	"context"
	"strings"
	"testing"
)

func TestPDFParser_SupportedFormats(t *testing.T) {
	p := NewPDFParser()
	formats := p.SupportedFormats()
	if len(formats) != 1 || formats[0] != "pdf" {
		t.Errorf("Expected [pdf], got %v", formats)
	}
}

func TestPDFParser_Extract(t *testing.T) {
	p := NewPDFParser()
	ctx := context.Background()

	t.Run("EmptyData", func(t *testing.T) {
		if _, err := p.Extract(ctx, nil); err == nil {
			t.Error("Expected error for empty data")
		}
	})

	t.Run("NotAPDF", func(t *testing.T) {
		if _, err := p.Extract(ctx, []byte("plain text, not a PDF")); err == nil {
			t.Error("Expected error for non-PDF data")
		}
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		// A valid magic number with garbage after it must not panic
		data := []byte("%PDF-1.7\ngarbage that is not a valid body or xref table")
		if _, err := p.Extract(ctx, data); err == nil {
			t.Error("Expected error for truncated PDF")
		}
	})

	t.Run("ErrorMentionsPDF", func(t *testing.T) {
		_, err := p.Extract(ctx, []byte("x"))
		if err == nil {
			t.Fatal("Expected error")
		}
		if !strings.Contains(strings.ToLower(err.Error()), "pdf") {
			t.Errorf("Error should mention PDF, got: %v", err)
		}
	})
}
