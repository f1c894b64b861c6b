package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/partscout/partscout/internal/digikey"
)

func TestBuildPrompt(t *testing.T) {
	got := buildPrompt("LM358", []digikey.Part{
		{ManufacturerPartNumber: "LM358N", ProductDescription: "IC OPAMP GP 2 CIRCUIT 8DIP"},
		{ManufacturerPartNumber: "LM358DR", ProductDescription: "IC OPAMP GP 2 CIRCUIT 8SOIC"},
	})
	if !strings.Contains(got, "Query: LM358") {
		t.Fatalf("prompt missing query: %q", got)
	}
	if !strings.Contains(got, "1. LM358N | IC OPAMP GP 2 CIRCUIT 8DIP") {
		t.Fatalf("prompt missing first candidate: %q", got)
	}
	if !strings.Contains(got, "2. LM358DR") {
		t.Fatalf("prompt missing second candidate: %q", got)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, Config{Model: "m"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := New(ctx, Config{APIKey: "k"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}
