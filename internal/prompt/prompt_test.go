package prompt_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
	"github.com/partscout/partscout/internal/prompt"
)

func candidates(mpns ...string) []digikey.Part {
	out := make([]digikey.Part, 0, len(mpns))
	for _, m := range mpns {
		out = append(out, digikey.Part{ManufacturerPartNumber: m, DigiKeyPartNumber: "DK-" + m})
	}
	return out
}

func TestNewSelectorPipedInputSkips(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()

	sel := prompt.NewSelector(r, &bytes.Buffer{})
	if _, ok := sel.(match.SkipSelector); !ok {
		t.Fatalf("expected skip selector for piped input, got %T", sel)
	}
}

func TestSelector(t *testing.T) {
	ctx := context.Background()

	t.Run("valid pick returns 0-based index", func(t *testing.T) {
		var out bytes.Buffer
		sel := prompt.NewSelector(strings.NewReader("2\n"), &out)
		idx, err := sel.Select(ctx, "R1", candidates("R10", "R12", "R15"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if idx != 1 {
			t.Fatalf("expected index 1, got %d", idx)
		}
		if !strings.Contains(out.String(), "R12") {
			t.Fatalf("candidate table missing MPN: %q", out.String())
		}
	})

	t.Run("empty input skips", func(t *testing.T) {
		var out bytes.Buffer
		sel := prompt.NewSelector(strings.NewReader("\n"), &out)
		idx, err := sel.Select(ctx, "R1", candidates("R10"))
		if err != nil || idx != -1 {
			t.Fatalf("expected skip, got %d, %v", idx, err)
		}
	})

	t.Run("non-numeric and out-of-range input skips", func(t *testing.T) {
		for _, in := range []string{"x\n", "0\n", "4\n", "-1\n"} {
			var out bytes.Buffer
			sel := prompt.NewSelector(strings.NewReader(in), &out)
			idx, err := sel.Select(ctx, "R1", candidates("R10", "R12", "R15"))
			if err != nil || idx != -1 {
				t.Fatalf("input %q: expected skip, got %d, %v", in, idx, err)
			}
		}
	})

	t.Run("pick beyond the shown cap still selects", func(t *testing.T) {
		var out bytes.Buffer
		sel := prompt.NewSelector(strings.NewReader("7\n"), &out)
		idx, err := sel.Select(ctx, "Q1", candidates("Q1A", "Q1B", "Q1C", "Q1D", "Q1E", "Q1F", "Q1G"))
		if err != nil || idx != 6 {
			t.Fatalf("expected index 6, got %d, %v", idx, err)
		}
		// Only the first five candidates are rendered.
		if strings.Contains(out.String(), "Q1F") {
			t.Fatalf("table should cap at five candidates: %q", out.String())
		}
	})

	t.Run("multibyte description truncates cleanly", func(t *testing.T) {
		long := strings.Repeat("x", 49) + "Ω trailing text past the display limit"
		var out bytes.Buffer
		sel := prompt.NewSelector(strings.NewReader("\n"), &out)
		if _, err := sel.Select(ctx, "R1", []digikey.Part{
			{ManufacturerPartNumber: "R10", DigiKeyPartNumber: "DK-R10", ProductDescription: long},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.ContainsRune(out.String(), '�') {
			t.Fatalf("truncation split a multibyte character: %q", out.String())
		}
		if !strings.Contains(out.String(), "Ω...") {
			t.Fatalf("expected truncated description ending at the limit: %q", out.String())
		}
	})

	t.Run("EOF without newline skips", func(t *testing.T) {
		var out bytes.Buffer
		sel := prompt.NewSelector(strings.NewReader(""), &out)
		idx, err := sel.Select(ctx, "R1", candidates("R10"))
		if err != nil || idx != -1 {
			t.Fatalf("expected skip on EOF, got %d, %v", idx, err)
		}
	})
}
