package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
)

func part(mpn string) digikey.Part {
	return digikey.Part{ManufacturerPartNumber: mpn, DigiKeyPartNumber: "DK-" + mpn}
}

func TestClassify(t *testing.T) {
	t.Run("exact match is case-insensitive and order-stable", func(t *testing.T) {
		cls := match.Classify("ABC123", []digikey.Part{part("ABC123"), part("abc123")})
		if cls.Exact == nil || cls.Exact.ManufacturerPartNumber != "ABC123" {
			t.Fatalf("expected first candidate as exact match, got %#v", cls.Exact)
		}
		// The second candidate still contains the query, so it lands in the close set.
		if len(cls.Close) != 1 || cls.Close[0].ManufacturerPartNumber != "abc123" {
			t.Fatalf("unexpected close set: %#v", cls.Close)
		}
	})

	t.Run("exact match beats earlier close match", func(t *testing.T) {
		cls := match.Classify("R1", []digikey.Part{part("R10"), part("R1")})
		if cls.Exact == nil || cls.Exact.ManufacturerPartNumber != "R1" {
			t.Fatalf("expected R1 as exact match, got %#v", cls.Exact)
		}
		if len(cls.Close) != 1 || cls.Close[0].ManufacturerPartNumber != "R10" {
			t.Fatalf("unexpected close set: %#v", cls.Close)
		}
	})

	t.Run("close set preserves service order and excludes non-matches", func(t *testing.T) {
		cls := match.Classify("LM358", []digikey.Part{part("LM358N"), part("NE555"), part("lm358dr")})
		if cls.Exact != nil {
			t.Fatalf("expected no exact match, got %#v", cls.Exact)
		}
		if len(cls.Close) != 2 || cls.Close[0].ManufacturerPartNumber != "LM358N" || cls.Close[1].ManufacturerPartNumber != "lm358dr" {
			t.Fatalf("unexpected close set: %#v", cls.Close)
		}
	})

	t.Run("no candidates yields empty classification", func(t *testing.T) {
		cls := match.Classify("XYZ", nil)
		if cls.Exact != nil || len(cls.Close) != 0 {
			t.Fatalf("unexpected classification: %#v", cls)
		}
	})
}

func TestFootprint(t *testing.T) {
	t.Run("returns first qualifying parameter value", func(t *testing.T) {
		params := []digikey.Parameter{
			{Parameter: "Voltage - Rated", Value: "16V"},
			{Parameter: "Package / Case", Value: "0402"},
			{Parameter: "Supplier Device Package", Value: "0402 (1005 Metric)"},
		}
		if got := match.Footprint(params); got != "0402" {
			t.Fatalf("expected first qualifying value, got %q", got)
		}
	})

	t.Run("name comparison is case-insensitive", func(t *testing.T) {
		params := []digikey.Parameter{{Parameter: "FOOTPRINT", Value: "SOT-23"}}
		if got := match.Footprint(params); got != "SOT-23" {
			t.Fatalf("unexpected footprint: %q", got)
		}
	})

	t.Run("falls back to N/A", func(t *testing.T) {
		params := []digikey.Parameter{{Parameter: "Tolerance", Value: "1%"}}
		if got := match.Footprint(params); got != "N/A" {
			t.Fatalf("expected N/A, got %q", got)
		}
	})
}

type fnSelector struct {
	f func(ctx context.Context, query string, close []digikey.Part) (int, error)
}

func (s fnSelector) Select(ctx context.Context, query string, close []digikey.Part) (int, error) {
	return s.f(ctx, query, close)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("exact match wins without consulting the selector", func(t *testing.T) {
		cls := match.Classify("R1", []digikey.Part{part("R10"), part("R1")})
		sel := fnSelector{f: func(context.Context, string, []digikey.Part) (int, error) {
			t.Fatal("selector must not be called for exact matches")
			return -1, nil
		}}
		outcome, p := match.Resolve(ctx, "R1", cls, sel)
		if outcome != match.OutcomeExact || p == nil || p.ManufacturerPartNumber != "R1" {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})

	t.Run("selector index addresses the full close set", func(t *testing.T) {
		cls := match.Classification{Close: []digikey.Part{
			part("Q1A"), part("Q1B"), part("Q1C"), part("Q1D"), part("Q1E"), part("Q1F"), part("Q1G"),
		}}
		sel := fnSelector{f: func(context.Context, string, []digikey.Part) (int, error) {
			return 6, nil
		}}
		outcome, p := match.Resolve(ctx, "Q1", cls, sel)
		if outcome != match.OutcomeManual || p == nil || p.ManufacturerPartNumber != "Q1G" {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})

	t.Run("skip yields no selection", func(t *testing.T) {
		cls := match.Classification{Close: []digikey.Part{part("Q1A")}}
		outcome, p := match.Resolve(ctx, "Q1", cls, match.SkipSelector{})
		if outcome != match.OutcomeNoSelection || p != nil {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})

	t.Run("selector error degrades to no selection", func(t *testing.T) {
		cls := match.Classification{Close: []digikey.Part{part("Q1A")}}
		sel := fnSelector{f: func(context.Context, string, []digikey.Part) (int, error) {
			return 0, errors.New("selector unavailable")
		}}
		outcome, p := match.Resolve(ctx, "Q1", cls, sel)
		if outcome != match.OutcomeNoSelection || p != nil {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})

	t.Run("out-of-range selection degrades to no selection", func(t *testing.T) {
		cls := match.Classification{Close: []digikey.Part{part("Q1A")}}
		sel := fnSelector{f: func(context.Context, string, []digikey.Part) (int, error) {
			return 5, nil
		}}
		outcome, p := match.Resolve(ctx, "Q1", cls, sel)
		if outcome != match.OutcomeNoSelection || p != nil {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})

	t.Run("empty candidates resolve to no match", func(t *testing.T) {
		outcome, p := match.Resolve(ctx, "XYZ", match.Classification{}, match.SkipSelector{})
		if outcome != match.OutcomeNoMatch || p != nil {
			t.Fatalf("unexpected resolution: %v %#v", outcome, p)
		}
	})
}
