package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/partscout/partscout/internal/pipeline"
)

func TestNewRatePacer(t *testing.T) {
	t.Parallel()

	t.Run("non-positive rate disables pacing", func(t *testing.T) {
		p := pipeline.NewRatePacer(0)
		start := time.Now()
		for i := 0; i < 100; i++ {
			if err := p.Pace(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("disabled pacer waited %s", elapsed)
		}
	})

	t.Run("cancelled context unblocks the wait", func(t *testing.T) {
		p := pipeline.NewRatePacer(0.001)
		ctx, cancel := context.WithCancel(context.Background())
		// First token is available immediately; the second forces a wait.
		if err := p.Pace(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cancel()
		if err := p.Pace(ctx); err == nil {
			t.Fatal("expected error from cancelled context")
		}
	})
}
