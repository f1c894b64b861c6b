package pipeline

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer bounds the request rate against the external lookup service. Pace is
// called once after every processed row regardless of outcome.
type Pacer interface {
	Pace(ctx context.Context) error
}

// NopPacer never waits. Used by tests and the reformat pipeline.
type NopPacer struct{}

func (NopPacer) Pace(context.Context) error { return nil }

type ratePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer returns a token-bucket pacer limited to rps requests per
// second with burst 1. rps <= 0 disables pacing.
func NewRatePacer(rps float64) Pacer {
	if rps <= 0 {
		return NopPacer{}
	}
	return &ratePacer{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (p *ratePacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
