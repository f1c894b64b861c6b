// Package match classifies part-search candidates against the original query
// and resolves ambiguous results through a pluggable Selector.
package match

import (
	"context"
	"strings"

	"github.com/partscout/partscout/internal/digikey"
)

// Outcome tags the disposition of one input row. The values are the literal
// strings written to the output CSV's "Match Type" column.
type Outcome string

const (
	OutcomeExact       Outcome = "Exact"
	OutcomeManual      Outcome = "Manual Selection"
	OutcomeNoSelection Outcome = "No selection"
	OutcomeNoMatch     Outcome = "No match"
	OutcomeError       Outcome = "Error"
)

// MaxShown caps how many close-match candidates a Selector presents.
// A selection index may still address the full close-match set.
const MaxShown = 5

// Classification splits the service's candidates for one query.
type Classification struct {
	// Exact is the first candidate (service order) whose MPN equals the
	// query case-insensitively, or nil.
	Exact *digikey.Part
	// Close holds candidates, excluding the exact match, whose MPN contains
	// the query case-insensitively. Service order is preserved.
	Close []digikey.Part
}

// Classify partitions candidates into exact and close matches.
func Classify(query string, parts []digikey.Part) Classification {
	query = strings.TrimSpace(query)
	lower := strings.ToLower(query)

	var cls Classification
	for i := range parts {
		mpn := strings.ToLower(parts[i].ManufacturerPartNumber)
		if cls.Exact == nil && mpn == lower {
			cls.Exact = &parts[i]
			continue
		}
		if strings.Contains(mpn, lower) {
			cls.Close = append(cls.Close, parts[i])
		}
	}
	return cls
}

// Footprint scans the parameter list, in order, for the first entry whose name
// contains "case", "package", or "footprint" (case-insensitively) and returns
// its value. Returns "N/A" when no parameter qualifies.
func Footprint(params []digikey.Parameter) string {
	for _, p := range params {
		name := strings.ToLower(p.Parameter)
		if strings.Contains(name, "case") || strings.Contains(name, "package") || strings.Contains(name, "footprint") {
			return p.Value
		}
	}
	return "N/A"
}

// Selector decides among close matches for one query. It returns a 0-based
// index into the full close set, or -1 to skip the row.
type Selector interface {
	Select(ctx context.Context, query string, candidates []digikey.Part) (int, error)
}

// SkipSelector always skips. It is the default for headless batch runs.
type SkipSelector struct{}

func (SkipSelector) Select(context.Context, string, []digikey.Part) (int, error) {
	return -1, nil
}

// Resolve applies the resolution policy: an exact match wins automatically;
// otherwise a non-empty close set is put to the selector; otherwise no match.
// Selector failures and out-of-range selections degrade to no selection so the
// row pipeline continues.
func Resolve(ctx context.Context, query string, cls Classification, sel Selector) (Outcome, *digikey.Part) {
	if cls.Exact != nil {
		return OutcomeExact, cls.Exact
	}
	if len(cls.Close) > 0 {
		idx, err := sel.Select(ctx, query, cls.Close)
		if err != nil || idx < 0 || idx >= len(cls.Close) {
			return OutcomeNoSelection, nil
		}
		return OutcomeManual, &cls.Close[idx]
	}
	return OutcomeNoMatch, nil
}
