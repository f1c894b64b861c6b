// Package app orchestrates the two pipelines: per-row processing loops,
// progress logging, and output file handling.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
	"github.com/partscout/partscout/internal/pipeline"
	"github.com/partscout/partscout/internal/util"
)

// SearchConfig wires the search pipeline's collaborators. All of them are
// injected so tests can run against mocks without real time or network.
type SearchConfig struct {
	InputPath  string
	OutputPath string

	Client   *digikey.Client
	Selector match.Selector
	Pacer    pipeline.Pacer
	Logger   *log.Logger
}

// RunSearch authenticates once, then processes the input CSV row by row:
// lookup, classify, resolve, append output row, pace. Per-row lookup failures
// produce an error-marker row and never abort the run.
func RunSearch(ctx context.Context, cfg SearchConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	runID := fmt.Sprintf("run-%d", time.Now().UnixNano())
	logf := func(format string, args ...any) {
		prefix := make([]any, 0, len(args)+1)
		prefix = append(prefix, runID)
		prefix = append(prefix, args...)
		logger.Printf("run=%s "+format, prefix...)
	}
	runStart := time.Now()

	if err := cfg.Client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate: %s", util.RedactSecrets(err.Error()))
	}
	logf("obtained api token")

	inF, err := os.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = inF.Close()
	}()

	rows, err := pipeline.ReadRows(inF)
	if err != nil {
		return fmt.Errorf("read input csv: %w", err)
	}
	logf("loaded %d rows from %s", len(rows), cfg.InputPath)

	outF, err := os.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = outF.Close()
	}()

	out, err := pipeline.NewCSVWriter(outF, pipeline.SearchHeader())
	if err != nil {
		return err
	}

	counts := make(map[match.Outcome]int)
	for i, rec := range rows {
		query := strings.TrimSpace(rec[0])
		if query == "" {
			logf("row %d/%d: empty part number, skipping", i+1, len(rows))
			continue
		}

		row := processQuery(ctx, cfg, logf, i+1, len(rows), query)
		counts[row.MatchType]++
		if err := out.Write(row.Record()); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}

		if err := cfg.Pacer.Pace(ctx); err != nil {
			return err
		}
	}

	logf(
		"search complete: exact=%d manual=%d noSelection=%d noMatch=%d error=%d duration=%s output=%s",
		counts[match.OutcomeExact],
		counts[match.OutcomeManual],
		counts[match.OutcomeNoSelection],
		counts[match.OutcomeNoMatch],
		counts[match.OutcomeError],
		time.Since(runStart).Round(time.Millisecond),
		cfg.OutputPath,
	)
	return outF.Close()
}

func processQuery(ctx context.Context, cfg SearchConfig, logf func(string, ...any), n, total int, query string) pipeline.SearchRow {
	logf("row %d/%d: searching for %q", n, total, query)

	parts, err := cfg.Client.Search(ctx, query)
	if err != nil {
		logf("row %d/%d: lookup failed: %s", n, total, util.RedactSecrets(err.Error()))
		return pipeline.NewSearchRow(query, match.OutcomeError, nil)
	}
	logf("row %d/%d: api returned %d parts", n, total, len(parts))

	cls := match.Classify(query, parts)
	outcome, part := match.Resolve(ctx, query, cls, cfg.Selector)
	switch outcome {
	case match.OutcomeExact:
		logf("row %d/%d: exact match %s", n, total, part.ManufacturerPartNumber)
	case match.OutcomeManual:
		logf("row %d/%d: manual selection %s", n, total, part.ManufacturerPartNumber)
	case match.OutcomeNoSelection:
		logf("row %d/%d: %d close matches, none selected", n, total, len(cls.Close))
	default:
		logf("row %d/%d: no match", n, total)
	}
	return pipeline.NewSearchRow(query, outcome, part)
}
