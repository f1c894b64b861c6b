package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/partscout/partscout/internal/pipeline"
	"github.com/partscout/partscout/internal/reformat"
)

// ReformatConfig wires the reformat pipeline.
type ReformatConfig struct {
	InputPath  string
	OutputPath string
	Component  reformat.Component
	Logger     *log.Logger
}

// RunReformat reads the raw marketplace export and writes the normalized CSV.
// Malformed rows produce a marker row carrying whatever identifiers the input
// had, so output row count always equals non-blank input row count.
func RunReformat(ctx context.Context, cfg ReformatConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	runStart := time.Now()

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
	logger.Printf("loaded %d rows from %s", len(rows), cfg.InputPath)

	outF, err := os.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = outF.Close()
	}()

	header := reformat.Header(cfg.Component)
	out, err := pipeline.NewCSVWriter(outF, header)
	if err != nil {
		return err
	}

	parsed := 0
	malformed := 0
	for i, rec := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := reformat.ParseRow(cfg.Component, rec)
		if err != nil {
			if !errors.Is(err, reformat.ErrMalformedSpec) {
				return err
			}
			malformed++
			logger.Printf("row %d/%d: %v", i+1, len(rows), err)
			if err := out.Write(markerRecord(rec, len(header))); err != nil {
				return fmt.Errorf("write output row: %w", err)
			}
			continue
		}

		parsed++
		if err := out.Write(row.Record(cfg.Component)); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	logger.Printf(
		"reformat complete: parsed=%d malformed=%d duration=%s output=%s",
		parsed,
		malformed,
		time.Since(runStart).Round(time.Millisecond),
		cfg.OutputPath,
	)
	return outF.Close()
}

// markerRecord keeps the identifier columns of a malformed row and leaves the
// engineering fields empty, preserving row-count parity.
func markerRecord(rec []string, width int) []string {
	out := make([]string, width)
	if len(rec) > 0 {
		out[0] = rec[0]
	}
	if len(rec) > 1 {
		out[1] = rec[1]
	}
	return out
}
