package pipeline

import (
	"encoding/csv"
	"io"
	"strings"
)

// ReadRows reads a headerless CSV into ordered rows of text fields.
//
// Genuinely blank lines are dropped; every other row is preserved as-is so
// the one-row-in/one-row-out invariant can be judged against what remains.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// CSVWriter appends records to w under a fixed header, flushing after every
// record so an aborted run still leaves the rows written so far on disk.
type CSVWriter struct {
	cw *csv.Writer
}

// NewCSVWriter writes the header row and returns an appending writer.
func NewCSVWriter(w io.Writer, header []string) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{cw: cw}, nil
}

// Write appends one record.
func (w *CSVWriter) Write(record []string) error {
	if err := w.cw.Write(record); err != nil {
		return err
	}
	w.cw.Flush()
	return w.cw.Error()
}
