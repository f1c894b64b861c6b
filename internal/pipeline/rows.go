// Package pipeline holds the row schemas, CSV plumbing, and request pacing
// shared by the search and reformat pipelines.
package pipeline

import (
	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
)

// SearchRow is the stable output schema of the search pipeline. Empty strings
// fill the unused fields when no record was selected.
type SearchRow struct {
	OriginalPart  string
	MatchType     match.Outcome
	DigiKeyPart   string
	Manufacturer  string
	Footprint     string
	DatasheetLink string
	Description   string
}

// SearchHeader returns the stable CSV header for SearchRow.
func SearchHeader() []string {
	return []string{
		"Original Part",
		"Match Type",
		"DigiKey Part",
		"Manufacturer",
		"Footprint",
		"Datasheet Link",
		"Description",
	}
}

// Record returns the row's fields in SearchHeader order.
func (r SearchRow) Record() []string {
	return []string{
		r.OriginalPart,
		string(r.MatchType),
		r.DigiKeyPart,
		r.Manufacturer,
		r.Footprint,
		r.DatasheetLink,
		r.Description,
	}
}

// NewSearchRow builds the output row for a selected part. A nil part yields
// the empty-field marker row for the given outcome.
func NewSearchRow(query string, outcome match.Outcome, part *digikey.Part) SearchRow {
	row := SearchRow{OriginalPart: query, MatchType: outcome}
	if part == nil {
		return row
	}
	datasheet := part.PrimaryDatasheet
	if datasheet == "" {
		datasheet = "N/A"
	}
	row.DigiKeyPart = part.DigiKeyPartNumber
	row.Manufacturer = part.Manufacturer.Value
	row.Footprint = match.Footprint(part.Parameters)
	row.DatasheetLink = datasheet
	row.Description = part.ProductDescription
	return row
}
