// Package gemini implements an automated close-match selector backed by the
// Gemini API, for batch runs where no human is available to disambiguate.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
)

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

// Selector asks the model to pick among close-match candidates.
type Selector struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Selector, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Selector{
		client: client,
		model:  strings.TrimSpace(cfg.Model),
	}, nil
}

type responseSchema struct {
	Selection int `json:"selection"`
}

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"selection": {Type: genai.TypeInteger},
	},
	Required: []string{"selection"},
}

// Select presents up to the first MaxShown candidates to the model and maps
// its answer to a 0-based index, or -1 when the model declines.
func (s *Selector) Select(ctx context.Context, query string, candidates []digikey.Part) (int, error) {
	shown := candidates
	if len(shown) > match.MaxShown {
		shown = shown[:match.MaxShown]
	}

	resp, err := s.client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(buildPrompt(query, shown)),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			ResponseMIMEType: "application/json",
			ResponseSchema:   outputSchema,
		},
	)
	if err != nil {
		return -1, err
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return -1, fmt.Errorf("gemini: parse structured json: %w", err)
	}
	if parsed.Selection < 1 || parsed.Selection > len(shown) {
		return -1, nil
	}
	return parsed.Selection - 1, nil
}

func buildPrompt(query string, shown []digikey.Part) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(`
You are selecting an electronic component from distributor search results. The query below did not match any candidate's manufacturer part number exactly; the candidates are near matches.

Return ONLY a single JSON object with one key:
- selection (integer): the 1-based number of the candidate that is the same component the query refers to (for example a packaging or reel variant), or 0 if none clearly is.

Rules:
- Prefer candidates whose part number differs from the query only by packaging/reel/tape suffixes.
- When unsure, return 0.
`))
	b.WriteString("\n\nQuery: ")
	b.WriteString(query)
	b.WriteString("\nCandidates:\n")
	for i, p := range shown {
		fmt.Fprintf(&b, "%d. %s | %s\n", i+1, p.ManufacturerPartNumber, p.ProductDescription)
	}
	return b.String()
}
