// Package digikey is a minimal HTTP client for the DigiKey part-search API.
//
// It covers exactly the two endpoints the search pipeline needs: the OAuth2
// client-credentials token exchange and keyword part search.
package digikey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	tokenPath  = "v1/oauth2/token"
	searchPath = "services/partsearch/v4/partsearch"

	// searchRecordCount caps how many candidates one query returns.
	searchRecordCount = 10
)

// Config is the explicit client configuration. Credentials are injected here
// rather than read from ambient process state.
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL is the API host, e.g. "https://api.digikey.com".
	// Override for mocks and tests.
	BaseURL string

	// DebugDir, when non-empty, enables the per-query debug artifact:
	// one JSON file per search call, keyed by a sanitized query string.
	DebugDir string

	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client
}

// Client talks to the part-search API. Authenticate must succeed before Search.
type Client struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	debugDir     string

	token string
	http  *http.Client
}

// NewClient validates the configuration and constructs a client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("digikey client id and client secret are required")
	}
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:      base,
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		debugDir:     strings.TrimSpace(cfg.DebugDir),
		http:         hc,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "https://api.digikey.com"
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base URL must include a host (got %q)", raw)
	}
	// Ensure the base path ends with a slash so ResolveReference treats it as a directory.
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Authenticate performs the OAuth2 client-credentials exchange and stores the
// bearer token for subsequent Search calls. Called once per run.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(tokenPath).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode/100 != 2 {
		return newHTTPError("token", resp, b)
	}

	var out tokenResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("parse token response: %w", err)
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return fmt.Errorf("token response missing access_token")
	}
	c.token = strings.TrimSpace(out.AccessToken)
	return nil
}

// Search runs a keyword part search and returns candidate parts in service order.
func (c *Client) Search(ctx context.Context, query string) ([]Part, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if c.token == "" {
		return nil, fmt.Errorf("client is not authenticated")
	}

	payload := searchRequest{
		Keywords:            query,
		SearchOptions:       "ManufacturerPart",
		RecordCount:         searchRecordCount,
		RecordStartPosition: 0,
		Sort: searchSort{
			Option:          "SortByDigiKeyPartNumber",
			Direction:       "Ascending",
			SortParameterID: 0,
		},
		RequestedQuantity: 0,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(searchPath).String(), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.captureDebug(query, b, resp.StatusCode, rb)

	if resp.StatusCode/100 != 2 {
		return nil, newHTTPError("partSearch", resp, rb)
	}

	var out searchResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return nil, fmt.Errorf("parse part search response: %w", err)
	}
	return out.Parts, nil
}

func (c *Client) resolve(relPath string) *url.URL {
	relPath = strings.TrimPrefix(relPath, "/")
	rel := &url.URL{Path: relPath}
	return c.baseURL.ResolveReference(rel)
}
