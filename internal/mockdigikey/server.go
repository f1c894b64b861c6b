// Package mockdigikey implements a minimal DigiKey-like API surface: the
// OAuth2 token endpoint and keyword part search, with canned results keyed by
// keyword. It backs the client/app tests and the mock-digikey dev binary.
package mockdigikey

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/partscout/partscout/internal/digikey"
)

// Call records a request made to the mock service.
type Call struct {
	Method   string
	Path     string
	Keywords string
}

// Token is the bearer token the mock issues and subsequently requires.
const Token = "mock-digikey-token"

// Server serves the mock API. Configure canned results with SetParts and
// forced failures with FailKeyword, then mount Handler.
type Server struct {
	mu         sync.Mutex
	calls      []Call
	clientID   string
	clientSec  string
	parts      map[string][]digikey.Part
	failStatus map[string]int
}

// New constructs an empty mock server.
func New() *Server {
	return &Server{
		parts:      make(map[string][]digikey.Part),
		failStatus: make(map[string]int),
	}
}

// RequireCredentials enforces HTTP basic auth on the token endpoint.
// Empty values disable the check.
func (s *Server) RequireCredentials(clientID, clientSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientID = strings.TrimSpace(clientID)
	s.clientSec = strings.TrimSpace(clientSecret)
}

// SetParts registers canned search results for a keyword.
func (s *Server) SetParts(keyword string, parts []digikey.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[keyword] = parts
}

// FailKeyword makes searches for the keyword respond with the given status.
func (s *Server) FailKeyword(keyword string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus[keyword] = status
}

// Calls returns a snapshot of calls made to the server.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Handler returns an http.Handler that serves the mock API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", s.handleToken)
	mux.HandleFunc("/services/partsearch/v4/partsearch", s.handleSearch)
	return mux
}

func (s *Server) recordCall(r *http.Request, keywords string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Keywords: keywords})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.recordCall(r, "")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	wantID, wantSecret := s.clientID, s.clientSec
	s.mu.Unlock()
	if wantID != "" {
		id, secret, ok := r.BasicAuth()
		if !ok || id != wantID || secret != wantSecret {
			http.Error(w, `{"ErrorMessage":"invalid client credentials"}`, http.StatusUnauthorized)
			return
		}
	}

	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		http.Error(w, `{"ErrorMessage":"unsupported grant type"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": Token,
		"token_type":   "Bearer",
		"expires_in":   599,
	})
}

type searchRequest struct {
	Keywords string `json:"Keywords"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.recordCall(r, "")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+Token {
		s.recordCall(r, "")
		http.Error(w, `{"ErrorMessage":"invalid token"}`, http.StatusUnauthorized)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordCall(r, "")
		http.Error(w, `{"ErrorMessage":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	s.recordCall(r, req.Keywords)

	s.mu.Lock()
	status, failed := s.failStatus[req.Keywords]
	parts := s.parts[req.Keywords]
	s.mu.Unlock()

	if failed {
		http.Error(w, `{"ErrorMessage":"forced failure"}`, status)
		return
	}

	if parts == nil {
		parts = []digikey.Part{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"Parts": parts})
}
