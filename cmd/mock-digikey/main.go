package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/mockdigikey"
)

func main() {
	addr := defaultString("MOCK_DIGIKEY_ADDR", ":8080")
	partsFile := defaultString("MOCK_DIGIKEY_PARTS_FILE", "")

	fs := flag.NewFlagSet("mock-digikey", flag.ExitOnError)
	fs.StringVar(&addr, "addr", addr, "Listen address")
	fs.StringVar(&partsFile, "parts-file", partsFile, "JSON file mapping keyword -> part list to serve as canned results")
	_ = fs.Parse(os.Args[1:])

	srv := mockdigikey.New()
	if partsFile != "" {
		if err := loadParts(srv, partsFile); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "load parts file: %v\n", err)
			os.Exit(1)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "mock-digikey listening on %s (parts=%s)\n", addr, partsFile)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func loadParts(srv *mockdigikey.Server, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var byKeyword map[string][]digikey.Part
	if err := json.Unmarshal(b, &byKeyword); err != nil {
		return err
	}
	for keyword, parts := range byKeyword {
		srv.SetParts(keyword, parts)
	}
	return nil
}

func defaultString(envVar string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envVar))
	if v == "" {
		return fallback
	}
	return v
}
