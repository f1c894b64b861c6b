package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/partscout/partscout/internal/app"
	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
	"github.com/partscout/partscout/internal/match/gemini"
	"github.com/partscout/partscout/internal/pipeline"
	"github.com/partscout/partscout/internal/prompt"
	"github.com/partscout/partscout/internal/reformat"
	"github.com/partscout/partscout/internal/util"
	"github.com/partscout/partscout/internal/version"
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		usage(os.Stdout)
		return
	case "version", "--version":
		fmt.Println(version.Current)
		return
	case "search":
		os.Exit(runSearch(ctx, os.Args[2:]))
	case "reformat":
		os.Exit(runReformat(ctx, os.Args[2:]))
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runSearch(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var inputPath string
	var outputPath string
	fs.StringVar(&inputPath, "input", "", "Input CSV file path (part numbers in the first column)")
	fs.StringVar(&outputPath, "output", "", "Output CSV file path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// One shared reader: the filename prompts and the close-match selector
	// must not buffer past each other on the same stdin.
	var stdin *bufio.Reader
	if stdinIsTerminal() {
		stdin = bufio.NewReader(os.Stdin)
	}

	// Original workflow: when run at a terminal without flags, ask for the
	// filenames up front.
	if inputPath == "" && stdin != nil {
		inputPath = askPath(stdin, "Enter input CSV filename: ")
	}
	if outputPath == "" && stdin != nil {
		outputPath = askPath(stdin, "Enter output CSV filename: ")
	}
	if inputPath == "" || outputPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, "search requires --input and --output")
		return 2
	}
	if _, err := os.Stat(inputPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "input file error: %v\n", err)
		return 2
	}

	if err := cfg.ValidateSearch(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	client, err := digikey.NewClient(digikey.Config{
		ClientID:     cfg.DigiKey.ClientID,
		ClientSecret: cfg.DigiKey.ClientSecret,
		BaseURL:      cfg.DigiKey.BaseURL,
		DebugDir:     cfg.DebugDir,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "digikey config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	selector, err := buildSelector(ctx, cfg, stdin)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "selector config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	if err := app.RunSearch(ctx, app.SearchConfig{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Client:     client,
		Selector:   selector,
		Pacer:      pipeline.NewRatePacer(cfg.RateLimitRPS),
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "search failed: %s\n", util.RedactSecrets(err.Error()))
		return 1
	}
	return 0
}

// buildSelector picks the close-match disambiguation strategy: the Gemini
// selector when configured, else the interactive console prompt (which
// degrades to skip when stdin is not a terminal).
func buildSelector(ctx context.Context, cfg config.Config, stdin *bufio.Reader) (match.Selector, error) {
	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		return gemini.New(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		})
	}
	if stdin != nil {
		return prompt.NewSelector(stdin, os.Stdout), nil
	}
	return match.SkipSelector{}, nil
}

func runReformat(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("reformat", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var inputPath string
	var typeFlag string
	fs.StringVar(&inputPath, "input", "", "Input CSV file path (LCSC export)")
	fs.StringVar(&typeFlag, "type", "", "Component type: c (capacitor) or r (resistor)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inputPath == "" || typeFlag == "" {
		_, _ = fmt.Fprintln(os.Stderr, "reformat requires --input and --type")
		return 2
	}

	component, err := reformat.ParseComponent(typeFlag)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "type error: %v\n", err)
		return 2
	}
	if _, err := os.Stat(inputPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "input file error: %v\n", err)
		return 2
	}

	if err := app.RunReformat(ctx, app.ReformatConfig{
		InputPath:  inputPath,
		OutputPath: derivedOutputPath(inputPath),
		Component:  component,
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "reformat failed: %v\n", err)
		return 1
	}
	return 0
}

// derivedOutputPath places the normalized CSV next to the input.
func derivedOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "-formatted.csv"
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func askPath(stdin *bufio.Reader, question string) string {
	_, _ = fmt.Fprint(os.Stdout, question)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func usage(w *os.File) {
	_, _ = fmt.Fprintf(w, `partscout: sourcing helpers for electronics BOMs

Usage:
  partscout <command> [flags]

Commands:
  search    Match a CSV of part numbers against the DigiKey part-search API
  reformat  Normalize an LCSC CSV export into split-out engineering fields
  version   Print the version

Examples:
  partscout search --input bom.csv --output matched.csv
  partscout reformat --input capacitors.csv --type c

Environment (search):
  DIGIKEY_CLIENT_ID      DigiKey API client id (required)
  DIGIKEY_CLIENT_SECRET  DigiKey API client secret (required)
  DIGIKEY_BASE_URL       Optional API base URL override (mocks/testing)
  RATE_LIMIT_RPS         Request pacing rate, default 1 (0 disables)
  PARTSCOUT_DEBUG_DIR    When set, write per-query api_debug_*.json files here
  PARTSCOUT_CONFIG       Optional YAML config file path (env takes precedence)

Environment (automated selection, optional):
  GEMINI_API_KEY         Enables the Gemini close-match selector
  GEMINI_MODEL           Gemini model name (required with GEMINI_API_KEY)
  GEMINI_BASE_URL        Optional base URL override (proxies/testing)

`)
}
