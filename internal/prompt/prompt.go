// Package prompt implements the interactive close-match selector: it renders
// candidate summaries as a console table and reads a 1-based pick.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/partscout/partscout/internal/digikey"
	"github.com/partscout/partscout/internal/match"
)

// descriptionLimit truncates descriptions for display only; CSV output always
// carries the full text.
const descriptionLimit = 50

// NewSelector returns a console selector reading picks from in and writing
// candidate tables to out. When in is a non-terminal file (a pipe or
// redirect), it degrades to the headless skip selector so batch runs never
// block on a prompt.
func NewSelector(in io.Reader, out io.Writer) match.Selector {
	if f, ok := in.(*os.File); ok {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return match.SkipSelector{}
		}
	}
	return &consoleSelector{in: bufio.NewReader(in), out: out}
}

type consoleSelector struct {
	in  *bufio.Reader
	out io.Writer
}

func (s *consoleSelector) Select(_ context.Context, query string, candidates []digikey.Part) (int, error) {
	shown := candidates
	if len(shown) > match.MaxShown {
		shown = shown[:match.MaxShown]
	}

	fmt.Fprintf(s.out, "Found %d close matches for %s:\n", len(candidates), query)
	fmt.Fprintln(s.out, renderCandidates(shown))
	fmt.Fprint(s.out, "Enter selection number (or press Enter to skip): ")

	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return -1, err
	}
	return parseSelection(line, len(candidates)), nil
}

// parseSelection maps one input line to a 0-based index into the full
// close-match set. Empty, non-numeric, and out-of-range input means skip.
func parseSelection(line string, total int) int {
	line = strings.TrimSpace(line)
	if line == "" {
		return -1
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > total {
		return -1
	}
	return n - 1
}

func renderCandidates(parts []digikey.Part) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "MPN", "DigiKey Part", "Description"})

	for i, p := range parts {
		tw.AppendRow(table.Row{i + 1, p.ManufacturerPartNumber, p.DigiKeyPartNumber, truncate(p.ProductDescription)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= descriptionLimit {
		return s
	}
	return string(r[:descriptionLimit]) + "..."
}
