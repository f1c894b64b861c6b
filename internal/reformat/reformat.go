// Package reformat splits the combined specification string in LCSC CSV
// exports into discrete engineering fields.
//
// The split is a positional contract, not a semantic parse: each component
// type has a fixed token layout and anything shorter is malformed.
package reformat

import (
	"errors"
	"fmt"
	"strings"
)

// Component selects the token layout of the specification string.
type Component string

const (
	Capacitor Component = "c"
	Resistor  Component = "r"
)

// ErrMalformedSpec marks an input row whose specification string (or field
// layout) does not carry the expected shape. Check with errors.Is.
var ErrMalformedSpec = errors.New("malformed specification")

// specTokens is the exact token count both layouts require.
const specTokens = 4

// inputFields is the minimum field count of one raw LCSC export row:
// [0] LCSC number, [1] MPN, [4] size, [5] specification string.
const inputFields = 6

// ParseComponent maps a type flag value to a Component.
func ParseComponent(s string) (Component, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return Capacitor, nil
	case "r":
		return Resistor, nil
	default:
		return "", fmt.Errorf("unknown component type %q (want c or r)", s)
	}
}

// Fields holds the split-out engineering attributes. Only the fields relevant
// to the component type are populated.
type Fields struct {
	Capacitance string
	Voltage     string
	Resistance  string
	Power       string
	Tolerance   string
	Dielectric  string
}

// SplitSpec extracts engineering attributes from a space-delimited
// specification string by fixed token position.
//
// Capacitor layout: [voltage, capacitance, dielectric, tolerance].
// Resistor layout:  [power, resistance, _, tolerance].
func SplitSpec(c Component, spec string) (Fields, error) {
	tokens := strings.Fields(spec)
	if len(tokens) < specTokens {
		return Fields{}, fmt.Errorf("%w: got %d of %d tokens in %q", ErrMalformedSpec, len(tokens), specTokens, spec)
	}

	switch c {
	case Capacitor:
		return Fields{
			Voltage:     tokens[0],
			Capacitance: tokens[1],
			Dielectric:  tokens[2],
			Tolerance:   tokens[3],
		}, nil
	case Resistor:
		return Fields{
			Power:      tokens[0],
			Resistance: tokens[1],
			Tolerance:  tokens[3],
		}, nil
	default:
		return Fields{}, fmt.Errorf("unknown component type %q", c)
	}
}

// Row is one normalized output row: the distributor identifiers taken verbatim
// from the input, the split engineering fields, and the package size.
type Row struct {
	LCSC string
	MPN  string
	Fields
	Size string
}

// ParseRow splits one raw export row into a normalized Row.
func ParseRow(c Component, fields []string) (Row, error) {
	if len(fields) < inputFields {
		return Row{}, fmt.Errorf("%w: row has %d fields, want at least %d", ErrMalformedSpec, len(fields), inputFields)
	}
	split, err := SplitSpec(c, fields[5])
	if err != nil {
		return Row{}, err
	}
	return Row{
		LCSC:   fields[0],
		MPN:    fields[1],
		Fields: split,
		Size:   fields[4],
	}, nil
}

// Header returns the output CSV header for the component type.
func Header(c Component) []string {
	if c == Resistor {
		return []string{"LCSC Number", "MPN", "Resistance", "Power", "Tolerance", "Size"}
	}
	return []string{"LCSC Number", "MPN", "Capacitance", "Voltage", "Tolerance", "Dielectric", "Size"}
}

// Record returns the row's fields in Header order.
func (r Row) Record(c Component) []string {
	if c == Resistor {
		return []string{r.LCSC, r.MPN, r.Resistance, r.Power, r.Tolerance, r.Size}
	}
	return []string{r.LCSC, r.MPN, r.Capacitance, r.Voltage, r.Tolerance, r.Dielectric, r.Size}
}
