// Package report renders an ordered list of widget fields as a fixed-width
// table, or as JSON or YAML for other tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
)

// Format selects the report encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	// DefaultNameWidth is the width of the text table's name column
	DefaultNameWidth = 20
)

const (
	bannerWidth    = 70
	separatorWidth = 100
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// Report is everything a renderer needs: the analyzed file and its fields
// already in tab order.
type Report struct {
	Source string
	Engine string
	Fields []extraction.FieldRecord
}

// Options tune rendering
type Options struct {
	Format    Format
	NameWidth int
}

// RankedField is a field with its 1-based tab position
type RankedField struct {
	Rank                   int `json:"rank" yaml:"rank"`
	extraction.FieldRecord `yaml:",inline"`
}

type document struct {
	File   string        `json:"file" yaml:"file"`
	Engine string        `json:"engine,omitempty" yaml:"engine,omitempty"`
	Count  int           `json:"count" yaml:"count"`
	Fields []RankedField `json:"fields" yaml:"fields"`
}

// Ranked pairs each field with its position in the tab sequence
func Ranked(fields []extraction.FieldRecord) []RankedField {
	ranked := make([]RankedField, len(fields))
	for i, f := range fields {
		ranked[i] = RankedField{Rank: i + 1, FieldRecord: f}
	}
	return ranked
}

// Render writes rep to w in the requested format. The output is assembled in
// full before the single write.
func Render(w io.Writer, rep Report, opts Options) error {
	var (
		out string
		err error
	)

	switch opts.Format {
	case FormatText, "":
		out = Text(rep, opts.NameWidth)
	case FormatJSON:
		out, err = renderJSON(rep)
	case FormatYAML:
		out, err = renderYAML(rep)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}

// Text renders the table: banner, column headers, one row per field and a
// closing rule.
func Text(rep Report, nameWidth int) string {
	if nameWidth <= 0 {
		nameWidth = DefaultNameWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzing: %s\n", rep.Source)
	b.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	b.WriteString("\nEvince tab order (top to bottom, left to right):\n\n")

	fmt.Fprintf(&b, "%-4s %s %10s %10s %s\n",
		"#", nameCell("Field Name", nameWidth), "Center X", "Center Y", "Rect (x1, y1, x2, y2)")
	b.WriteString(strings.Repeat("-", separatorWidth) + "\n")

	for i, f := range rep.Fields {
		fmt.Fprintf(&b, "%-4d %s %10.2f %10.2f %s\n",
			i+1, nameCell(f.Name, nameWidth), f.CenterX, f.CenterY, f.Rect.String())
	}

	b.WriteString("\n" + strings.Repeat("=", bannerWidth) + "\n")
	return b.String()
}

// nameCell fits a name to exactly width display columns
func nameCell(name string, width int) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	return runewidth.FillRight(runewidth.Truncate(name, width, ""), width)
}

func newDocument(rep Report) document {
	return document{
		File:   rep.Source,
		Engine: rep.Engine,
		Count:  len(rep.Fields),
		Fields: Ranked(rep.Fields),
	}
}

func renderJSON(rep Report) (string, error) {
	data, err := json.MarshalIndent(newDocument(rep), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return string(data) + "\n", nil
}

func renderYAML(rep Report) (string, error) {
	data, err := yaml.Marshal(newDocument(rep))
	if err != nil {
		return "", fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return string(data), nil
}
