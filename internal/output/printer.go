package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/tiappxml/internal/config"
	"github.com/quantmind-br/tiappxml/internal/domain"
	"github.com/quantmind-br/tiappxml/internal/manifest"
)

// Printer renders command results as text, JSON or YAML
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a printer writing to w in the given format.
// An empty format means text.
func NewPrinter(w io.Writer, format string) *Printer {
	if format == "" {
		format = config.FormatText
	}
	return &Printer{w: w, format: format}
}

// Format returns the printer's output format
func (p *Printer) Format() string {
	return p.format
}

// Structured encodes v as JSON or YAML
func (p *Printer) Structured(v any) error {
	switch p.format {
	case config.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}

// Path prints a single manifest path
func (p *Printer) Path(path string) error {
	if p.format == config.FormatText {
		_, err := fmt.Fprintln(p.w, path)
		return err
	}
	return p.Structured(map[string]string{"path": path})
}

// Lines prints one value per line, or a list under key
func (p *Printer) Lines(key string, lines []string) error {
	if p.format == config.FormatText {
		for _, line := range lines {
			if _, err := fmt.Fprintln(p.w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return p.Structured(map[string][]string{key: lines})
}

// Summary prints manifest metadata; empty fields are omitted in text output
func (p *Printer) Summary(s manifest.Summary) error {
	if p.format != config.FormatText {
		return p.Structured(s)
	}

	rows := []struct{ label, value string }{
		{"File", s.File},
		{"ID", s.ID},
		{"Name", s.Name},
		{"Version", s.Version},
		{"Publisher", s.Publisher},
		{"URL", s.URL},
		{"Description", s.Description},
		{"Copyright", s.Copyright},
		{"GUID", s.GUID},
		{"SDK version", s.SDKVersion},
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", row.label, row.value)
	}
	return tw.Flush()
}

// Entries prints history entries as a table, or as a list
func (p *Printer) Entries(entries []domain.HistoryEntry) error {
	if p.format != config.FormatText {
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return p.Structured(entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(p.w, "No manifests loaded yet")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOADED\tID\tNAME\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.LoadedAt.Local().Format("2006-01-02 15:04"),
			orDash(e.AppID), orDash(e.Name), e.Path)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
