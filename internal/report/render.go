package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes r to w in the given format.
func Render(w io.Writer, r Report, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return renderText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, r Report) error {
	p := printer()

	if r.Banner != "" {
		if _, err := fmt.Fprintln(w, r.Banner); err != nil {
			return err
		}
	}

	for i, s := range r.Sections {
		if i > 0 || r.Banner != "" {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := p.Sprintf("== %s (repeat %d, sorted by %s) ==", s.Suite, s.Repeat, s.Sort)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if len(s.Rows) == 0 {
			if _, err := fmt.Fprintln(w, "no results"); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "#\tlabel\ttime\tns\trelative\tpayload\t")
		for _, row := range s.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2fx\t%s\t\n",
				row.Rank, row.Label, row.Duration,
				p.Sprintf("%d", row.DurationNs),
				row.Relative, formatPayload(p, row.Payload))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// printer groups digits the English way: 1,234,567.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

func formatPayload(p *message.Printer, v any) string {
	switch n := v.(type) {
	case int:
		return p.Sprintf("%d", n)
	case int64:
		return p.Sprintf("%d", n)
	case float64:
		if n == float64(int64(n)) {
			return p.Sprintf("%d", int64(n))
		}
		return p.Sprintf("%.3f", n)
	default:
		return fmt.Sprint(v)
	}
}
