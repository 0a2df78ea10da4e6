// Package report orders benchmark results and renders them as a text
// table, JSON or YAML.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
	"golang.org/x/text/unicode/norm"
)

// Sort modes.
const (
	SortTime    = "time"
	SortLabel   = "label"
	SortPayload = "payload"
	SortNone    = "none"
)

// Row is one rendered result.
type Row struct {
	Rank       int     `json:"rank" yaml:"rank"`
	Label      string  `json:"label" yaml:"label"`
	DurationNs int64   `json:"duration_ns" yaml:"duration_ns"`
	Duration   string  `json:"duration" yaml:"duration"`
	Relative   float64 `json:"relative" yaml:"relative"`
	Payload    any     `json:"payload" yaml:"payload"`
}

// Section is the ordered results of one suite.
type Section struct {
	Suite  string `json:"suite" yaml:"suite"`
	Sort   string `json:"sort" yaml:"sort"`
	Repeat int    `json:"repeat" yaml:"repeat"`
	Rows   []Row  `json:"results" yaml:"results"`
}

// Report is everything produced by one run.
type Report struct {
	Banner      string    `json:"banner" yaml:"banner"`
	RunID       string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Sections    []Section `json:"sections" yaml:"sections"`
}

// Order returns rs arranged by mode. rs itself is never modified.
func Order[T cmp.Ordered](rs *bench.Results[T], mode string) (*bench.Results[T], error) {
	switch strings.ToLower(mode) {
	case SortTime:
		return rs.SortedByTime(), nil
	case SortLabel:
		return rs.SortedFunc(bench.CompareLabel[T]), nil
	case SortPayload:
		return rs.SortedFunc(bench.ComparePayload[T]), nil
	case SortNone, "":
		return bench.NewResults(rs.Items()...), nil
	default:
		return nil, fmt.Errorf("unknown sort mode %q", mode)
	}
}

// NewSection orders rs by mode and converts it to rows. Relative is each
// duration divided by the fastest one in the section.
func NewSection[T cmp.Ordered](suite string, repeat int, rs *bench.Results[T], mode string) (Section, error) {
	ordered, err := Order(rs, mode)
	if err != nil {
		return Section{}, err
	}

	s := Section{Suite: suite, Sort: strings.ToLower(cmp.Or(mode, SortNone)), Repeat: repeat}
	if ordered.Len() == 0 {
		return s, nil
	}

	fastest := slices.MinFunc(ordered.Items(), bench.CompareDuration[T]).Duration()
	for i, r := range ordered.All() {
		row := Row{
			Rank:       i + 1,
			Label:      norm.NFC.String(r.Label()),
			DurationNs: r.Duration().Nanoseconds(),
			Duration:   r.Duration().String(),
			Payload:    r.Payload(),
		}
		if fastest > 0 {
			row.Relative = float64(r.Duration()) / float64(fastest)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
