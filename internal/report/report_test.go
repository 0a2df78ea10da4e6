package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func result(label string, d time.Duration, payload int) bench.Result[int] {
	return bench.NewResult(label, bench.Timed[int]{Duration: d, Payload: payload})
}

func sample() *bench.Results[int] {
	return bench.NewResults(
		result("c", 30*time.Millisecond, 1),
		result("a", 10*time.Millisecond, 3),
		result("b", 20*time.Millisecond, 2),
	)
}

func TestOrder(t *testing.T) {
	tests := []struct {
		mode string
		want []string
	}{
		{mode: SortTime, want: []string{"a", "b", "c"}},
		{mode: SortLabel, want: []string{"a", "b", "c"}},
		{mode: SortPayload, want: []string{"c", "b", "a"}},
		{mode: SortNone, want: []string{"c", "a", "b"}},
		{mode: "", want: []string{"c", "a", "b"}},
		{mode: "TIME", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			rs := sample()
			ordered, err := Order(rs, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ordered.Labels())
			assert.Equal(t, []string{"c", "a", "b"}, rs.Labels(), "input untouched")
		})
	}

	_, err := Order(sample(), "random")
	assert.ErrorContains(t, err, "unknown sort mode")
}

func TestOrder_TimeThenLabelDiffer(t *testing.T) {
	rs := bench.NewResults(
		result("a", 30*time.Millisecond, 0),
		result("b", 10*time.Millisecond, 0),
	)

	byTime, err := Order(rs, SortTime)
	require.NoError(t, err)
	byLabel, err := Order(rs, SortLabel)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, byTime.Labels())
	assert.Equal(t, []string{"a", "b"}, byLabel.Labels())
}

func TestNewSection(t *testing.T) {
	s, err := NewSection("add", 100, sample(), SortTime)
	require.NoError(t, err)

	assert.Equal(t, "add", s.Suite)
	assert.Equal(t, "time", s.Sort)
	assert.Equal(t, 100, s.Repeat)
	require.Len(t, s.Rows, 3)

	assert.Equal(t, Row{
		Rank:       1,
		Label:      "a",
		DurationNs: 10_000_000,
		Duration:   "10ms",
		Relative:   1,
		Payload:    3,
	}, s.Rows[0])
	assert.InDelta(t, 2.0, s.Rows[1].Relative, 1e-9)
	assert.InDelta(t, 3.0, s.Rows[2].Relative, 1e-9)
	assert.Equal(t, 3, s.Rows[2].Rank)
}

func TestNewSection_EmptyAndZeroDurations(t *testing.T) {
	s, err := NewSection("reduce", 1, bench.NewResults[int](), SortTime)
	require.NoError(t, err)
	assert.Empty(t, s.Rows)

	zero := bench.NewResults(result("x", 0, 1), result("y", 0, 2))
	s, err = NewSection("zero", 1, zero, SortNone)
	require.NoError(t, err)
	for _, row := range s.Rows {
		assert.Zero(t, row.Relative)
	}

	_, err = NewSection("bad", 1, zero, "nope")
	assert.Error(t, err)
}

func sampleReport(t *testing.T) Report {
	t.Helper()
	s, err := NewSection("add", 1_000_000, sample(), SortTime)
	require.NoError(t, err)
	return Report{
		Banner:      "benchkit test",
		RunID:       "run_1",
		GeneratedAt: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
		Sections:    []Section{s},
	}
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(t), FormatText))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "benchkit test\n"))
	assert.Contains(t, out, "== add (repeat 1,000,000, sorted by time) ==")
	assert.Contains(t, out, "10,000,000")
	assert.Contains(t, out, "3.00x")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[3], "label")
	assert.Contains(t, lines[4], " a ")
	assert.Contains(t, lines[6], " c ")
}

func TestRender_TextEmptySection(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Sections: []Section{{Suite: "reduce", Sort: "time", Repeat: 1}}}
	require.NoError(t, Render(&buf, r, ""))
	assert.Contains(t, buf.String(), "no results")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(t), FormatJSON))

	var decoded struct {
		RunID    string `json:"run_id"`
		Sections []struct {
			Suite   string `json:"suite"`
			Results []struct {
				Label      string `json:"label"`
				DurationNs int64  `json:"duration_ns"`
				Payload    int    `json:"payload"`
			} `json:"results"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run_1", decoded.RunID)
	require.Len(t, decoded.Sections, 1)
	require.Len(t, decoded.Sections[0].Results, 3)
	assert.Equal(t, "a", decoded.Sections[0].Results[0].Label)
	assert.Equal(t, int64(10_000_000), decoded.Sections[0].Results[0].DurationNs)
	assert.Equal(t, 3, decoded.Sections[0].Results[0].Payload)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(t), FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "benchkit test", decoded["banner"])

	sections, ok := decoded["sections"].([]any)
	require.True(t, ok)
	first, ok := sections[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "add", first["suite"])
	assert.Contains(t, buf.String(), "duration_ns: 10000000")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Report{}, "xml")
	assert.ErrorContains(t, err, "unknown report format")
}

func TestFormatPayload(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: 1234567, want: "1,234,567"},
		{in: int64(42), want: "42"},
		{in: 4950.0, want: "4,950"},
		{in: "text", want: "text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPayload(printer(), tt.in))
	}
}
