package candidates

import (
	"fmt"

	"github.com/wasilibs/go-re2"
)

// Filter selects candidates by label. A nil Filter matches everything.
type Filter struct {
	re *re2.Regexp
}

// NewFilter compiles pattern as RE2. An empty pattern yields a nil Filter.
func NewFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := re2.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid candidate filter %q: %w", pattern, err)
	}
	return &Filter{re: re}, nil
}

// Match reports whether label passes the filter.
func (f *Filter) Match(label string) bool {
	if f == nil {
		return true
	}
	return f.re.MatchString(label)
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.re.String()
}
