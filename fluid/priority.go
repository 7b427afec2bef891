package fluid

import (
	"fmt"
	"strings"
)

// Known data providers, in default preference order.
const (
	SourceCoolProp   = "coolprop"
	SourceThermopack = "thermopack"
	SourcePyKingas   = "pykingas"
)

// DefaultSourcePriority ranks the three providers the ingestion pipeline emits.
var DefaultSourcePriority = []string{SourceCoolProp, SourceThermopack, SourcePyKingas}

// SourcePriority is a total order over data sources. Lower rank is preferred.
// Sources not named in the order all share rank Len(), so ties between them
// fall back to input order in the grid builder.
type SourcePriority struct {
	order []string
	rank  map[string]int
}

// NewSourcePriority builds a priority table from sources listed best-first.
// Source names are matched case-insensitively.
func NewSourcePriority(order []string) (SourcePriority, error) {
	rank := make(map[string]int, len(order))
	normalized := make([]string, 0, len(order))
	for i, s := range order {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			return SourcePriority{}, fmt.Errorf("source_priority[%d]: empty source name", i)
		}
		if _, dup := rank[key]; dup {
			return SourcePriority{}, fmt.Errorf("source_priority[%d]: duplicate source %q", i, s)
		}
		rank[key] = len(normalized)
		normalized = append(normalized, key)
	}
	return SourcePriority{order: normalized, rank: rank}, nil
}

// Rank returns the source's position in the order, or Len() when unknown.
func (sp SourcePriority) Rank(source string) int {
	if r, ok := sp.rank[strings.ToLower(strings.TrimSpace(source))]; ok {
		return r
	}
	return len(sp.order)
}

// Len returns the number of ranked sources.
func (sp SourcePriority) Len() int {
	return len(sp.order)
}

// Order returns the ranked sources best-first.
func (sp SourcePriority) Order() []string {
	return append([]string(nil), sp.order...)
}

// Prefer reports whether a source with rank candidate replaces one with rank
// current. Equal ranks keep the current (first-seen) row.
func Prefer(candidate, current int) bool {
	return candidate < current
}
