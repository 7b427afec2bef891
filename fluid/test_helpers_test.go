package fluid

import (
	"math"
	"testing"
)

// row builds a Row from alternating property/value arguments.
func row(fluid, source string, t, p float64, kv ...any) Row {
	values := make(map[string]float64, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i].(string)] = kv[i+1].(float64)
	}
	return Row{Fluid: fluid, Source: source, T: t, P: p, Values: values}
}

// waterRows is the 2x2 density table: 305 K / 1.5e5 Pa interpolates to 995.5.
func waterRows() []Row {
	return []Row{
		row("water", SourceCoolProp, 300, 1e5, Density, 997.0),
		row("water", SourceCoolProp, 310, 1e5, Density, 993.0),
		row("water", SourceCoolProp, 300, 2e5, Density, 998.0),
		row("water", SourceCoolProp, 310, 2e5, Density, 994.0),
	}
}

func mustTable(t *testing.T, rows []Row) *PropertyTable {
	t.Helper()
	tbl, err := NewPropertyTable(rows, MustPropertySet(DefaultProperties))
	if err != nil {
		t.Fatalf("NewPropertyTable: %v", err)
	}
	return tbl
}

func mustEngine(t *testing.T, rows []Row, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(rows, DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func defaultPriority(t *testing.T) SourcePriority {
	t.Helper()
	sp, err := NewSourcePriority(DefaultSourcePriority)
	if err != nil {
		t.Fatalf("NewSourcePriority: %v", err)
	}
	return sp
}

func floatOf(t *testing.T, v Value) float64 {
	t.Helper()
	f, ok := v.Float()
	if !ok {
		t.Fatalf("expected a number, got %s", v)
	}
	return f
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
