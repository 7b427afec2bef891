package fluid

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Bounds is the sampled temperature/pressure envelope of a fluid or grid.
type Bounds struct {
	TMin, TMax float64
	PMin, PMax float64
}

// Contains reports whether (t, p) lies inside the closed envelope.
func (b Bounds) Contains(t, p float64) bool {
	return t >= b.TMin && t <= b.TMax && p >= b.PMin && p <= b.PMax
}

func (b Bounds) String() string {
	return fmt.Sprintf("T=[%g, %g] K, P=[%g, %g] Pa", b.TMin, b.TMax, b.PMin, b.PMax)
}

// PropertyTable is the immutable long-form table the engine serves from.
// It is never mutated after NewPropertyTable returns, so reads need no locking.
type PropertyTable struct {
	properties PropertySet
	rows       map[string][]Row // fluid -> rows in input order
	fluids     []string         // sorted canonical fluid names
	bounds     map[string]Bounds
	sources    []string // distinct sources in first-seen order
	rowCount   int
}

// NewPropertyTable validates rows against the canonical property set and
// indexes them by fluid. Values keyed by non-canonical properties and
// non-finite values are dropped. Rows with an empty fluid or a non-finite T or
// P make the table malformed.
//
// A fluid's bounds cover the rows that keep at least one value; a fluid with
// no values at all falls back to the envelope of its rows.
func NewPropertyTable(rows []Row, properties PropertySet) (*PropertyTable, error) {
	if properties.Len() == 0 {
		return nil, fmt.Errorf("%w: no canonical properties", ErrMalformedTable)
	}
	tbl := &PropertyTable{
		properties: properties,
		rows:       make(map[string][]Row),
		bounds:     make(map[string]Bounds),
	}
	seenSource := make(map[string]bool)
	ignored := make(map[string]bool)
	for i, r := range rows {
		if r.Fluid == "" {
			return nil, fmt.Errorf("%w: row %d: empty fluid", ErrMalformedTable, i)
		}
		if !isFinite(r.T) || !isFinite(r.P) {
			return nil, fmt.Errorf("%w: row %d (%s): non-finite t=%v p=%v", ErrMalformedTable, i, r.Fluid, r.T, r.P)
		}
		values := make(map[string]float64, len(r.Values))
		for k, v := range r.Values {
			if !properties.Contains(k) {
				ignored[k] = true
				continue
			}
			if !isFinite(v) {
				if !math.IsNaN(v) {
					logrus.Debugf("Dropping non-finite %s=%v for %s at T=%g, P=%g", k, v, r.Fluid, r.T, r.P)
				}
				continue
			}
			values[k] = v
		}
		r.Values = values
		tbl.rows[r.Fluid] = append(tbl.rows[r.Fluid], r)
		if !seenSource[r.Source] {
			seenSource[r.Source] = true
			tbl.sources = append(tbl.sources, r.Source)
		}
		tbl.rowCount++
	}
	for k := range ignored {
		logrus.Debugf("Ignoring non-canonical property %q", k)
	}

	for f, fr := range tbl.rows {
		tbl.fluids = append(tbl.fluids, f)
		ts, ps := sampledAxes(fr, true)
		if len(ts) == 0 {
			ts, ps = sampledAxes(fr, false)
		}
		tbl.bounds[f] = Bounds{
			TMin: floats.Min(ts), TMax: floats.Max(ts),
			PMin: floats.Min(ps), PMax: floats.Max(ps),
		}
	}
	sort.Strings(tbl.fluids)

	logrus.Infof("Loaded property table: %d rows, %d fluids, %d sources, %d canonical properties",
		tbl.rowCount, len(tbl.fluids), len(tbl.sources), properties.Len())
	return tbl, nil
}

// Fluids returns the sorted canonical fluid names.
func (t *PropertyTable) Fluids() []string {
	return append([]string(nil), t.fluids...)
}

// Rows returns the rows of one fluid in input order. The caller must not
// modify them.
func (t *PropertyTable) Rows(fluid string) []Row {
	return t.rows[fluid]
}

// Bounds returns the per-fluid envelope across all properties.
func (t *PropertyTable) Bounds(fluid string) (Bounds, bool) {
	b, ok := t.bounds[fluid]
	return b, ok
}

// Properties returns the canonical property set the table was validated against.
func (t *PropertyTable) Properties() PropertySet {
	return t.properties
}

// Sources returns the distinct sources in first-seen order.
func (t *PropertyTable) Sources() []string {
	return append([]string(nil), t.sources...)
}

// Len returns the number of rows.
func (t *PropertyTable) Len() int {
	return t.rowCount
}

// sampledAxes collects the T and P of rows, only those with values when
// valuedOnly is set.
func sampledAxes(rows []Row, valuedOnly bool) (ts, ps []float64) {
	for _, r := range rows {
		if valuedOnly && len(r.Values) == 0 {
			continue
		}
		ts = append(ts, r.T)
		ps = append(ps, r.P)
	}
	return ts, ps
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
