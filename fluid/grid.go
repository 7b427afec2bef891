package fluid

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Grid is the rectangular T×P array of resolved values for one fluid and one
// property. Ts and Ps are strictly increasing; Values[i][j] holds the value at
// (Ts[i], Ps[j]) or NaN when no source sampled that point.
type Grid struct {
	Fluid    string
	Property string
	Ts       []float64
	Ps       []float64
	Values   [][]float64
	Sources  [][]string // source that won each cell; "" when absent
}

// Bounds returns the grid's own sampled box.
func (g *Grid) Bounds() Bounds {
	return Bounds{
		TMin: g.Ts[0], TMax: g.Ts[len(g.Ts)-1],
		PMin: g.Ps[0], PMax: g.Ps[len(g.Ps)-1],
	}
}

// Filled returns the number of sampled cells.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

type gridPoint struct{ t, p float64 }

type gridCell struct {
	value  float64
	source string
	rank   int
}

// BuildGrid assembles the grid for (fluid, property). Duplicate samples at the
// same (T, P) are resolved by source rank, with first-seen winning among equal
// ranks. Returns ErrInsufficientData when fewer than two distinct T or P
// values carry the property.
func BuildGrid(tbl *PropertyTable, priority SourcePriority, fluid, property string) (*Grid, error) {
	cells := make(map[gridPoint]gridCell)
	tSet := make(map[float64]bool)
	pSet := make(map[float64]bool)
	for _, r := range tbl.Rows(fluid) {
		v, ok := r.Values[property]
		if !ok {
			continue
		}
		tSet[r.T] = true
		pSet[r.P] = true
		pt := gridPoint{r.T, r.P}
		rank := priority.Rank(r.Source)
		if cur, seen := cells[pt]; seen && !Prefer(rank, cur.rank) {
			continue
		}
		cells[pt] = gridCell{value: v, source: r.Source, rank: rank}
	}

	ts := sortedKeys(tSet)
	ps := sortedKeys(pSet)
	if len(ts) < 2 || len(ps) < 2 {
		return nil, fmt.Errorf("%w: %s/%s has %d distinct T and %d distinct P values",
			ErrInsufficientData, fluid, property, len(ts), len(ps))
	}

	g := &Grid{
		Fluid:    fluid,
		Property: property,
		Ts:       ts,
		Ps:       ps,
		Values:   make([][]float64, len(ts)),
		Sources:  make([][]string, len(ts)),
	}
	for i, t := range ts {
		g.Values[i] = make([]float64, len(ps))
		g.Sources[i] = make([]string, len(ps))
		for j, p := range ps {
			c, ok := cells[gridPoint{t, p}]
			if !ok {
				g.Values[i][j] = math.NaN()
				continue
			}
			g.Values[i][j] = c.value
			g.Sources[i][j] = c.source
		}
	}
	logrus.Debugf("Built grid %s/%s: %dx%d, %d/%d cells sampled",
		fluid, property, len(ts), len(ps), len(cells), len(ts)*len(ps))
	return g, nil
}

func sortedKeys(set map[float64]bool) []float64 {
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// bracketIndex returns the indices of the sorted values enclosing target.
// An exact match returns (i, i); values beyond either end clamp to that end.
func bracketIndex(sorted []float64, target float64) (lo, hi int) {
	n := len(sorted)
	if n == 0 {
		return 0, 0
	}
	if target <= sorted[0] {
		return 0, 0
	}
	if target >= sorted[n-1] {
		return n - 1, n - 1
	}
	i := sort.SearchFloat64s(sorted, target)
	if sorted[i] == target {
		return i, i
	}
	return i - 1, i
}

// lerp linearly interpolates between a and b at fraction t in [0, 1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
