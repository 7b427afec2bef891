package fluid

import "math"

// Interpolator evaluates one Grid with bilinear interpolation. It holds no
// mutable state and is safe for concurrent use.
type Interpolator struct {
	grid   *Grid
	bounds Bounds
}

// NewInterpolator wraps a grid built by BuildGrid.
func NewInterpolator(g *Grid) *Interpolator {
	return &Interpolator{grid: g, bounds: g.Bounds()}
}

// Grid returns the underlying grid. The caller must not modify it.
func (in *Interpolator) Grid() *Grid {
	return in.grid
}

// Bounds returns the grid's sampled box.
func (in *Interpolator) Bounds() Bounds {
	return in.bounds
}

// Evaluate returns the interpolated value at (t, p). ok is false when the
// point is outside the grid box or a cell the interpolation needs was never
// sampled. On a grid line only the two cells along it are needed; on a sample
// point only that cell.
func (in *Interpolator) Evaluate(t, p float64) (value float64, ok bool) {
	if !in.bounds.Contains(t, p) {
		return math.NaN(), false
	}
	g := in.grid
	i0, i1 := bracketIndex(g.Ts, t)
	j0, j1 := bracketIndex(g.Ps, p)

	var v float64
	switch {
	case i0 == i1 && j0 == j1:
		v = g.Values[i0][j0]
	case i0 == i1:
		v = lerp(g.Values[i0][j0], g.Values[i0][j1], fraction(g.Ps[j0], g.Ps[j1], p))
	case j0 == j1:
		v = lerp(g.Values[i0][j0], g.Values[i1][j0], fraction(g.Ts[i0], g.Ts[i1], t))
	default:
		ft := fraction(g.Ts[i0], g.Ts[i1], t)
		fp := fraction(g.Ps[j0], g.Ps[j1], p)
		lo := lerp(g.Values[i0][j0], g.Values[i1][j0], ft)
		hi := lerp(g.Values[i0][j1], g.Values[i1][j1], ft)
		v = lerp(lo, hi, fp)
	}
	// Absent corners are NaN and propagate through lerp.
	if math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

func fraction(lo, hi, x float64) float64 {
	return (x - lo) / (hi - lo)
}
