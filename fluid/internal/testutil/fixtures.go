// Package testutil provides shared test fixtures for the fluid engine and
// its table loaders: canonical long-form CSV tables and float assertions.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WaterCSV is the 2x2 water density table used by end-to-end tests.
// Querying (305 K, 1.5e5 Pa) must interpolate to 995.5.
const WaterCSV = `fluid,source,t,p,density
water,coolprop,300,100000,997.0
water,coolprop,310,100000,993.0
water,coolprop,300,200000,998.0
water,coolprop,310,200000,994.0
`

// MixedCSV has two fluids, three sources, an unsampled cell, a sparse
// property and a non-canonical column that loaders must ignore.
const MixedCSV = `fluid,source,t,p,density,viscosity,surface_tension,raw_notes
water,pykingas,300,100000,990.0,,0.0717,x
water,coolprop,300,100000,997.0,0.00085,0.0717,x
water,coolprop,310,100000,993.0,0.00069,0.0701,x
water,coolprop,300,200000,998.0,0.00085,0.0717,x
water,thermopack,310,200000,994.0,,0.0701,x
nitrogen,coolprop,100,100000,3.5,0.0000068,,y
nitrogen,coolprop,200,100000,1.7,0.0000129,,y
nitrogen,coolprop,100,500000,17.9,0.0000070,,y
nitrogen,coolprop,200,500000,8.5,,,y
`

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// AssertClose fails the test when got and want differ by more than tol.
func AssertClose(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %g)", msg, got, want, tol)
	}
}
