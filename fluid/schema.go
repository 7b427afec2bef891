package fluid

import (
	"fmt"
	"sort"
	"strings"
)

// Required columns of the long-form input table.
const (
	ColumnFluid  = "fluid"
	ColumnSource = "source"
	ColumnT      = "t" // kelvin
	ColumnP      = "p" // pascal
)

// RequiredColumns lists the columns every input table must carry.
var RequiredColumns = []string{ColumnFluid, ColumnSource, ColumnT, ColumnP}

// Canonical property keys agreed with the ingestion pipeline.
const (
	Density                = "density"                  // kg/m³
	InternalEnergy         = "internal_energy"          // J/kg
	Enthalpy               = "enthalpy"                 // J/kg
	SpecificHeatCapacity   = "specific_heat_capacity"   // J/(kg·K)
	Entropy                = "entropy"                  // J/(kg·K)
	Compressibility        = "compressibility"          // Z factor
	FugacityCoefficient    = "fugacity_coefficient"     // dimensionless
	SaturationPressure     = "saturation_pressure"      // Pa
	SaturationTemperature  = "saturation_temperature"   // K
	VaporDensity           = "vapor_density"            // kg/m³
	LiquidDensity          = "liquid_density"           // kg/m³
	Viscosity              = "viscosity"                // Pa·s
	ThermalConductivity    = "thermal_conductivity"     // W/(m·K)
	SurfaceTension         = "surface_tension"          // N/m
	MolarMass              = "molar_mass"               // kg/mol
	CriticalTemperature    = "critical_temperature"     // K
	CriticalPressure       = "critical_pressure"        // Pa
	AcentricFactor         = "acentric_factor"          // dimensionless
	TriplePointTemperature = "triple_point_temperature" // K
	TriplePointPressure    = "triple_point_pressure"    // Pa
)

// DefaultProperties is the full canonical key set, in declaration order.
var DefaultProperties = []string{
	Density, InternalEnergy, Enthalpy, SpecificHeatCapacity, Entropy,
	Compressibility, FugacityCoefficient, SaturationPressure, SaturationTemperature,
	VaporDensity, LiquidDensity, Viscosity, ThermalConductivity, SurfaceTension,
	MolarMass, CriticalTemperature, CriticalPressure, AcentricFactor,
	TriplePointTemperature, TriplePointPressure,
}

// PropertySet is a validated, closed set of canonical property keys.
type PropertySet struct {
	keys  []string // sorted
	index map[string]bool
}

// NewPropertySet validates keys and returns the set. Keys must be non-empty,
// lowercase and must not collide with the required table columns.
func NewPropertySet(keys []string) (PropertySet, error) {
	if len(keys) == 0 {
		return PropertySet{}, fmt.Errorf("property set must not be empty")
	}
	reserved := make(map[string]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		reserved[c] = true
	}
	index := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || strings.TrimSpace(k) != k || strings.ToLower(k) != k {
			return PropertySet{}, fmt.Errorf("invalid property key %q: must be non-empty, trimmed and lowercase", k)
		}
		if reserved[k] {
			return PropertySet{}, fmt.Errorf("property key %q collides with a required column", k)
		}
		if index[k] {
			return PropertySet{}, fmt.Errorf("duplicate property key %q", k)
		}
		index[k] = true
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return PropertySet{keys: sorted, index: index}, nil
}

// MustPropertySet is NewPropertySet for package-level defaults and tests.
func MustPropertySet(keys []string) PropertySet {
	s, err := NewPropertySet(keys)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether key is a canonical property in the set.
func (s PropertySet) Contains(key string) bool {
	return s.index[key]
}

// Keys returns the sorted keys. The caller must not modify the slice.
func (s PropertySet) Keys() []string {
	return s.keys
}

// Len returns the number of keys.
func (s PropertySet) Len() int {
	return len(s.keys)
}

// Row is one long-form observation: a single source reporting a set of
// property values for one fluid at one (T, P) point. Missing properties are
// simply absent from Values.
type Row struct {
	Fluid  string
	Source string
	T      float64
	P      float64
	Values map[string]float64
}
