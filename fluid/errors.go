package fluid

import "errors"

var (
	// ErrUnknownFluid is returned when a fluid name matches neither a synonym
	// nor a canonical fluid in the table.
	ErrUnknownFluid = errors.New("unknown fluid")

	// ErrOutOfRange is returned when a query point lies outside the sampled
	// temperature or pressure envelope.
	ErrOutOfRange = errors.New("point out of range")

	// ErrInsufficientData marks a (fluid, property) pair without a 2x2 grid.
	// Query never returns it; the property reports NotAvailable instead.
	ErrInsufficientData = errors.New("insufficient data for interpolation grid")

	// ErrMalformedTable is returned at load time when the input table lacks
	// required columns or violates identity invariants.
	ErrMalformedTable = errors.New("malformed property table")
)
