// Package fluid provides the thermophysical property lookup engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - table.go: the immutable long-form PropertyTable (fluid, source, T, P, values)
//   - grid.go: per-(fluid, property) grid assembly with source-priority conflict resolution
//   - engine.go: fluid resolution, bounds checks and batched property queries
//
// # Architecture
//
// The engine moves through two states. While Loading, NewEngine builds the
// PropertyTable and the fluid Identity from ingested rows; malformed input
// aborts construction. Once Ready, the engine is immutable apart from its
// interpolator cache, which builds one Grid and Interpolator per
// (fluid, property) pair on first use and keeps it for the engine's lifetime.
//
// Table loaders (CSV, Parquet, SQLite/Postgres, S3) live in fluid/load/ and
// produce the []Row consumed by NewPropertyTable.
//
// # Errors
//
// Only ErrUnknownFluid and ErrOutOfRange reach callers of Query. Sparse data
// (ErrInsufficientData grids, unsampled cells) degrades to the "n/a" marker
// for the affected property only.
package fluid
