package load

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/fluidprops/fluid"
)

// newSQLiteTable creates a SQLite file holding the 2x2 water grid and returns
// its path.
func newSQLiteTable(t *testing.T, table string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "props.sqlite")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE ` + table + ` (fluid TEXT, source TEXT, t REAL, p REAL, density REAL, viscosity REAL, batch TEXT)`,
		`INSERT INTO ` + table + ` VALUES
			('water', 'coolprop', 300, 100000, 997.0, 0.00085, 'a'),
			('water', 'coolprop', 310, 100000, 993.0, NULL, 'a'),
			('water', 'coolprop', 300, 200000, 998.0, NULL, 'b'),
			('water', 'coolprop', 310, 200000, 994.0, NULL, 'b')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	return path
}

func TestSQL_SQLite(t *testing.T) {
	path := newSQLiteTable(t, DefaultSQLTable)
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := SQL(context.Background(), db, "", defaultProps)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, map[string]float64{fluid.Density: 997, fluid.Viscosity: 0.00085}, rows[0].Values)
	assert.Equal(t, map[string]float64{fluid.Density: 993}, rows[1].Values, "NULL is absent")
	assert.Equal(t, 2e5, rows[3].P)
}

func TestSQL_InvalidTableName(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "empty.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"props; DROP TABLE x", `a"b`, "1abc", "a.b.c"} {
		_, err := SQL(context.Background(), db, name, defaultProps)
		assert.ErrorContains(t, err, "invalid table name", name)
	}
}

func TestSQL_MissingColumns(t *testing.T) {
	db, err := sql.Open(sqliteDriver, filepath.Join(t.TempDir(), "bad.sqlite"))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE fluid_properties (fluid TEXT, t REAL)`)
	require.NoError(t, err)

	_, err = SQL(context.Background(), db, "", defaultProps)
	assert.ErrorIs(t, err, fluid.ErrMalformedTable)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"fluid_properties"`, quoteIdent("fluid_properties"))
	assert.Equal(t, `"public"."props"`, quoteIdent("public.props"))
}
