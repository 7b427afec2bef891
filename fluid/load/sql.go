package load

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/inference-sim/fluidprops/fluid"
)

const (
	sqliteDriver   = "sqlite"
	postgresDriver = "pgx"

	// DefaultSQLTable is the table read when a SQL source names none.
	DefaultSQLTable = "fluid_properties"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenSQLite opens a SQLite database file with the pure Go driver.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// OpenPostgres opens and pings a Postgres database through pgx.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SQL reads every row of table. Cells are scanned as text and parsed like
// CSV cells, so NULL property values are absent.
func SQL(ctx context.Context, db *sql.DB, table string, props fluid.PropertySet) ([]fluid.Row, error) {
	if table == "" {
		table = DefaultSQLTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	query := "SELECT * FROM " + quoteIdent(table)
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer func() { _ = rs.Close() }()

	header, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	cm, err := newColumnMap(header, props)
	if err != nil {
		return nil, err
	}

	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}
	record := make([]string, len(header))

	var rows []fluid.Row
	for n := 1; rs.Next(); n++ {
		if err := rs.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, n, err)
		}
		for i, c := range cells {
			record[i] = ""
			if c.Valid {
				record[i] = c.String
			}
		}
		row, err := cm.parseRecord(record, n)
		if err != nil {
			return nil, fmt.Errorf("table %s %w", table, err)
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	logrus.Infof("Read %d rows from table %s", len(rows), table)
	return rows, nil
}

func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, ".")
}
