package load

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fluidprops/fluid"
)

const parquetBatchRows = 64 * 1024

// Parquet reads a long-form table stored as Parquet. Column types are free:
// every cell goes through the same parsing as CSV cells, and nulls are absent.
func Parquet(ctx context.Context, r parquet.ReaderAtSeeker, props fluid.PropertySet) ([]fluid.Row, error) {
	tbl, err := pqarrow.ReadTable(ctx, r, parquet.NewReaderProperties(memory.DefaultAllocator),
		pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	defer tbl.Release()

	header := make([]string, 0, tbl.Schema().NumFields())
	for _, f := range tbl.Schema().Fields() {
		header = append(header, f.Name)
	}
	cm, err := newColumnMap(header, props)
	if err != nil {
		return nil, err
	}

	tr := array.NewTableReader(tbl, parquetBatchRows)
	defer tr.Release()

	rows := make([]fluid.Row, 0, tbl.NumRows())
	record := make([]string, len(header))
	line := 1
	for tr.Next() {
		rec := tr.Record()
		cols := make([]arrow.Array, rec.NumCols())
		for i := range cols {
			cols[i] = rec.Column(i)
		}
		for i := 0; i < int(rec.NumRows()); i++ {
			for c, col := range cols {
				if col.IsNull(i) {
					record[c] = ""
				} else {
					record[c] = col.ValueStr(i)
				}
			}
			row, err := cm.parseRecord(record, line)
			if err != nil {
				return nil, fmt.Errorf("parquet %w", err)
			}
			rows = append(rows, row)
			line++
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("read parquet batches: %w", err)
	}
	return rows, nil
}

// ParquetFile reads a long-form Parquet table from path.
func ParquetFile(ctx context.Context, path string, props fluid.PropertySet) ([]fluid.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open property parquet: %w", err)
	}
	defer file.Close()

	rows, err := Parquet(ctx, file, props)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logrus.Infof("Read %d rows from %s", len(rows), path)
	return rows, nil
}
