package load

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fluidprops/fluid"
)

// CSV reads a long-form CSV table with a header row.
func CSV(r io.Reader, props fluid.PropertySet) ([]fluid.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV empty or missing header", fluid.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	cm, err := newColumnMap(header, props)
	if err != nil {
		return nil, err
	}

	var rows []fluid.Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		row, err := cm.parseRecord(record, line)
		if err != nil {
			return nil, fmt.Errorf("CSV %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CSVFile reads a long-form CSV table from path.
func CSVFile(path string, props fluid.PropertySet) ([]fluid.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open property CSV: %w", err)
	}
	defer file.Close()

	rows, err := CSV(file, props)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logrus.Infof("Read %d rows from %s", len(rows), path)
	return rows, nil
}
