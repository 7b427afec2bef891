// Package load reads long-form property tables into []fluid.Row.
//
// Every loader enforces the same column contract: the table must carry the
// fluid, source, t and p columns; columns named exactly like a canonical
// property key (after trimming and lowercasing) become property values; all
// other columns are ignored. Missing required columns are fatal.
package load

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/fluidprops/fluid"
)

// columnMap locates the required and property columns of a table header.
type columnMap struct {
	fluid, source, t, p int
	props               map[int]string // column index -> canonical key
}

func newColumnMap(header []string, props fluid.PropertySet) (columnMap, error) {
	cm := columnMap{fluid: -1, source: -1, t: -1, p: -1, props: make(map[int]string)}
	var ignored []string
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case key == fluid.ColumnFluid:
			cm.fluid = i
		case key == fluid.ColumnSource:
			cm.source = i
		case key == fluid.ColumnT:
			cm.t = i
		case key == fluid.ColumnP:
			cm.p = i
		case props.Contains(key):
			cm.props[i] = key
		default:
			ignored = append(ignored, h)
		}
	}
	var missing []string
	for name, idx := range map[string]int{
		fluid.ColumnFluid: cm.fluid, fluid.ColumnSource: cm.source,
		fluid.ColumnT: cm.t, fluid.ColumnP: cm.p,
	} {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columnMap{}, fmt.Errorf("%w: missing required columns %v (header: %v)",
			fluid.ErrMalformedTable, sortedStrings(missing), header)
	}
	if len(ignored) > 0 {
		logrus.Debugf("Ignoring non-canonical columns: %v", ignored)
	}
	return cm, nil
}

// parseRecord converts one string record. line is the 1-based source line
// (or row number) used in error messages.
func (cm columnMap) parseRecord(rec []string, line int) (fluid.Row, error) {
	cell := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	row := fluid.Row{
		Fluid:  cell(cm.fluid),
		Source: strings.ToLower(cell(cm.source)),
		Values: make(map[string]float64, len(cm.props)),
	}
	if row.Fluid == "" {
		return fluid.Row{}, fmt.Errorf("row %d: empty fluid", line)
	}
	var err error
	if row.T, err = parseRequired(cell(cm.t)); err != nil {
		return fluid.Row{}, fmt.Errorf("row %d: invalid t: %w", line, err)
	}
	if row.P, err = parseRequired(cell(cm.p)); err != nil {
		return fluid.Row{}, fmt.Errorf("row %d: invalid p: %w", line, err)
	}
	for i, key := range cm.props {
		v, ok, err := parseOptional(cell(i))
		if err != nil {
			return fluid.Row{}, fmt.Errorf("row %d: invalid %s: %w", line, key, err)
		}
		if ok {
			row.Values[key] = v
		}
	}
	return row, nil
}

func parseRequired(s string) (float64, error) {
	v, ok, err := parseOptional(s)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing value")
	}
	return v, nil
}

// parseOptional treats empty cells and NaN spellings as absent.
func parseOptional(s string) (float64, bool, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null", "none":
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
