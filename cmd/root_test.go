package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/fluidprops/fluid"
)

const waterCSV = `fluid,source,t,p,density,viscosity
water,coolprop,300,100000,997.0,0.00085
water,coolprop,310,100000,993.0,0.00069
water,coolprop,300,200000,998.0,0.00085
water,coolprop,310,200000,994.0,
nitrogen,coolprop,100,100000,3.5,
nitrogen,coolprop,200,100000,1.7,
nitrogen,coolprop,100,500000,17.9,
nitrogen,coolprop,200,500000,8.5,
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testEngine(t *testing.T) *fluid.Engine {
	t.Helper()
	e, _, err := buildEngine(context.Background(), writeTemp(t, "props.csv", waterCSV), fluid.DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestBuildEngine_RegistersMetrics(t *testing.T) {
	e, reg, err := buildEngine(context.Background(), writeTemp(t, "props.csv", waterCSV), fluid.DefaultConfig())
	require.NoError(t, err)

	_, err = e.Query("water", 305, 1.5e5, nil)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "fluidprops_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBuildEngine_Errors(t *testing.T) {
	_, _, err := buildEngine(context.Background(), writeTemp(t, "bad.csv", "fluid,t\nwater,300\n"), fluid.DefaultConfig())
	assert.True(t, errors.Is(err, fluid.ErrMalformedTable), "got %v", err)

	cfg := fluid.DefaultConfig()
	cfg.Properties = nil
	_, _, err = buildEngine(context.Background(), writeTemp(t, "props.csv", waterCSV), cfg)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fluid.DefaultConfig(), cfg)

	cfg, err = loadConfig(writeTemp(t, "cfg.yaml", "bounds: none\nsynonyms:\n  n2: nitrogen\n"))
	require.NoError(t, err)
	assert.Equal(t, fluid.BoundsNone, cfg.Bounds)
	assert.Equal(t, "nitrogen", cfg.Synonyms["n2"])
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery([]string{"H2O", "305", " 1.5e5 "}, "density, viscosity,,")
	require.NoError(t, err)
	assert.Equal(t, queryRequest{Fluid: "H2O", T: 305, P: 1.5e5, Properties: []string{"density", "viscosity"}}, q)

	q, err = parseQuery([]string{"water", "305", "1e5"}, "")
	require.NoError(t, err)
	assert.Nil(t, q.Properties, "no --props selects all available")

	_, err = parseQuery([]string{"water", "hot", "1e5"}, "")
	assert.ErrorContains(t, err, "invalid temperature")
	_, err = parseQuery([]string{"water", "305", "high"}, "")
	assert.ErrorContains(t, err, "invalid pressure")
}

func TestRunQuery(t *testing.T) {
	e := testEngine(t)

	// GIVEN an alias and a property with a missing corner
	q := queryRequest{Fluid: "h2o", T: 305, P: 1.5e5, Properties: []string{"density", "viscosity"}}

	// WHEN run as JSON
	var buf bytes.Buffer
	require.NoError(t, runQuery(&buf, e, q, "json"))

	// THEN the canonical name is reported and the gap is n/a
	assert.JSONEq(t, `{"fluid":"water","t":305,"p":150000,"properties":{"density":995.5,"viscosity":"n/a"}}`, buf.String())

	buf.Reset()
	require.NoError(t, runQuery(&buf, e, q, "table"))
	assert.Regexp(t, `density\s+995.5`, buf.String())

	err := runQuery(&buf, e, queryRequest{Fluid: "water", T: 400, P: 1.5e5}, "table")
	assert.True(t, errors.Is(err, fluid.ErrOutOfRange))
	err = runQuery(&buf, e, queryRequest{Fluid: "argon", T: 300, P: 1e5}, "table")
	assert.True(t, errors.Is(err, fluid.ErrUnknownFluid))
}

func TestRunProperties_AndFluids(t *testing.T) {
	e := testEngine(t)

	var buf bytes.Buffer
	require.NoError(t, runProperties(&buf, e, "H2O"))
	assert.Equal(t, "Properties for water:\n  density\n  viscosity\n", buf.String())

	buf.Reset()
	require.NoError(t, runProperties(&buf, e, "nitrogen"))
	assert.Equal(t, "Properties for nitrogen:\n  density\n", buf.String())

	assert.Error(t, runProperties(&buf, e, "argon"))

	buf.Reset()
	FormatFluids(&buf, e)
	out := buf.String()
	assert.Regexp(t, `nitrogen\s+\[100, 200\]\s+\[100000, 500000\]`, out)
	assert.Regexp(t, `water\s+\[300, 310\]\s+\[100000, 200000\]`, out)
	assert.Contains(t, out, "2 fluids")
}

func TestLoadConfig_ExampleFileIsValid(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("..", "fluidprops.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, fluid.DefaultProperties, cfg.Properties)
	assert.Equal(t, "water", cfg.Synonyms["steam"])
	assert.Equal(t, "water", cfg.Synonyms["h2o"])
}
