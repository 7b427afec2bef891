package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/fluidprops/fluid"
)

var (
	queryProps  string // Comma-separated property keys; empty means all available
	queryFormat string // Output format: table or json
)

// validFormats lists the accepted --format values.
var validFormats = map[string]bool{"table": true, "json": true}

var queryCmd = &cobra.Command{
	Use:   "query <fluid> <T [K]> <P [Pa]>",
	Short: "Interpolate properties of a fluid at a temperature and pressure",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		q, err := parseQuery(args, queryProps)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !validFormats[queryFormat] {
			logrus.Fatalf("Unknown format %q; valid: table, json", queryFormat)
		}
		e := loadEngine(cmd.Context())
		if err := runQuery(cmd.OutOrStdout(), e, q, queryFormat); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// queryRequest is a parsed query invocation.
type queryRequest struct {
	Fluid      string
	T, P       float64
	Properties []string // nil = all available
}

func parseQuery(args []string, props string) (queryRequest, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
	if err != nil {
		return queryRequest{}, fmt.Errorf("invalid temperature %q: %w", args[1], err)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(args[2]), 64)
	if err != nil {
		return queryRequest{}, fmt.Errorf("invalid pressure %q: %w", args[2], err)
	}
	return queryRequest{Fluid: args[0], T: t, P: p, Properties: splitProps(props)}, nil
}

// splitProps parses "density, viscosity" into keys. Empty input selects all
// available properties.
func splitProps(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func runQuery(w io.Writer, e *fluid.Engine, q queryRequest, format string) error {
	name, err := e.ResolveFluid(q.Fluid)
	if err != nil {
		return err
	}
	res, err := e.Query(q.Fluid, q.T, q.P, q.Properties)
	if err != nil {
		return err
	}
	if format == "json" {
		return FormatResultJSON(w, name, q.T, q.P, res)
	}
	FormatResult(w, name, q.T, q.P, res)
	return nil
}

func init() {
	queryCmd.Flags().StringVar(&queryProps, "props", "", "Comma-separated property keys (default: all available)")
	queryCmd.Flags().StringVar(&queryFormat, "format", "table", "Output format (table, json)")
}
