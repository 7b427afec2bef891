package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/inference-sim/fluidprops/fluid"
)

var (
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

// FormatResult writes a query result as a two-column table. Unavailable
// values are highlighted.
func FormatResult(w io.Writer, name string, t, p float64, res fluid.Result) {
	fmt.Fprintf(w, "%s at T=%g K, P=%g Pa:\n\n", cyan.Sprint(name), t, p)
	if len(res) == 0 {
		fmt.Fprintln(w, "No properties requested")
		return
	}
	fmt.Fprintf(w, "%-24s %s\n", "PROPERTY", "VALUE")
	fmt.Fprintf(w, "%-24s %s\n", strings.Repeat("-", 24), strings.Repeat("-", 16))
	na := 0
	for _, k := range res.Keys() {
		v := res[k]
		if !v.Available() {
			na++
			fmt.Fprintf(w, "%-24s %s\n", k, yellow.Sprint(fluid.NotAvailable))
			continue
		}
		fmt.Fprintf(w, "%-24s %s\n", k, v)
	}
	fmt.Fprintf(w, "\n%d %s, %d n/a\n", len(res), plural(len(res), "property", "properties"), na)
}

// queryJSON is the --format json document.
type queryJSON struct {
	Fluid      string       `json:"fluid"`
	T          float64      `json:"t"`
	P          float64      `json:"p"`
	Properties fluid.Result `json:"properties"`
}

// FormatResultJSON writes a query result as pretty-printed JSON.
func FormatResultJSON(w io.Writer, name string, t, p float64, res fluid.Result) error {
	data, err := json.MarshalIndent(queryJSON{Fluid: name, T: t, P: p, Properties: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// FormatFluids lists canonical fluids with their sampled envelope.
func FormatFluids(w io.Writer, e *fluid.Engine) {
	names := e.AvailableFluids()
	if len(names) == 0 {
		fmt.Fprintln(w, "No fluids in table")
		return
	}
	fmt.Fprintf(w, "%-20s %-26s %s\n", "FLUID", "T [K]", "P [Pa]")
	fmt.Fprintf(w, "%-20s %-26s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 26), strings.Repeat("-", 26))
	for _, n := range names {
		b, err := e.Bounds(n)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%-20s %-26s %s\n", n,
			fmt.Sprintf("[%g, %g]", b.TMin, b.TMax),
			fmt.Sprintf("[%g, %g]", b.PMin, b.PMax))
	}
	fmt.Fprintf(w, "\n%d %s\n", len(names), plural(len(names), "fluid", "fluids"))
}

// FormatProperties lists the interpolable properties of one fluid.
func FormatProperties(w io.Writer, name string, props []string) {
	if len(props) == 0 {
		fmt.Fprintf(w, "No interpolable properties for %s\n", name)
		return
	}
	fmt.Fprintf(w, "Properties for %s:\n", name)
	for _, p := range props {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

// FormatSources lists table sources best-first.
func FormatSources(w io.Writer, sources []fluid.SourceRank) {
	fmt.Fprintf(w, "%-6s %s\n", "RANK", "SOURCE")
	fmt.Fprintf(w, "%-6s %s\n", "------", "--------------------")
	for _, s := range sources {
		source := s.Source
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(w, "%-6d %s\n", s.Rank, source)
	}
}

// FormatGrid writes the grid with temperatures as rows and pressures as
// columns. Absent cells print as n/a.
func FormatGrid(w io.Writer, g *fluid.Grid) {
	fmt.Fprintf(w, "%s %s (%d/%d cells sampled)\n\n", g.Fluid, g.Property, g.Filled(), len(g.Ts)*len(g.Ps))
	fmt.Fprintf(w, "%-12s", "T \\ P")
	for _, p := range g.Ps {
		fmt.Fprintf(w, " %14g", p)
	}
	fmt.Fprintln(w)
	for i, t := range g.Ts {
		fmt.Fprintf(w, "%-12g", t)
		for j := range g.Ps {
			v := g.Values[i][j]
			if math.IsNaN(v) {
				fmt.Fprintf(w, " %s", yellow.Sprintf("%14s", fluid.NotAvailable))
				continue
			}
			fmt.Fprintf(w, " %14g", v)
		}
		fmt.Fprintln(w)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
