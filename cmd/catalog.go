package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/fluidprops/fluid"
)

var fluidsCmd = &cobra.Command{
	Use:   "fluids",
	Short: "List the fluids in the table with their sampled bounds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEngine(cmd.Context())
		FormatFluids(cmd.OutOrStdout(), e)
	},
}

var propertiesCmd = &cobra.Command{
	Use:   "properties <fluid>",
	Short: "List the properties of a fluid that support interpolation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEngine(cmd.Context())
		if err := runProperties(cmd.OutOrStdout(), e, args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the data sources in the table and their priority rank",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEngine(cmd.Context())
		FormatSources(cmd.OutOrStdout(), e.Sources())
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid <fluid> <property>",
	Short: "Print the resolved grid of one fluid property",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEngine(cmd.Context())
		g, err := e.Grid(args[0], args[1])
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		FormatGrid(cmd.OutOrStdout(), g)
	},
}

func runProperties(w io.Writer, e *fluid.Engine, name string) error {
	canonical, err := e.ResolveFluid(name)
	if err != nil {
		return err
	}
	props, err := e.AvailableProperties(name)
	if err != nil {
		return err
	}
	FormatProperties(w, canonical, props)
	return nil
}
