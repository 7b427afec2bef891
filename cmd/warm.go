package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var warmWorkers int // Concurrent grid builds; 0 uses the config value

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Build every interpolation grid up front and report coverage",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEngine(cmd.Context())
		start := time.Now()
		stats, err := e.Warm(cmd.Context(), warmWorkers)
		if err != nil {
			logrus.Fatalf("Warm-up aborted: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d (fluid, property) pairs interpolable, built in %s\n",
			stats.Available, stats.Pairs, time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	warmCmd.Flags().IntVar(&warmWorkers, "workers", 0, "Concurrent grid builds (default: warm_workers from config)")
}
