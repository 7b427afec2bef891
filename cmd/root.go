package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/fluidprops/fluid"
	"github.com/inference-sim/fluidprops/fluid/load"
)

var (
	tablePath   string // Table location: path, file://, sqlite://, postgres://, s3://
	configPath  string // Engine config YAML (optional)
	logLevel    string // Log verbosity level
	metricsAddr string // Address for the Prometheus /metrics endpoint (optional)

	metricsServer *http.Server
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fluidprops",
	Short: "Interpolated thermophysical property lookups over tabulated fluid data",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metricsServer == nil {
			return
		}
		// Keep /metrics scrapeable until interrupted.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logrus.Infof("Serving metrics on %s until interrupted", metricsServer.Addr)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEngine reads the configured table and builds the engine. When
// --metrics-addr is set, engine metrics are registered and served.
func loadEngine(ctx context.Context) *fluid.Engine {
	if tablePath == "" {
		logrus.Fatalf("--table is required")
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	e, reg, err := buildEngine(ctx, tablePath, cfg)
	if err != nil {
		logrus.Fatalf("Failed to load property table: %v", err)
	}
	if metricsAddr != "" {
		metricsServer = serveMetrics(metricsAddr, reg)
	}
	return e
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (fluid.Config, error) {
	if path == "" {
		return fluid.DefaultConfig(), nil
	}
	return fluid.LoadConfig(path)
}

// buildEngine loads rows from location and constructs an engine whose metrics
// are registered on a fresh registry.
func buildEngine(ctx context.Context, location string, cfg fluid.Config) (*fluid.Engine, *prometheus.Registry, error) {
	props, err := fluid.NewPropertySet(cfg.Properties)
	if err != nil {
		return nil, nil, err
	}
	rows, err := load.Open(ctx, location, props)
	if err != nil {
		return nil, nil, err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	e, err := fluid.NewEngine(rows, cfg, fluid.WithMetrics(fluid.NewMetrics(reg)))
	if err != nil {
		return nil, nil, err
	}
	return e, reg, nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("Metrics server: %v", err)
		}
	}()
	logrus.Infof("Metrics endpoint listening on %s/metrics", addr)
	return srv
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&tablePath, "table", "", "Property table location (path.csv, path.parquet, sqlite://, postgres://, s3://)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Engine config YAML (properties, source_priority, synonyms, bounds, warm_workers)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(fluidsCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(warmCmd)
}
