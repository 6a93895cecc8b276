package main

import (
	"fmt"
	"os"

	"atc-landing/internal/config"
	"atc-landing/internal/landing"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "landing",
	Short: "Landing clearance decisions for the KSIM approach",
	Long: `landing evaluates landing requests against the clearance rules used by the
simulator: a standard landing, a landing under priority overrides, and an
emergency landing with priority clearance. Anything else is denied.

It can also check YAML scenario files against their expected decisions and
report how thoroughly a scenario set exercises every condition.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/atc.yaml", "Config file (missing file falls back to defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error, off)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(coverageCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, err := config.ParseLogLevel(logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = logLevel
	}

	logger = log.New("landing")
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetHeader("${level}")
	cfg.ApplyLogging(logger)
	return nil
}

func newEngine() *landing.Engine {
	return landing.NewEngine(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
