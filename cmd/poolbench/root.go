package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	threads string
	output  string
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "poolbench",
	Short: "Benchmark and demo tool for the parpool thread pool",
	Long: `poolbench drives the parpool thread pool.

Commands:
  run       Run for-each scenarios and compare them with a serial run
  priority  Show the start order of prioritized tasks on one worker
  config    Manage scenario files`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Scenario file, YAML or TOML (default: built-in scenarios)")
	rootCmd.PersistentFlags().StringVarP(&threads, "threads", "t", "", "Worker threads: auto, nice, none or a count (overrides the config)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, yaml)")
}
