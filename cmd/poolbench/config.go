package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/parpool/internal/benchcfg"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scenario files",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default scenarios to a file",
	Long: `Write the built-in scenarios to path (default: poolbench.yaml).
A path ending in .toml is written as TOML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "poolbench.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := benchcfg.Save(path, benchcfg.Default()); err != nil {
			return err
		}

		_, _ = green.Printf("✓ wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		_, _ = bold.Printf("threads: %s, repeat: %d\n", cfg.Threads, cfg.Repeat)
		for _, s := range cfg.Scenarios {
			fmt.Printf("  %-16s %-8s size=%d work=%d\n", s.Name, s.Category, s.Size, s.Work)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
