package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"etlmap/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize etlmap configuration",
	Long:  "Creates a .etlmap/ directory with default configuration under the project root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .etlmap directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := filepath.Join(configRoot, ".etlmap")
	configPath := filepath.Join(dir, "config.json")

	if _, err := os.Stat(dir); err == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success (CI-friendly)
			fmt.Println("etlmap already initialized.")
			fmt.Printf("Configuration at: %s\n", configPath)
			fmt.Println("\nRun 'etlmap init --force' to reinitialize.")
			return nil
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove existing .etlmap directory: %w", err)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configRoot); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Println("etlmap initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'etlmap analyze --demo' to try the sample workflow")
	fmt.Println("  2. Run 'etlmap serve' to start the HTTP API")

	return nil
}
