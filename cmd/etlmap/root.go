package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"etlmap/internal/config"
	"etlmap/internal/logging"
	"etlmap/internal/pipeline"
	"etlmap/internal/textgen"
	"etlmap/internal/version"
)

var (
	// configRoot is the CLI --root flag value
	configRoot string
)

var rootCmd = &cobra.Command{
	Use:   "etlmap",
	Short: "etlmap - ETL workflow metadata analyzer",
	Long: `etlmap extracts sources, targets and transformations from PowerCenter
workflow XML exports, maps the dependencies between them and renders a
markdown analysis report. Results are stored per session and can be
served over an HTTP API.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("etlmap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configRoot, "root", ".",
		"Project root holding the .etlmap directory")
}

// loadConfig loads the configuration for the current --root.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configRoot)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a logger from the configured format and level.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: os.Stderr,
	})
}

// newGenerator builds the configured text generator. Provider
// "disabled" produces deterministic fallback text for every run.
func newGenerator(ctx context.Context, cfg *config.Config) (textgen.Generator, error) {
	if cfg.Generator.Provider != "bedrock" {
		return textgen.Disabled{}, nil
	}
	return textgen.NewBedrock(ctx, textgen.BedrockConfig{
		ModelID:   cfg.Generator.ModelID,
		Region:    cfg.Generator.Region,
		Timeout:   cfg.Generator.Timeout(),
		MaxTokens: cfg.Generator.MaxTokens,
	})
}

// newPipeline wires a pipeline from the configuration.
func newPipeline(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*pipeline.Pipeline, error) {
	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.New(generator, nil, logger), nil
}
