package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"etlmap/internal/extract"
	"etlmap/internal/logging"
	"etlmap/internal/report"
	"etlmap/internal/session"
	"etlmap/internal/storage"
)

var analyzeDemo bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a workflow XML export",
	Long: `Analyze a PowerCenter workflow XML export: extract sources, targets
and transformations, map their dependencies, and write a markdown report
into a fresh session folder. With --demo a built-in sample workflow is
analyzed instead of a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "Analyze a built-in sample workflow")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	var raw string
	switch {
	case analyzeDemo:
		raw = extract.SyntheticDocument()
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read workflow file: %w", err)
		}
		raw = string(data)
	default:
		return fmt.Errorf("provide a workflow XML file or use --demo")
	}

	ctx := cmd.Context()
	pipe, err := newPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sess, err := session.New(filepath.Join(configRoot, cfg.Sessions.Dir))
	if err != nil {
		return err
	}

	result := pipe.Run(ctx, raw, sess.ID, sess.Dir)

	reportPath, err := report.Write(result)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		logger.Warn("Report write failed", logging.Fields{
			"sessionId": result.SessionID,
			"error":     err.Error(),
		})
	}

	db, err := storage.Open(configRoot, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := storage.NewRunStore(db).Save(result, raw); err != nil {
		logger.Warn("Failed to persist run", logging.Fields{
			"sessionId": result.SessionID,
			"error":     err.Error(),
		})
	}

	fmt.Printf("Session:         %s\n", result.SessionID)
	fmt.Printf("Repository:      %s\n", result.Repository.Name)
	fmt.Printf("Sources:         %d\n", len(result.Entities.Sources))
	fmt.Printf("Targets:         %d\n", len(result.Entities.Targets))
	fmt.Printf("Transformations: %d\n", len(result.Transformations))
	fmt.Printf("Mappings:        %d\n", len(result.Entities.Mappings))
	if reportPath != "" {
		fmt.Printf("Report:          %s\n", reportPath)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("Errors:          %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}
