// Package report renders a pipeline run into a human-readable markdown
// document and writes it to the run's session folder. It consumes the
// final RunResult; failures here never invalidate the in-memory result.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"etlmap/internal/errors"
	"etlmap/internal/model"
)

// FileName is the report file written into each session folder.
const FileName = "workflow_report.md"

// Assemble renders the run result as markdown.
func Assemble(result *model.RunResult) string {
	timestamp := result.CompletedAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	ts := timestamp.Format("2006-01-02 15:04:05")

	var sb strings.Builder

	sb.WriteString("# PowerCenter Workflow Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Session ID:** %s  \n", result.SessionID)
	fmt.Fprintf(&sb, "**Generated:** %s  \n", ts)
	fmt.Fprintf(&sb, "**Repository:** %s\n\n", result.Repository.Name)
	sb.WriteString("---\n\n")

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## Repository Information\n\n")
	fmt.Fprintf(&sb, "- **Repository Name:** %s\n", result.Repository.Name)
	fmt.Fprintf(&sb, "- **Version:** %s\n", result.Repository.Version)
	fmt.Fprintf(&sb, "- **Total Sources:** %d\n", len(result.Entities.Sources))
	fmt.Fprintf(&sb, "- **Total Targets:** %d\n", len(result.Entities.Targets))
	fmt.Fprintf(&sb, "- **Total Transformations:** %d\n", len(result.Transformations))
	fmt.Fprintf(&sb, "- **Total Mappings:** %d\n\n", len(result.Entities.Mappings))
	sb.WriteString("---\n\n")

	sb.WriteString("## Data Sources\n\n")
	for i, src := range result.Entities.Sources {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, src.Name)
		fmt.Fprintf(&sb, "- **Type:** %s\n", orUnknown(src.Type))
		fmt.Fprintf(&sb, "- **Connection:** %s\n", orUnknown(src.Connection))
		fmt.Fprintf(&sb, "- **Columns:** %s\n\n", strings.Join(src.Columns, ", "))
	}

	sb.WriteString("## Data Targets\n\n")
	for i, tgt := range result.Entities.Targets {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, tgt.Name)
		fmt.Fprintf(&sb, "- **Type:** %s\n", orUnknown(tgt.Type))
		fmt.Fprintf(&sb, "- **Connection:** %s\n", orUnknown(tgt.Connection))
		fmt.Fprintf(&sb, "- **Columns:** %s\n\n", strings.Join(tgt.Columns, ", "))
	}

	sb.WriteString("## Transformations\n\n")
	for i, trans := range result.Transformations {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, trans.Name)
		fmt.Fprintf(&sb, "- **Type:** %s\n", orUnknown(trans.Kind))
		fmt.Fprintf(&sb, "- **Business Purpose:** %s\n", trans.BusinessPurpose)
		fmt.Fprintf(&sb, "- **Input Fields:** %s\n", strings.Join(trans.InputFields, ", "))
		fmt.Fprintf(&sb, "- **Output Fields:** %s\n", strings.Join(trans.OutputFields, ", "))
		fmt.Fprintf(&sb, "- **Analysis:** %s\n\n", trans.AnalysisText)
	}

	sb.WriteString("## Data Dependencies\n\n")
	for _, name := range result.Dependencies.Keys() {
		deps := result.Dependencies.Names(name)
		if len(deps) > 0 {
			fmt.Fprintf(&sb, "- **%s** depends on: %s\n", name, strings.Join(deps, ", "))
		} else {
			fmt.Fprintf(&sb, "- **%s** has no dependencies\n", name)
		}
	}

	if len(result.Errors) > 0 {
		sb.WriteString("\n## Errors and Warnings\n\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
	}

	fmt.Fprintf(&sb, "\n---\n\n*Report generated by etlmap on %s*\n", ts)

	return sb.String()
}

// Write assembles the report and writes it into the result's output
// directory, returning the file path.
func Write(result *model.RunResult) (string, error) {
	content := Assemble(result)
	path := filepath.Join(result.OutputDir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrap(errors.ReportWriteFailed, "write report", err)
	}
	return path, nil
}

func orUnknown(s string) string {
	if s == "" {
		return model.UnknownName
	}
	return s
}
