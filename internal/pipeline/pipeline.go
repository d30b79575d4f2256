// Package pipeline runs the fixed four-stage analysis over one
// document: Extract, Enrich, MapDependencies, Summarize. Transitions
// are unconditional; a stage failure is recorded in the run's error
// list and the next stage proceeds with whatever partial data exists,
// so a caller always gets a best-effort result, never an abort.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"etlmap/internal/depgraph"
	"etlmap/internal/enrich"
	"etlmap/internal/extract"
	"etlmap/internal/logging"
	"etlmap/internal/model"
	"etlmap/internal/textgen"
)

// Stage names the pipeline states, in order.
type Stage string

const (
	StageExtract         Stage = "extract"
	StageEnrich          Stage = "enrich"
	StageMapDependencies Stage = "map_dependencies"
	StageSummarize       Stage = "summarize"
	StageDone            Stage = "done"
)

// Pipeline wires the stages together with their collaborators.
type Pipeline struct {
	generator textgen.Generator
	enricher  *enrich.Enricher
	mapper    *depgraph.Mapper
	logger    *logging.Logger
}

// New creates a pipeline. A nil policy uses the default fan-in-all
// target inference.
func New(generator textgen.Generator, policy depgraph.TargetPolicy, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		generator: generator,
		enricher:  enrich.NewEnricher(generator),
		mapper:    depgraph.NewMapper(policy),
		logger:    logger,
	}
}

// Run executes all stages over the raw document and returns the final
// result. Every failure mode is captured into the result's error list;
// Run itself never fails.
func (p *Pipeline) Run(ctx context.Context, rawDocument, sessionID, outputDir string) *model.RunResult {
	state := model.NewRunState(rawDocument, sessionID, outputDir)

	for _, stage := range []Stage{StageExtract, StageEnrich, StageMapDependencies, StageSummarize} {
		p.logger.Debug("Entering pipeline stage", logging.Fields{
			"stage":     string(stage),
			"sessionId": sessionID,
		})
		p.runStage(ctx, stage, state)
	}

	p.logger.Info("Pipeline complete", logging.Fields{
		"stage":           string(StageDone),
		"sessionId":       sessionID,
		"sources":         len(state.Entities.Sources),
		"targets":         len(state.Entities.Targets),
		"transformations": len(state.Enriched),
		"errors":          len(state.Errors),
	})

	return state.Result()
}

// runStage dispatches one stage. Each stage writes only its own fields
// on the state; earlier stage output is read-only from here on.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, state *model.RunState) {
	switch stage {
	case StageExtract:
		entities, err := extract.Extract(state.RawDocument)
		state.Entities = entities
		if err != nil {
			state.AddError(err.Error())
		}

	case StageEnrich:
		enriched, err := p.enricher.Enrich(ctx, state.Entities)
		state.Enriched = enriched
		if err != nil {
			// Collaborator failure is non-fatal; the fallback text is
			// already attached.
			p.logger.Warn("Generator unavailable during enrichment", logging.Fields{
				"error": err.Error(),
			})
		}

	case StageMapDependencies:
		state.Dependencies = p.mapper.Map(state.Entities.Sources, state.Enriched, state.Entities.Targets)

	case StageSummarize:
		summary, err := p.generator.Generate(ctx, SummaryPrompt(state))
		if err != nil {
			summary = FallbackSummary(state.Entities.Repository.Name, len(state.Enriched))
			p.logger.Warn("Generator unavailable during summarization", logging.Fields{
				"error": err.Error(),
			})
		}
		state.Summary = summary
	}
}

// FallbackSummary is the deterministic summary substituted when the
// generator is unavailable.
func FallbackSummary(repositoryName string, transformationCount int) string {
	return fmt.Sprintf("Mock workflow summary for %s with %d transformations",
		repositoryName, transformationCount)
}

// SummaryPrompt builds the generator prompt for the final summary from
// the accumulated run state.
func SummaryPrompt(state *model.RunState) string {
	var sb strings.Builder
	sb.WriteString("Create a comprehensive workflow summary based on this PowerCenter analysis:\n\n")
	fmt.Fprintf(&sb, "Repository: %s\n", state.Entities.Repository.Name)
	fmt.Fprintf(&sb, "Sources: %d tables\n", len(state.Entities.Sources))
	fmt.Fprintf(&sb, "Targets: %d tables\n", len(state.Entities.Targets))
	fmt.Fprintf(&sb, "Transformations: %d components\n\n", len(state.Enriched))

	sb.WriteString("Transformation Details:\n")
	if data, err := json.MarshalIndent(state.Enriched, "", "  "); err == nil {
		sb.Write(data)
	}
	sb.WriteString("\n\nDependencies:\n")
	if data, err := json.MarshalIndent(state.Dependencies, "", "  "); err == nil {
		sb.Write(data)
	}

	sb.WriteString("\n\nProvide:\n")
	sb.WriteString("1. High-level workflow purpose\n")
	sb.WriteString("2. Data flow summary (source -> transformations -> target)\n")
	sb.WriteString("3. Key business rules identified\n")
	sb.WriteString("4. Potential optimization opportunities\n")
	return sb.String()
}
