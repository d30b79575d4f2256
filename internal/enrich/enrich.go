// Package enrich attaches the analysis payload to extracted
// transformations. The analysis text itself comes from an external
// text-generation service; only the shape of the enrichment is owned
// here, and generator failure degrades to a deterministic fallback.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"etlmap/internal/model"
	"etlmap/internal/textgen"
)

// Enricher analyzes extracted transformations with a text generator.
type Enricher struct {
	generator textgen.Generator
}

// NewEnricher creates an enricher backed by the given generator.
func NewEnricher(generator textgen.Generator) *Enricher {
	return &Enricher{generator: generator}
}

// FallbackAnalysis is the deterministic analysis text substituted when
// the generator is unavailable.
func FallbackAnalysis(transformationCount int) string {
	return fmt.Sprintf("Mock analysis for %d transformations", transformationCount)
}

// businessPurpose derives the fixed-template purpose line for a
// transformation kind. This is a placeholder description, not inferred
// from the data.
func businessPurpose(kind string) string {
	return fmt.Sprintf("Data transformation of type %s", kind)
}

// Enrich produces the enriched transformation list. One analysis is
// generated for the whole run and attached identically to every
// transformation; if the generator fails, the fallback text is used
// and the returned error reports the failure without aborting.
func (e *Enricher) Enrich(ctx context.Context, entities *model.Entities) ([]model.EnrichedTransformation, error) {
	analysis, genErr := e.generator.Generate(ctx, AnalysisPrompt(entities))
	if genErr != nil {
		analysis = FallbackAnalysis(len(entities.Transformations))
	}

	enriched := make([]model.EnrichedTransformation, 0, len(entities.Transformations))
	for _, t := range entities.Transformations {
		enriched = append(enriched, model.EnrichedTransformation{
			Name:            t.Name,
			Kind:            t.Kind,
			BusinessPurpose: businessPurpose(t.Kind),
			InputFields:     t.InputPorts,
			OutputFields:    t.OutputPorts,
			AnalysisText:    analysis,
		})
	}

	return enriched, genErr
}

// AnalysisPrompt builds the structured prompt sent to the generator:
// JSON listings of the run's sources, targets and transformations.
func AnalysisPrompt(entities *model.Entities) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following PowerCenter workflow data and extract key transformation logic:\n\n")
	sb.WriteString("Sources: ")
	sb.WriteString(marshalIndent(entities.Sources))
	sb.WriteString("\nTargets: ")
	sb.WriteString(marshalIndent(entities.Targets))
	sb.WriteString("\nTransformations: ")
	sb.WriteString(marshalIndent(entities.Transformations))
	sb.WriteString("\n\nFor each transformation, identify:\n")
	sb.WriteString("1. Business purpose/logic\n")
	sb.WriteString("2. Data transformation type (filter, lookup, aggregation, etc.)\n")
	sb.WriteString("3. Input-output relationships\n")
	sb.WriteString("4. Potential data quality rules\n")
	return sb.String()
}

func marshalIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
