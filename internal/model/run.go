package model

import "time"

// RunState is the unit of work threaded through the pipeline. Each
// stage reads the fields populated by earlier stages and writes only
// its own; nothing is ever overwritten, so each stage's output can be
// inspected in isolation.
type RunState struct {
	// Populated before the pipeline starts
	RawDocument string
	SessionID   string
	OutputDir   string

	// Extract stage
	Entities *Entities

	// Enrich stage
	Enriched []EnrichedTransformation

	// MapDependencies stage
	Dependencies *DependencyGraph

	// Summarize stage
	Summary string

	// Append-only across all stages
	Errors []string
}

// NewRunState creates the initial state for one pipeline invocation.
func NewRunState(rawDocument, sessionID, outputDir string) *RunState {
	return &RunState{
		RawDocument: rawDocument,
		SessionID:   sessionID,
		OutputDir:   outputDir,
		Errors:      []string{},
	}
}

// AddError appends an error message to the run's error list.
func (s *RunState) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// RunResult is the externally visible outcome of one pipeline run,
// suitable for direct serialization.
type RunResult struct {
	SessionID       string                   `json:"sessionId"`
	OutputDir       string                   `json:"outputDir"`
	Repository      RepositoryInfo           `json:"repository"`
	Entities        *Entities                `json:"entities"`
	Transformations []EnrichedTransformation `json:"transformations"`
	Dependencies    *DependencyGraph         `json:"dependencies"`
	Summary         string                   `json:"summary"`
	Errors          []string                 `json:"errors"`
	CompletedAt     time.Time                `json:"completedAt"`
}

// Result converts the final run state into a RunResult.
func (s *RunState) Result() *RunResult {
	entities := s.Entities
	if entities == nil {
		entities = NewEntities()
	}
	enriched := s.Enriched
	if enriched == nil {
		enriched = []EnrichedTransformation{}
	}
	deps := s.Dependencies
	if deps == nil {
		deps = NewDependencyGraph()
	}
	return &RunResult{
		SessionID:       s.SessionID,
		OutputDir:       s.OutputDir,
		Repository:      entities.Repository,
		Entities:        entities,
		Transformations: enriched,
		Dependencies:    deps,
		Summary:         s.Summary,
		Errors:          s.Errors,
		CompletedAt:     time.Now().UTC(),
	}
}
