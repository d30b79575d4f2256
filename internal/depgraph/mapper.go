// Package depgraph infers the inter-entity dependency graph from the
// enriched entity set. Inference is rule-based per entity kind and
// deliberately coarse: referenced names are not validated against the
// extracted entities, so dangling edges are allowed.
package depgraph

import (
	"etlmap/internal/model"
)

// TargetPolicy decides which dependencies a target declares. It is an
// explicit strategy value so the coarse default can be swapped for
// precise lineage tracing without touching orchestration code.
type TargetPolicy interface {
	// TargetDependencies returns the dependency list for one target.
	TargetDependencies(target model.Target, transformations []model.EnrichedTransformation) []model.DependencyRef
}

// FanInAll is the reference policy: every target depends on every
// transformation in the run, whether or not that transformation feeds
// it. This over-approximation guarantees no target is reported as
// dependency-free, at the cost of precision.
type FanInAll struct{}

// TargetDependencies returns every transformation name as an entity ref.
func (FanInAll) TargetDependencies(_ model.Target, transformations []model.EnrichedTransformation) []model.DependencyRef {
	refs := make([]model.DependencyRef, 0, len(transformations))
	for _, t := range transformations {
		refs = append(refs, model.DependencyRef{Kind: model.EntityRef, Name: t.Name})
	}
	return refs
}

// Mapper builds dependency graphs under a target policy.
type Mapper struct {
	policy TargetPolicy
}

// NewMapper creates a mapper. A nil policy defaults to FanInAll.
func NewMapper(policy TargetPolicy) *Mapper {
	if policy == nil {
		policy = FanInAll{}
	}
	return &Mapper{policy: policy}
}

// Map infers the dependency graph. Rules, applied in evaluation order
// (sources, transformations, targets; a later write on a shared name
// silently overwrites the earlier):
//  1. Every source is a dependency root with an empty list.
//  2. Every transformation depends on its input field names. Field
//     names are used directly as dependency keys; the source schema
//     conflates field-level and entity-level namespaces, and that
//     conflation is kept rather than silently fixed.
//  3. Every target's list comes from the target policy.
func (m *Mapper) Map(sources []model.Source, transformations []model.EnrichedTransformation, targets []model.Target) *model.DependencyGraph {
	graph := model.NewDependencyGraph()

	for _, s := range sources {
		graph.Set(s.Name, nil)
	}

	for _, t := range transformations {
		refs := make([]model.DependencyRef, 0, len(t.InputFields))
		for _, field := range t.InputFields {
			refs = append(refs, model.DependencyRef{Kind: model.FieldRef, Name: field})
		}
		graph.Set(t.Name, refs)
	}

	for _, tgt := range targets {
		graph.Set(tgt.Name, m.policy.TargetDependencies(tgt, transformations))
	}

	return graph
}
