// Package model defines the normalized entity model extracted from a
// PowerCenter repository export, and the run types threaded through the
// analysis pipeline.
package model

// Source is a source table definition.
type Source struct {
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`       // DATABASETYPE
	Connection string   `json:"connection,omitempty"` // OWNERNAME
	Columns    []string `json:"columns"`
}

// Target is a target table definition. Shape matches Source; kept as a
// distinct type because the two play different roles in dependency
// inference.
type Target struct {
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	Connection string   `json:"connection,omitempty"`
	Columns    []string `json:"columns"`
}

// Transformation is a transformation stage with its ports split by
// direction, in document order.
type Transformation struct {
	Name        string   `json:"name"`
	Kind        string   `json:"type"` // e.g. "Filter", "Lookup", "Aggregator"
	Description string   `json:"description,omitempty"`
	InputPorts  []string `json:"inputPorts"`
	OutputPorts []string `json:"outputPorts"`
}

// EnrichedTransformation is a Transformation with the analysis payload
// attached by the enrichment stage.
type EnrichedTransformation struct {
	Name            string   `json:"name"`
	Kind            string   `json:"type"`
	BusinessPurpose string   `json:"businessPurpose"`
	InputFields     []string `json:"inputFields"`
	OutputFields    []string `json:"outputFields"`
	AnalysisText    string   `json:"analysisText"` // opaque, externally produced
}

// Mapping is a mapping definition. Validity is a YES/NO token in the
// document, defaulting to valid when absent.
type Mapping struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsValid     bool   `json:"isValid"`
}

// RepositoryInfo holds repository-level metadata from the export root.
type RepositoryInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// UnknownName is the sentinel used when the document omits a name.
const UnknownName = "Unknown"

// Entities is the full set of entities extracted from one document.
type Entities struct {
	Repository      RepositoryInfo   `json:"repository"`
	Sources         []Source         `json:"sources"`
	Targets         []Target         `json:"targets"`
	Transformations []Transformation `json:"transformations"`
	Mappings        []Mapping        `json:"mappings"`
}

// NewEntities returns an Entities value with empty (non-nil) collections
// so downstream stages and serialization never see nil slices.
func NewEntities() *Entities {
	return &Entities{
		Repository:      RepositoryInfo{Name: UnknownName, Version: UnknownName},
		Sources:         []Source{},
		Targets:         []Target{},
		Transformations: []Transformation{},
		Mappings:        []Mapping{},
	}
}
