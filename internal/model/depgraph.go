package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RefKind distinguishes what a dependency reference points at. The
// source schema conflates field names and entity names, so the graph
// records which namespace each edge was inferred from rather than
// pretending they are the same thing.
type RefKind string

const (
	// EntityRef names another extracted entity.
	EntityRef RefKind = "entity"
	// FieldRef names a transformation port; the referenced name may not
	// correspond to any extracted entity.
	FieldRef RefKind = "field"
)

// DependencyRef is one inferred dependency edge.
type DependencyRef struct {
	Kind RefKind `json:"kind"`
	Name string  `json:"name"`
}

// DependencyGraph maps entity names to their ordered dependency lists.
// Key order is insertion order, so serialized output is deterministic
// and mirrors evaluation order (sources, then transformations, then
// targets).
type DependencyGraph struct {
	keys []string
	deps map[string][]DependencyRef
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		keys: []string{},
		deps: map[string][]DependencyRef{},
	}
}

// Set records the dependency list for an entity name. Setting an
// existing key overwrites its list but keeps its original position.
func (g *DependencyGraph) Set(name string, refs []DependencyRef) {
	if _, ok := g.deps[name]; !ok {
		g.keys = append(g.keys, name)
	}
	if refs == nil {
		refs = []DependencyRef{}
	}
	g.deps[name] = refs
}

// Get returns the dependency list for an entity name.
func (g *DependencyGraph) Get(name string) ([]DependencyRef, bool) {
	refs, ok := g.deps[name]
	return refs, ok
}

// Names returns just the referenced names for an entity, in order.
func (g *DependencyGraph) Names(name string) []string {
	refs := g.deps[name]
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}

// Keys returns entity names in insertion order.
func (g *DependencyGraph) Keys() []string {
	return g.keys
}

// Len returns the number of entities in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.keys)
}

// MarshalJSON serializes the graph as an ordered object mapping entity
// names to arrays of dependency names, matching the wire contract.
func (g *DependencyGraph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(g.Names(key))
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a graph from its serialized object form. Go
// maps do not preserve order, so keys are re-read from the raw message
// stream to keep insertion order stable.
func (g *DependencyGraph) UnmarshalJSON(data []byte) error {
	g.keys = []string{}
	g.deps = map[string][]DependencyRef{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dependency graph: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		var names []string
		if err := dec.Decode(&names); err != nil {
			return err
		}
		refs := make([]DependencyRef, len(names))
		for i, n := range names {
			// Serialized form drops ref kinds; restored edges are
			// entity refs.
			refs[i] = DependencyRef{Kind: EntityRef, Name: n}
		}
		g.Set(key, refs)
	}
	return nil
}
