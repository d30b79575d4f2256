package depgraph

import (
	"reflect"
	"testing"

	"etlmap/internal/model"
)

func TestMapConcreteScenario(t *testing.T) {
	sources := []model.Source{{Name: "SRC_CUSTOMERS", Columns: []string{"CUSTOMER_ID", "CUSTOMER_NAME", "CUSTOMER_STATUS"}}}
	transformations := []model.EnrichedTransformation{{
		Name:        "FLT_ACTIVE_CUSTOMERS",
		Kind:        "Filter",
		InputFields: []string{"CUSTOMER_ID", "CUSTOMER_NAME", "CUSTOMER_STATUS"},
	}}
	targets := []model.Target{{Name: "TGT_CUSTOMER_SUMMARY"}}

	graph := NewMapper(nil).Map(sources, transformations, targets)

	if !reflect.DeepEqual(graph.Names("SRC_CUSTOMERS"), []string{}) {
		t.Errorf("SRC_CUSTOMERS deps = %v, want empty", graph.Names("SRC_CUSTOMERS"))
	}
	if !reflect.DeepEqual(graph.Names("FLT_ACTIVE_CUSTOMERS"),
		[]string{"CUSTOMER_ID", "CUSTOMER_NAME", "CUSTOMER_STATUS"}) {
		t.Errorf("FLT_ACTIVE_CUSTOMERS deps = %v", graph.Names("FLT_ACTIVE_CUSTOMERS"))
	}
	if !reflect.DeepEqual(graph.Names("TGT_CUSTOMER_SUMMARY"), []string{"FLT_ACTIVE_CUSTOMERS"}) {
		t.Errorf("TGT_CUSTOMER_SUMMARY deps = %v", graph.Names("TGT_CUSTOMER_SUMMARY"))
	}
	if !reflect.DeepEqual(graph.Keys(), []string{"SRC_CUSTOMERS", "FLT_ACTIVE_CUSTOMERS", "TGT_CUSTOMER_SUMMARY"}) {
		t.Errorf("Keys() = %v", graph.Keys())
	}
}

func TestSourceRootsLaw(t *testing.T) {
	sources := []model.Source{{Name: "S1"}, {Name: "S2"}, {Name: "S3"}}
	graph := NewMapper(nil).Map(sources, nil, nil)

	for _, s := range sources {
		refs, ok := graph.Get(s.Name)
		if !ok {
			t.Fatalf("source %s missing from graph", s.Name)
		}
		if len(refs) != 0 {
			t.Errorf("source %s deps = %v, want exactly empty", s.Name, refs)
		}
	}
}

func TestTargetOverApproximationLaw(t *testing.T) {
	transformations := []model.EnrichedTransformation{
		{Name: "EXP_A", InputFields: []string{"X"}},
		{Name: "LKP_B", InputFields: []string{"Y"}},
		{Name: "AGG_C"},
	}
	targets := []model.Target{{Name: "TGT_1"}, {Name: "TGT_2"}}

	graph := NewMapper(nil).Map(nil, transformations, targets)

	// Exact set equality: every target lists every transformation,
	// no more and no fewer
	want := []string{"EXP_A", "LKP_B", "AGG_C"}
	for _, tgt := range targets {
		if !reflect.DeepEqual(graph.Names(tgt.Name), want) {
			t.Errorf("%s deps = %v, want %v", tgt.Name, graph.Names(tgt.Name), want)
		}
	}
}

func TestTransformationFieldRefs(t *testing.T) {
	transformations := []model.EnrichedTransformation{
		{Name: "FLT", InputFields: []string{"A", "B"}, OutputFields: []string{"C"}},
	}
	graph := NewMapper(nil).Map(nil, transformations, nil)

	refs, _ := graph.Get("FLT")
	want := []model.DependencyRef{
		{Kind: model.FieldRef, Name: "A"},
		{Kind: model.FieldRef, Name: "B"},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("refs = %v, want field refs %v", refs, want)
	}
}

func TestTargetEntityRefs(t *testing.T) {
	transformations := []model.EnrichedTransformation{{Name: "EXP"}}
	graph := NewMapper(nil).Map(nil, transformations, []model.Target{{Name: "TGT"}})

	refs, _ := graph.Get("TGT")
	if len(refs) != 1 || refs[0].Kind != model.EntityRef {
		t.Errorf("refs = %v, want entity refs", refs)
	}
}

func TestNameCollisionLaterWriteWins(t *testing.T) {
	// A transformation and a target sharing a name: target evaluates
	// later, so its list wins
	transformations := []model.EnrichedTransformation{
		{Name: "SHARED", InputFields: []string{"F1"}},
		{Name: "OTHER"},
	}
	targets := []model.Target{{Name: "SHARED"}}

	graph := NewMapper(nil).Map(nil, transformations, targets)

	if graph.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (collision collapses keys)", graph.Len())
	}
	if !reflect.DeepEqual(graph.Names("SHARED"), []string{"SHARED", "OTHER"}) {
		t.Errorf("SHARED deps = %v, want target policy output", graph.Names("SHARED"))
	}
}

func TestDanglingReferencesAllowed(t *testing.T) {
	// Input fields referencing nothing extracted still become edges
	transformations := []model.EnrichedTransformation{
		{Name: "EXP", InputFields: []string{"NOT_AN_ENTITY"}},
	}
	graph := NewMapper(nil).Map(nil, transformations, nil)

	if !reflect.DeepEqual(graph.Names("EXP"), []string{"NOT_AN_ENTITY"}) {
		t.Errorf("EXP deps = %v", graph.Names("EXP"))
	}
	if _, ok := graph.Get("NOT_AN_ENTITY"); ok {
		t.Error("dangling reference should not create a graph key")
	}
}

type noDeps struct{}

func (noDeps) TargetDependencies(model.Target, []model.EnrichedTransformation) []model.DependencyRef {
	return nil
}

func TestCustomTargetPolicy(t *testing.T) {
	graph := NewMapper(noDeps{}).Map(nil,
		[]model.EnrichedTransformation{{Name: "EXP"}},
		[]model.Target{{Name: "TGT"}})

	if !reflect.DeepEqual(graph.Names("TGT"), []string{}) {
		t.Errorf("TGT deps = %v, want empty under custom policy", graph.Names("TGT"))
	}
}
