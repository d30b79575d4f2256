package enrich

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"etlmap/internal/extract"
	"etlmap/internal/model"
	"etlmap/internal/textgen"
)

func extractedEntities(t *testing.T) *model.Entities {
	t.Helper()
	entities, err := extract.Extract(extract.SyntheticDocument())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return entities
}

func TestEnrichWithGenerator(t *testing.T) {
	entities := extractedEntities(t)
	e := NewEnricher(textgen.Static{Text: "holistic analysis"})

	enriched, err := e.Enrich(context.Background(), entities)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if len(enriched) != len(entities.Transformations) {
		t.Fatalf("enriched %d, want %d", len(enriched), len(entities.Transformations))
	}

	for _, et := range enriched {
		// Single holistic analysis is shared across the run
		if et.AnalysisText != "holistic analysis" {
			t.Errorf("%s: AnalysisText = %q", et.Name, et.AnalysisText)
		}
		if !strings.HasPrefix(et.BusinessPurpose, "Data transformation of type ") {
			t.Errorf("%s: BusinessPurpose = %q", et.Name, et.BusinessPurpose)
		}
	}

	flt := enriched[0]
	if flt.BusinessPurpose != "Data transformation of type Filter" {
		t.Errorf("BusinessPurpose = %q", flt.BusinessPurpose)
	}
	if !reflect.DeepEqual(flt.InputFields, []string{"CUSTOMER_ID", "CUSTOMER_NAME", "CUSTOMER_STATUS"}) {
		t.Errorf("InputFields = %v", flt.InputFields)
	}
	if !reflect.DeepEqual(flt.OutputFields, []string{"CUSTOMER_ID", "CUSTOMER_NAME"}) {
		t.Errorf("OutputFields = %v", flt.OutputFields)
	}
}

func TestEnrichGeneratorFailure(t *testing.T) {
	entities := extractedEntities(t)
	e := NewEnricher(textgen.Disabled{})

	enriched, err := e.Enrich(context.Background(), entities)
	if err == nil {
		t.Fatal("Enrich() should report the generator failure")
	}
	// The stage still produces its full output
	if len(enriched) != 3 {
		t.Fatalf("enriched %d, want 3", len(enriched))
	}

	want := "Mock analysis for 3 transformations"
	for _, et := range enriched {
		if et.AnalysisText != want {
			t.Errorf("%s: AnalysisText = %q, want %q", et.Name, et.AnalysisText, want)
		}
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	e := NewEnricher(textgen.Disabled{})
	enriched, _ := e.Enrich(context.Background(), model.NewEntities())

	if enriched == nil {
		t.Fatal("Enrich() should return an empty slice, not nil")
	}
	if len(enriched) != 0 {
		t.Errorf("enriched = %v, want empty", enriched)
	}
}

func TestFallbackAnalysis(t *testing.T) {
	if got := FallbackAnalysis(0); got != "Mock analysis for 0 transformations" {
		t.Errorf("FallbackAnalysis(0) = %q", got)
	}
}

func TestAnalysisPrompt(t *testing.T) {
	entities := extractedEntities(t)
	prompt := AnalysisPrompt(entities)

	for _, want := range []string{"SRC_CUSTOMERS", "TGT_CUSTOMER_SUMMARY", "FLT_ACTIVE_CUSTOMERS", "Business purpose"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
