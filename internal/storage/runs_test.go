package storage

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"etlmap/internal/errors"
	"etlmap/internal/logging"
	"etlmap/internal/model"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	db, err := Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testResult(sessionID string) *model.RunResult {
	entities := model.NewEntities()
	entities.Repository = model.RepositoryInfo{Name: "SALES_DW", Version: "1.0"}
	entities.Sources = []model.Source{{Name: "SRC_A", Columns: []string{"C1"}}}

	deps := model.NewDependencyGraph()
	deps.Set("SRC_A", nil)

	return &model.RunResult{
		SessionID:       sessionID,
		OutputDir:       "sessions/" + sessionID,
		Repository:      entities.Repository,
		Entities:        entities,
		Transformations: []model.EnrichedTransformation{},
		Dependencies:    deps,
		Summary:         "summary text",
		Errors:          []string{},
		CompletedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestSaveAndGet(t *testing.T) {
	store := NewRunStore(testDB(t))

	result := testResult("20231215_1030_ab12")
	if err := store.Save(result, "<POWERMART/>"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get("20231215_1030_ab12")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SessionID != result.SessionID {
		t.Errorf("SessionID = %q", got.SessionID)
	}
	if got.Repository.Name != "SALES_DW" {
		t.Errorf("Repository.Name = %q", got.Repository.Name)
	}
	if got.Summary != "summary text" {
		t.Errorf("Summary = %q", got.Summary)
	}
	if len(got.Entities.Sources) != 1 {
		t.Errorf("Sources = %d", len(got.Entities.Sources))
	}
}

func TestGetMissing(t *testing.T) {
	store := NewRunStore(testDB(t))

	_, err := store.Get("20990101_0000_dead")
	if err == nil {
		t.Fatal("Get() should fail for a missing session")
	}
	var typed *errors.Error
	if !stderrors.As(err, &typed) || typed.Code != errors.SessionNotFound {
		t.Errorf("error = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	store := NewRunStore(testDB(t))

	// Large repetitive document exercises the compression path
	doc := strings.Repeat("<SOURCE NAME=\"SRC_CUSTOMERS\"/>\n", 500)
	if err := store.Save(testResult("20231215_1030_cd34"), doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Document("20231215_1030_cd34")
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if got != doc {
		t.Error("document did not round-trip")
	}
}

func TestList(t *testing.T) {
	store := NewRunStore(testDB(t))

	for i, id := range []string{"20231215_1030_aa01", "20231216_1030_aa02", "20231217_1030_aa03"} {
		r := testResult(id)
		r.CompletedAt = time.Date(2023, 12, 15+i, 10, 30, 0, 0, time.UTC)
		if err := store.Save(r, "<doc/>"); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	summaries, err := store.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("List() = %d runs, want 3", len(summaries))
	}
	// Newest first
	if summaries[0].SessionID != "20231217_1030_aa03" {
		t.Errorf("first = %q, want newest", summaries[0].SessionID)
	}
	if summaries[0].SourceCount != 1 || summaries[0].RepositoryName != "SALES_DW" {
		t.Errorf("summary = %+v", summaries[0])
	}

	limited, err := store.List(2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) = %d runs", len(limited))
	}
}

func TestListEmpty(t *testing.T) {
	store := NewRunStore(testDB(t))

	summaries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Errorf("List() = %v, want empty non-nil", summaries)
	}
}

func TestSaveOverwrite(t *testing.T) {
	store := NewRunStore(testDB(t))

	r := testResult("20231215_1030_ee55")
	if err := store.Save(r, "v1"); err != nil {
		t.Fatal(err)
	}
	r.Summary = "updated"
	if err := store.Save(r, "v2"); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(r.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "updated" {
		t.Errorf("Summary = %q, want updated", got.Summary)
	}

	summaries, _ := store.List(10)
	if len(summaries) != 1 {
		t.Errorf("List() = %d runs, want 1 after overwrite", len(summaries))
	}
}
