package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"etlmap/internal/errors"
	"etlmap/internal/model"
)

// RunSummary is a lightweight view of a stored run for listing.
type RunSummary struct {
	SessionID           string    `json:"sessionId"`
	RepositoryName      string    `json:"repositoryName"`
	SourceCount         int       `json:"sourceCount"`
	TargetCount         int       `json:"targetCount"`
	TransformationCount int       `json:"transformationCount"`
	MappingCount        int       `json:"mappingCount"`
	ErrorCount          int       `json:"errorCount"`
	CompletedAt         time.Time `json:"completedAt"`
}

// RunStore persists completed pipeline runs.
type RunStore struct {
	db *DB
}

// NewRunStore creates a run store over an open database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Save persists a run result together with its (compressed) raw
// document.
func (s *RunStore) Save(result *model.RunResult, rawDocument string) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(errors.StorageFailed, "marshal run result", err)
	}

	doc, err := compress([]byte(rawDocument))
	if err != nil {
		return errors.Wrap(errors.StorageFailed, "compress document", err)
	}

	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO runs (
				session_id, repository_name, output_dir,
				source_count, target_count, transformation_count, mapping_count,
				error_count, result_json, document_zstd, completed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.SessionID,
			result.Repository.Name,
			result.OutputDir,
			len(result.Entities.Sources),
			len(result.Entities.Targets),
			len(result.Transformations),
			len(result.Entities.Mappings),
			len(result.Errors),
			string(resultJSON),
			doc,
			result.CompletedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return errors.Wrap(errors.StorageFailed, "insert run", err)
		}
		return nil
	})
}

// Get loads a stored run result by session ID.
func (s *RunStore) Get(sessionID string) (*model.RunResult, error) {
	var resultJSON string
	err := s.db.conn.QueryRow(
		"SELECT result_json FROM runs WHERE session_id = ?", sessionID,
	).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.SessionNotFound, "no run for session "+sessionID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailed, "query run", err)
	}

	var result model.RunResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, errors.Wrap(errors.StorageFailed, "unmarshal run result", err)
	}
	return &result, nil
}

// Document loads the original raw document for a session.
func (s *RunStore) Document(sessionID string) (string, error) {
	var doc []byte
	err := s.db.conn.QueryRow(
		"SELECT document_zstd FROM runs WHERE session_id = ?", sessionID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", errors.New(errors.SessionNotFound, "no run for session "+sessionID)
	}
	if err != nil {
		return "", errors.Wrap(errors.StorageFailed, "query document", err)
	}

	raw, err := decompress(doc)
	if err != nil {
		return "", errors.Wrap(errors.StorageFailed, "decompress document", err)
	}
	return string(raw), nil
}

// List returns stored run summaries, newest first.
func (s *RunStore) List(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.conn.Query(`
		SELECT session_id, repository_name,
		       source_count, target_count, transformation_count, mapping_count,
		       error_count, completed_at
		FROM runs ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailed, "list runs", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var s RunSummary
		var completedAt string
		if err := rows.Scan(&s.SessionID, &s.RepositoryName,
			&s.SourceCount, &s.TargetCount, &s.TransformationCount, &s.MappingCount,
			&s.ErrorCount, &completedAt); err != nil {
			return nil, errors.Wrap(errors.StorageFailed, "scan run", err)
		}
		if ts, err := time.Parse(time.RFC3339, completedAt); err == nil {
			s.CompletedAt = ts
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
