package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"etlmap/internal/errors"
	"etlmap/internal/logging"
	"etlmap/internal/model"
	"etlmap/internal/report"
	"etlmap/internal/session"
)

// maxUploadSize bounds workflow XML uploads
const maxUploadSize = 50 * 1024 * 1024

// AnalyzeContentRequest is the request body for POST /api/analyze/content
type AnalyzeContentRequest struct {
	XMLContent string `json:"xmlContent"`
}

// handleAnalyze handles POST /api/analyze with a multipart file upload.
// The file field is named "file"; a raw XML body is accepted as well.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := readUploadedDocument(r)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(raw) == "" {
		BadRequest(w, "empty workflow document")
		return
	}

	s.runAnalysis(w, r, raw)
}

// handleAnalyzeContent handles POST /api/analyze/content with the XML
// embedded in a JSON body.
func (s *Server) handleAnalyzeContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeContentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.XMLContent) == "" {
		BadRequest(w, "xmlContent is required")
		return
	}

	s.runAnalysis(w, r, req.XMLContent)
}

// runAnalysis executes the pipeline for one uploaded document and
// persists the outcome. Collaborator failures after the pipeline are
// recorded on the result rather than failing the request.
func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, raw string) {
	sess, err := session.New(s.config.Sessions.Dir)
	if err != nil {
		WriteAppError(w, errors.Wrap(errors.StorageFailed, "failed to allocate session", err))
		return
	}

	result := s.pipeline.Run(r.Context(), raw, sess.ID, sess.Dir)

	if _, err := report.Write(result); err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.logger.Warn("Report write failed", logging.Fields{
			"sessionId": result.SessionID,
			"error":     err.Error(),
		})
	}

	if err := s.runs.Save(result, raw); err != nil {
		s.logger.Warn("Failed to persist run", logging.Fields{
			"sessionId": result.SessionID,
			"error":     err.Error(),
		})
	}

	WriteJSON(w, result, http.StatusOK)
}

// handleListSessions handles GET /api/sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	summaries, err := s.runs.List(limit)
	if err != nil {
		WriteAppError(w, errors.Wrap(errors.StorageFailed, "failed to list sessions", err))
		return
	}

	WriteJSON(w, map[string]interface{}{
		"sessions": summaries,
		"count":    len(summaries),
	}, http.StatusOK)
}

// handleSessionRoutes dispatches /api/sessions/:id and its subresources
func (s *Server) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")

	id := parts[0]
	if !session.ValidID(id) {
		BadRequest(w, "invalid session id")
		return
	}

	switch {
	case len(parts) == 1:
		s.handleGetSession(w, id)
	case len(parts) == 2 && parts[1] == "report":
		s.handleGetReport(w, id)
	case len(parts) == 2 && parts[1] == "document":
		s.handleGetDocument(w, id)
	default:
		NotFound(w, "unknown session resource")
	}
}

// handleGetSession returns the stored result for one session
func (s *Server) handleGetSession(w http.ResponseWriter, id string) {
	result, err := s.getRun(w, id)
	if err != nil {
		return
	}
	WriteJSON(w, result, http.StatusOK)
}

// handleGetReport renders the markdown report for a stored session
func (s *Server) handleGetReport(w http.ResponseWriter, id string) {
	result, err := s.getRun(w, id)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Assemble(result)))
}

// handleGetDocument returns the original workflow XML for a session
func (s *Server) handleGetDocument(w http.ResponseWriter, id string) {
	doc, err := s.runs.Document(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// getRun fetches a stored run, writing the error response on failure
func (s *Server) getRun(w http.ResponseWriter, id string) (*model.RunResult, error) {
	result, err := s.runs.Get(id)
	if err != nil {
		s.writeStoreError(w, err)
		return nil, err
	}
	return result, nil
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.Error); ok {
		WriteAppError(w, appErr)
		return
	}
	WriteAppError(w, errors.Wrap(errors.StorageFailed, "failed to read session", err))
}

// readUploadedDocument extracts the workflow XML from an upload request.
// Multipart bodies use the "file" field; other content types are read
// as the raw document.
func readUploadedDocument(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return "", errors.New(errors.ScopeInvalid, "invalid multipart body")
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", errors.New(errors.ScopeInvalid, "missing 'file' upload field")
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		if err != nil {
			return "", errors.Wrap(errors.ScopeInvalid, "failed to read upload", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		return "", errors.Wrap(errors.ScopeInvalid, "failed to read request body", err)
	}
	return string(data), nil
}
