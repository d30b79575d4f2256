package api

import (
	"net/http"

	"etlmap/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health and readiness checks
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)

	// Analysis
	s.router.HandleFunc("/api/analyze", s.handleAnalyze)                // POST multipart file upload
	s.router.HandleFunc("/api/analyze/content", s.handleAnalyzeContent) // POST JSON body

	// Stored sessions
	s.router.HandleFunc("/api/sessions", s.handleListSessions) // GET
	s.router.HandleFunc("/api/sessions/", s.handleSessionRoutes)

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    "etlmap HTTP API",
		"version": version.Version,
		"endpoints": []string{
			"GET /health - Health check",
			"GET /ready - Readiness check",
			"POST /api/analyze - Analyze an uploaded workflow XML file",
			"POST /api/analyze/content - Analyze XML passed in a JSON body",
			"GET /api/sessions - List stored analysis sessions",
			"GET /api/sessions/:id - Get a stored analysis result",
			"GET /api/sessions/:id/report - Get the rendered markdown report",
			"GET /api/sessions/:id/document - Get the original workflow XML",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
