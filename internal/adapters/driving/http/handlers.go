package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness: backing stores reachable and a registry built
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not ready"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	if _, err := s.registryService.Stats(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "registry not built")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Maintainer login
// @Description  Authenticate with username and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Topic endpoints

// handleListTopics godoc
// @Summary      List topics
// @Description  List indexed records, optionally filtered by type, status, or tag
// @Tags         Topics
// @Produce      json
// @Param        type    query     string  false  "Record type (topic or concept)"
// @Param        status  query     string  false  "Record status"
// @Param        tag     query     string  false  "Tag"
// @Success      200     {array}   domain.TopicSummary
// @Failure      503     {object}  ErrorResponse  "Registry not built"
// @Router       /topics [get]
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	filter := domain.ListFilter{
		Type:   domain.RecordType(r.URL.Query().Get("type")),
		Status: domain.RecordStatus(r.URL.Query().Get("status")),
		Tag:    r.URL.Query().Get("tag"),
	}

	summaries, err := s.contentService.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrRegistryNotBuilt) {
			writeError(w, http.StatusServiceUnavailable, "registry not built")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list topics")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// handleGetTopic godoc
// @Summary      Resolve a topic
// @Description  Resolve a topic at a reading level and locale, with downward level fallback and locale fallback to English
// @Tags         Topics
// @Produce      json
// @Param        id      path      string  true   "Topic id"
// @Param        level   query     int     false  "Reading level 1-5 (default 1)"
// @Param        locale  query     string  false  "Locale en or es (default en)"
// @Success      200     {object}  domain.ResolvedContent
// @Failure      400     {object}  ErrorResponse  "Invalid level or locale"
// @Failure      404     {object}  ErrorResponse  "Topic not found or no level at or below the request"
// @Failure      503     {object}  ErrorResponse  "Registry not built"
// @Router       /topics/{id} [get]
func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	level := 1
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "level must be an integer")
			return
		}
		level = parsed
	}

	locale := domain.LocaleEN
	if raw := r.URL.Query().Get("locale"); raw != "" {
		locale = domain.Locale(raw)
	}

	resolved, err := s.contentService.Get(r.Context(), id, level, locale)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLevel):
			writeError(w, http.StatusBadRequest, "level must be between 1 and 5")
		case errors.Is(err, domain.ErrInvalidLocale):
			writeError(w, http.StatusBadRequest, "locale must be en or es")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "topic not found")
		case errors.Is(err, domain.ErrLevelUnavailable):
			writeError(w, http.StatusNotFound, "no content at or below the requested level")
		case errors.Is(err, domain.ErrRegistryNotBuilt):
			writeError(w, http.StatusServiceUnavailable, "registry not built")
		default:
			writeError(w, http.StatusInternalServerError, "failed to resolve topic")
		}
		return
	}

	writeJSON(w, http.StatusOK, resolved)
}

// handleGetTopicRecord godoc
// @Summary      Get a full record
// @Description  Get the full normalized record for a topic id, all levels and locales
// @Tags         Topics
// @Produce      json
// @Param        id   path      string  true  "Topic id"
// @Success      200  {object}  domain.ContentRecord
// @Failure      404  {object}  ErrorResponse  "Topic not found"
// @Failure      503  {object}  ErrorResponse  "Registry not built"
// @Router       /topics/{id}/record [get]
func (s *Server) handleGetTopicRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.contentService.GetRecord(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "topic not found")
		case errors.Is(err, domain.ErrRegistryNotBuilt):
			writeError(w, http.StatusServiceUnavailable, "registry not built")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get record")
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Maintainer endpoints

// handleGetReport godoc
// @Summary      Get the validation report
// @Description  Get the current registry build's validation report
// @Tags         Registry
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ValidationReport
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      503  {object}  ErrorResponse  "Registry not built"
// @Router       /report [get]
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.registryService.Report(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRegistryNotBuilt) {
			writeError(w, http.StatusServiceUnavailable, "registry not built")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleRebuild godoc
// @Summary      Rebuild the registry
// @Description  Reload the content source, validate, and swap in a fresh registry
// @Tags         Registry
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.BuildResult
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      409  {object}  ErrorResponse  "Rebuild already in progress"
// @Failure      422  {object}  ErrorResponse  "Strict build rejected"
// @Failure      500  {object}  ErrorResponse  "Rebuild failed"
// @Router       /admin/rebuild [post]
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	result, err := s.registryService.Rebuild(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRebuildInProgress):
			writeError(w, http.StatusConflict, "rebuild already in progress")
		case errors.Is(err, domain.ErrBuildRejected):
			writeError(w, http.StatusUnprocessableEntity, "build rejected by strict validation")
		default:
			writeError(w, http.StatusInternalServerError, "rebuild failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetLatestReport godoc
// @Summary      Get the latest archived report
// @Description  Most recently archived validation report, which may belong to a rejected build
// @Tags         Registry
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ValidationReport
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "No report archived yet"
// @Failure      503  {object}  ErrorResponse  "Report archive not configured"
// @Router       /report/latest [get]
func (s *Server) handleGetLatestReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.registryService.LatestReport(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArchiveUnavailable):
			writeError(w, http.StatusServiceUnavailable, "report archive not configured")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "no report archived yet")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get latest report")
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ArchiveResponse reports how many records an archive request stored
// @Description Archive request outcome
type ArchiveResponse struct {
	Archived int `json:"archived" example:"3"`
}

// handleArchiveRecords godoc
// @Summary      Archive content records
// @Description  Upsert authored records into the durable archive; served content changes on the next rebuild
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ArchiveResponse
// @Failure      400  {object}  ErrorResponse  "Invalid request body"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      503  {object}  ErrorResponse  "Record archive not configured"
// @Router       /admin/records [put]
func (s *Server) handleArchiveRecords(w http.ResponseWriter, r *http.Request) {
	var recs []*domain.ContentRecord
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.registryService.ArchiveRecords(r.Context(), recs); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "records must be a non-empty array with ids")
		case errors.Is(err, domain.ErrArchiveUnavailable):
			writeError(w, http.StatusServiceUnavailable, "record archive not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to archive records")
		}
		return
	}

	writeJSON(w, http.StatusOK, ArchiveResponse{Archived: len(recs)})
}

// handleGetStats godoc
// @Summary      Registry statistics
// @Description  Summary statistics for the current registry build
// @Tags         Registry
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.RegistryStats
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      503  {object}  ErrorResponse  "Registry not built"
// @Router       /admin/stats [get]
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.registryService.Stats(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRegistryNotBuilt) {
			writeError(w, http.StatusServiceUnavailable, "registry not built")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
