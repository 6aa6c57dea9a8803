package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sozercan/symptom-ai/apimodels"
	"github.com/sozercan/symptom-ai/internal/analyzer"
)

const (
	errInvalidBody     = "Invalid JSON body"
	errUserTextMissing = "userText is required and must be a non-empty string"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	slog.Info("Handling analyze request", "request_id", middleware.GetReqID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Debug("Rejected analyze request body", "error", err)
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, apimodels.Failure(errInvalidBody, 0))
		return
	}

	if req.Mock || s.mock {
		slog.Debug("Returning mock analysis")
		writeJSON(w, http.StatusOK, apimodels.Success(analyzer.MockResult(req.UserText)))
		return
	}

	if req.UserText == "" {
		writeJSON(w, http.StatusBadRequest, apimodels.Failure(errUserTextMissing, 0))
		return
	}

	raw, err := s.analyzer.Analyze(r.Context(), req.UserText)
	if err != nil {
		failure := analyzer.Classify(err)
		slog.Error("Analysis request failed",
			"error", err,
			"category", failure.Category,
			"upstream_status", failure.UpstreamStatus,
		)
		writeJSON(w, failure.HTTPStatus, apimodels.Failure(failure.Message, failure.UpstreamStatus))
		return
	}

	writeJSON(w, http.StatusOK, apimodels.Success(analyzer.Normalize(raw)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
