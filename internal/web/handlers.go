package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"

	"geoping/internal/classify"
	"geoping/internal/database"
	"geoping/internal/models"
)

// runResponse pairs a run with its classification
type runResponse struct {
	Run     *models.Run    `json:"run"`
	Verdict models.Verdict `json:"verdict"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

// intParam reads a positive integer query parameter, falling back to def
func intParam(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

// handleTargets handles /api/targets requests
func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.targets)
}

// handleRuns handles /api/runs requests
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.RecentRuns(intParam(r, "limit", 20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []models.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleRun handles /api/runs/{id} requests
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.PathValue("id"))
	if errors.Is(err, database.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Run: run, Verdict: classify.Classify(run.Results)})
}

// handleStats handles /api/stats requests
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetTargetStats(intParam(r, "days", 7))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = []models.TargetStats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleAnalyze handles /api/analyze requests. Only one analysis runs at a time.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.busy.TryLock() {
		http.Error(w, "analysis already in progress", http.StatusConflict)
		return
	}
	defer s.busy.Unlock()

	run, err := s.analyzer.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	verdict := classify.Classify(run.Results)
	if err := s.store.SaveRun(run, verdict); err != nil {
		log.WithError(err).WithField("run", run.ID).Error("failed to record run")
	}

	writeJSON(w, http.StatusOK, runResponse{Run: run, Verdict: verdict})
}
