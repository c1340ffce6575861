package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/repowatch/repowatch/internal/runstore"
)

// statusHandler returns the latest run, or 404 when nothing has run yet.
func (s *Server) statusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := s.store.LatestRun()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if run == nil {
			writeError(w, http.StatusNotFound, "no runs recorded")
			return
		}
		writeJSON(w, run)
	}
}

func (s *Server) listRunsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		runs, err := s.store.ListRuns(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if runs == nil {
			runs = []*runstore.Run{} // keep the JSON an array, not null
		}
		writeJSON(w, runs)
	}
}

// runResultsHandler serves /api/runs/{id}/results.
func (s *Server) runResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/runs/")
		runID, ok := strings.CutSuffix(path, "/results")
		if !ok || runID == "" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		results, err := s.store.GetResults(runID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if results == nil {
			results = []runstore.TaskResult{}
		}
		writeJSON(w, results)
	}
}
