package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/telemetry"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readConfiguration parses a plant configuration body (JSON or YAML) and validates it.
func (s *Server) readConfiguration(w http.ResponseWriter, r *http.Request) (domain.PlantConfiguration, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.PlantConfiguration{}, fmt.Errorf("%w: read body: %w", errBadRequest, err)
	}
	return s.parseConfiguration(body)
}

func (s *Server) parseConfiguration(body []byte) (domain.PlantConfiguration, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return domain.PlantConfiguration{}, fmt.Errorf("%w: empty plant configuration", errBadRequest)
	}
	cfg, err := s.parser.Parse(body)
	if err != nil {
		return domain.PlantConfiguration{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return *cfg, nil
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.readConfiguration(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	analysis := s.engine.Analyze(cfg)
	telemetry.ObserveCalculation(telemetry.KindCalculate, start)
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.readConfiguration(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	scenarios := s.engine.RunScenarios(cfg)
	telemetry.ObserveCalculation(telemetry.KindScenarios, start)
	writeJSON(w, http.StatusOK, scenarios)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.readConfiguration(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	sensitivity := s.engine.RunSensitivity(cfg)
	telemetry.ObserveCalculation(telemetry.KindSensitivity, start)
	writeJSON(w, http.StatusOK, sensitivity)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.readConfiguration(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start := time.Now()
	heatmap := s.engine.Heatmap(cfg)
	telemetry.ObserveCalculation(telemetry.KindHeatmap, start)
	writeJSON(w, http.StatusOK, heatmap)
}

// saveStudyRequest is decoded from JSON or YAML. The configuration stays a raw node so it
// goes through the same parser and validation as the calculation endpoints.
type saveStudyRequest struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Notes  string    `yaml:"notes"`
	Config yaml.Node `yaml:"config"`
}

func (s *Server) handleSaveStudy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: read body: %w", errBadRequest, err))
		return
	}
	var req saveStudyRequest
	if err := yaml.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: decode study: %w", errBadRequest, err))
		return
	}

	var raw []byte
	if !req.Config.IsZero() {
		if raw, err = yaml.Marshal(&req.Config); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: decode study config: %w", errBadRequest, err))
			return
		}
	}
	cfg, err := s.parseConfiguration(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	results := s.engine.Calculate(cfg)
	telemetry.ObserveCalculation(telemetry.KindCalculate, start)

	saved, err := s.store.Save(r.Context(), &domain.Study{
		ID:      req.ID,
		Name:    req.Name,
		Notes:   req.Notes,
		Config:  cfg,
		Results: results,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	telemetry.StudiesSavedTotal.Inc()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListStudies(w http.ResponseWriter, r *http.Request) {
	studies, err := s.store.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if studies == nil {
		studies = []domain.Study{}
	}
	writeJSON(w, http.StatusOK, studies)
}

func (s *Server) handleGetStudy(w http.ResponseWriter, r *http.Request) {
	study, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, study)
}

func (s *Server) handleDeleteStudy(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCompareStudies ranks stored results without recomputing them. Without ids every
// stored study takes part.
func (s *Server) handleCompareStudies(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = domain.MetricROI
	}

	var studies []domain.Study
	if ids := splitIDs(r.URL.Query().Get("ids")); len(ids) > 0 {
		for _, id := range ids {
			st, err := s.store.Get(r.Context(), id)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			studies = append(studies, *st)
		}
	} else {
		all, err := s.store.List(r.Context(), "")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		studies = all
	}

	start := time.Now()
	comparison, err := calculation.RankStudies(studies, metric)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	telemetry.ObserveCalculation(telemetry.KindCompare, start)
	writeJSON(w, http.StatusOK, comparison)
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
