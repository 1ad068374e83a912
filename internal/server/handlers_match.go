package server

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/sections"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req AnalyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	// Load the catalog and selection configs concurrently before extraction.
	var (
		catalog []db.Section
		configs []db.SectionConfig
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		catalog, err = s.sections.Catalog(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		configs, err = s.store.ListSectionConfigs(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.matcher.Analyze(r.Context(), req.JobDescription, catalog, configs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request, _ uuid.UUID) {
	var req AnalyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	insights, err := s.extractor.ExtractInsights(r.Context(), req.JobDescription)
	if err != nil {
		writeError(w, &matching.ErrExtractionUnavailable{Err: err})
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleRecalculateKeywords(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req RecalculateKeywordsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	selection := make([]db.Section, 0, len(req.Selection))
	for _, ref := range req.Selection {
		addr := sections.Address{Type: ref.Type, Key: ref.Key, Flavor: ref.Flavor}

		var (
			section *db.Section
			err     error
		)
		if ref.Version != "" {
			section, err = s.sections.GetVersion(r.Context(), userID, addr, ref.Version)
		} else {
			section, err = s.sections.GetCurrent(r.Context(), userID, addr)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		selection = append(selection, *section)
	}

	missing := matching.MissingForSelection(selection, req.Terms)
	writeJSON(w, http.StatusOK, map[string]any{"missing_keywords": missing})
}
