package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
)

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateApplicationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	appliedAt := time.Now()
	if req.AppliedAt != nil {
		appliedAt = *req.AppliedAt
	}

	app, err := s.store.CreateApplication(r.Context(), userID, &db.ApplicationCreateInput{
		Company:        req.Company,
		Role:           req.Role,
		JobURL:         req.JobURL,
		Location:       req.Location,
		ResumeConfig:   req.ResumeConfig,
		JobDescription: req.JobDescription,
		AppliedAt:      appliedAt,
		Notes:          req.Notes,
		Referral:       req.Referral,
		SalaryRange:    req.SalaryRange,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	status := r.URL.Query().Get("status")
	if status != "" && !db.ValidApplicationStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	apps, err := s.store.ListApplications(r.Context(), userID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.store.GetApplication(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if app == nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateApplicationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	app, err := s.store.UpdateApplication(r.Context(), userID, id, &db.ApplicationUpdateInput{
		Status:      req.Status,
		Notes:       req.Notes,
		Referral:    req.Referral,
		SalaryRange: req.SalaryRange,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if app == nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteApplication(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreatePresetRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	preset, err := s.store.CreateResumePreset(r.Context(), userID, req.Name, req.ResumeConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, preset)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	presets, err := s.store.ListResumePresets(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	preset, err := s.store.GetResumePreset(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if preset == nil {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleUpdatePreset(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePresetRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	preset, err := s.store.UpdateResumePreset(r.Context(), userID, id, req.Name, req.ResumeConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	if preset == nil {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteResumePreset(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
