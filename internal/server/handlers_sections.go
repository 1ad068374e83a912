package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/sections"
)

func addressFromPath(r *http.Request) sections.Address {
	return sections.Address{
		Type:   r.PathValue("type"),
		Key:    r.PathValue("key"),
		Flavor: r.PathValue("flavor"),
	}
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateSectionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	addr := sections.Address{Type: req.Type, Key: req.Key, Flavor: req.Flavor}
	section, err := s.sections.Create(r.Context(), userID, addr, req.Content, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, section)
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	result, err := s.sections.List(r.Context(), userID, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": result})
}

func (s *Server) handleListSectionsByType(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	result, err := s.sections.List(r.Context(), userID, r.PathValue("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": result})
}

func (s *Server) handleGetCurrentSection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	section, err := s.sections.GetCurrent(r.Context(), userID, addressFromPath(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req UpdateSectionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	section, err := s.sections.Update(r.Context(), userID, addressFromPath(r), req.Content, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleListSectionVersions(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	versions, err := s.sections.ListVersions(r.Context(), userID, addressFromPath(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

func (s *Server) handleGetSectionVersion(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	section, err := s.sections.GetVersion(r.Context(), userID, addressFromPath(r), r.PathValue("version"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func (s *Server) handleDeleteSectionVersion(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	promoted, err := s.sections.DeleteVersion(r.Context(), userID, addressFromPath(r), r.PathValue("version"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{"deleted": true}
	if promoted != "" {
		resp["promoted_version"] = promoted
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSectionConfigs(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	configs, err := s.store.ListSectionConfigs(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"configs": configs})
}

func (s *Server) handleGetSectionConfig(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	cfg, err := s.store.GetSectionConfig(r.Context(), userID, r.PathValue("type"), r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	if cfg == nil {
		http.Error(w, "Section config not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleUpsertSectionConfig(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req UpsertSectionConfigRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	sectionType := r.PathValue("type")
	if !db.ValidSectionType(sectionType) {
		writeError(w, &sections.ErrInvalidType{Type: sectionType})
		return
	}

	cfg, err := s.store.UpsertSectionConfig(r.Context(), userID, sectionType, r.PathValue("key"), req.Priority, req.FixedFlavor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleDeleteSectionConfig(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	found, err := s.store.DeleteSectionConfig(r.Context(), userID, r.PathValue("type"), r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Section config not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
