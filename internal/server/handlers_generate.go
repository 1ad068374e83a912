package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/sections"
)

// resumeConfig names the section versions a resume is built from. Refs are
// "key:flavor" (current version) or "key:flavor:version"; the section type is
// implied by the field.
type resumeConfig struct {
	Experience []string `json:"experience"`
	Projects   []string `json:"projects"`
	Skills     string   `json:"skills"`
	Heading    string   `json:"heading"`
	Education  []string `json:"education"`
	Location   string   `json:"location"`
	Email      string   `json:"email"`
}

// valueContent is the payload shape of location and email sections.
type valueContent struct {
	Value string `json:"value"`
}

// resolveRef fetches the content for a "key:flavor[:version]" reference.
func (s *Server) resolveRef(r *http.Request, userID uuid.UUID, sectionType, ref string) (json.RawMessage, error) {
	parts := strings.Split(ref, ":")
	addr := sections.Address{Type: sectionType}

	var (
		section *db.Section
		err     error
	)
	switch len(parts) {
	case 2:
		addr.Key, addr.Flavor = parts[0], parts[1]
		section, err = s.sections.GetCurrent(r.Context(), userID, addr)
	case 3:
		addr.Key, addr.Flavor = parts[0], parts[1]
		section, err = s.sections.GetVersion(r.Context(), userID, addr, parts[2])
	default:
		return nil, fmt.Errorf("malformed section reference %q", ref)
	}
	if err != nil {
		return nil, err
	}
	return section.Content, nil
}

// buildResumeContent resolves every reference in the config and decodes the
// stored payloads into rendering types.
func (s *Server) buildResumeContent(r *http.Request, userID uuid.UUID, cfg *resumeConfig) (*rendering.ResumeContent, string, string, error) {
	content := &rendering.ResumeContent{}

	for _, ref := range cfg.Experience {
		raw, err := s.resolveRef(r, userID, db.SectionTypeExperience, ref)
		if err != nil {
			return nil, "", "", err
		}
		var exp rendering.ExperienceContent
		if err := json.Unmarshal(raw, &exp); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode experience %q: %w", ref, err)
		}
		content.Experiences = append(content.Experiences, exp)
	}

	for _, ref := range cfg.Projects {
		raw, err := s.resolveRef(r, userID, db.SectionTypeProject, ref)
		if err != nil {
			return nil, "", "", err
		}
		var proj rendering.ProjectContent
		if err := json.Unmarshal(raw, &proj); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode project %q: %w", ref, err)
		}
		content.Projects = append(content.Projects, proj)
	}

	if cfg.Skills != "" {
		raw, err := s.resolveRef(r, userID, db.SectionTypeSkills, cfg.Skills)
		if err != nil {
			return nil, "", "", err
		}
		var skills rendering.SkillsContent
		if err := json.Unmarshal(raw, &skills); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode skills %q: %w", cfg.Skills, err)
		}
		content.Skills = &skills
	}

	if cfg.Heading != "" {
		raw, err := s.resolveRef(r, userID, db.SectionTypeHeading, cfg.Heading)
		if err != nil {
			return nil, "", "", err
		}
		var heading rendering.HeadingContent
		if err := json.Unmarshal(raw, &heading); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode heading %q: %w", cfg.Heading, err)
		}
		content.Heading = &heading
	}

	for _, ref := range cfg.Education {
		raw, err := s.resolveRef(r, userID, db.SectionTypeEducation, ref)
		if err != nil {
			return nil, "", "", err
		}
		var edu rendering.EducationContent
		if err := json.Unmarshal(raw, &edu); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode education %q: %w", ref, err)
		}
		content.Education = append(content.Education, edu)
	}

	var locationOverride, emailOverride string
	if cfg.Location != "" {
		raw, err := s.resolveRef(r, userID, db.SectionTypeLocation, cfg.Location)
		if err != nil {
			return nil, "", "", err
		}
		var v valueContent
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode location %q: %w", cfg.Location, err)
		}
		locationOverride = v.Value
	}
	if cfg.Email != "" {
		raw, err := s.resolveRef(r, userID, db.SectionTypeEmail, cfg.Email)
		if err != nil {
			return nil, "", "", err
		}
		var v valueContent
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, "", "", fmt.Errorf("failed to decode email %q: %w", cfg.Email, err)
		}
		emailOverride = v.Value
	}

	return content, locationOverride, emailOverride, nil
}

func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, userID uuid.UUID, rawConfig json.RawMessage) (string, bool) {
	var cfg resumeConfig
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		http.Error(w, "Invalid resume_config", http.StatusBadRequest)
		return "", false
	}

	content, locationOverride, emailOverride, err := s.buildResumeContent(r, userID, &cfg)
	if err != nil {
		writeError(w, err)
		return "", false
	}

	texSource, err := rendering.GenerateDocument(content, locationOverride, emailOverride)
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return texSource, true
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req GenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	texSource, ok := s.renderDocument(w, r, userID, req.ResumeConfig)
	if !ok {
		return
	}

	pdf, err := rendering.CompilePDF(r.Context(), texSource)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Application != nil {
		if err := s.validator.Struct(req.Application); err != nil {
			http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
			return
		}

		appliedAt := time.Now()
		if req.Application.AppliedAt != nil {
			appliedAt = *req.Application.AppliedAt
		}
		_, err := s.store.CreateApplication(r.Context(), userID, &db.ApplicationCreateInput{
			Company:        req.Application.Company,
			Role:           req.Application.Role,
			JobURL:         req.Application.JobURL,
			Location:       req.Application.Location,
			ResumeConfig:   req.ResumeConfig,
			JobDescription: req.Application.JobDescription,
			AppliedAt:      appliedAt,
			Notes:          req.Application.Notes,
			Referral:       req.Application.Referral,
			SalaryRange:    req.Application.SalaryRange,
		})
		if err != nil {
			writeError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (s *Server) handleGeneratePreview(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req GenerateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	texSource, ok := s.renderDocument(w, r, userID, req.ResumeConfig)
	if !ok {
		return
	}

	pdf, err := rendering.CompilePDF(r.Context(), texSource)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tex_source": texSource,
		"pdf_base64": base64.StdEncoding.EncodeToString(pdf),
	})
}
