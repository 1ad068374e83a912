package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/llm"
)

func (s *Server) handleCreateOutreachTemplate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateOutreachTemplateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	style := req.Style
	if style == "" {
		style = llm.StyleProfessional
	}
	length := req.Length
	if length == "" {
		length = llm.LengthShort
	}

	tmpl, err := s.store.CreateOutreachTemplate(r.Context(), userID, req.Name, req.Content, style, length)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tmpl)
}

func (s *Server) handleListOutreachTemplates(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	templates, err := s.store.ListOutreachTemplates(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *Server) handleGetOutreachTemplate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	tmpl, err := s.store.GetOutreachTemplate(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleUpdateOutreachTemplate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateOutreachTemplateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	tmpl, err := s.store.UpdateOutreachTemplate(r.Context(), userID, id, req.Name, req.Content, req.Style, req.Length)
	if err != nil {
		writeError(w, err)
		return
	}
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleDeleteOutreachTemplate(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteOutreachTemplate(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleCreateOutreachThread(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateOutreachThreadRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	thread, err := s.store.CreateOutreachThread(r.Context(), userID, req.Company, req.ContactName, req.ContactMethod, req.ResumeConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, thread)
}

func (s *Server) handleListOutreachThreads(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	threads, err := s.store.ListOutreachThreads(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"threads": threads})
}

// getThread loads a thread owned by the user, writing a 404 when absent.
func (s *Server) getThread(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*db.OutreachThread, bool) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return nil, false
	}

	thread, err := s.store.GetOutreachThread(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if thread == nil {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return nil, false
	}
	return thread, true
}

func (s *Server) handleGetOutreachThread(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	thread, ok := s.getThread(w, r, userID)
	if !ok {
		return
	}

	messages, err := s.store.ListOutreachMessages(r.Context(), thread.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"thread": thread, "messages": messages})
}

func (s *Server) handleDeleteOutreachThread(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteOutreachThread(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Thread not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleCreateOutreachMessage(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	thread, ok := s.getThread(w, r, userID)
	if !ok {
		return
	}

	var req CreateOutreachMessageRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := s.store.CreateOutreachMessage(r.Context(), thread.ID, req.Direction, req.Content, req.MessageAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleListOutreachMessages(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	thread, ok := s.getThread(w, r, userID)
	if !ok {
		return
	}

	messages, err := s.store.ListOutreachMessages(r.Context(), thread.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handleDraftOutreach(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req DraftOutreachRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	tmpl, err := s.store.GetOutreachTemplate(r.Context(), userID, req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	resumeContext, err := s.resumeContextText(r, userID, req.ResumeConfig)
	if err != nil {
		writeError(w, err)
		return
	}

	draft, err := s.drafter.DraftInitial(r.Context(), llm.DraftRequest{
		TemplateContent:   tmpl.Content,
		Style:             tmpl.Style,
		Length:            tmpl.Length,
		Company:           req.Company,
		ContactName:       req.ContactName,
		ResumeContext:     resumeContext,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleDraftReply(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	thread, ok := s.getThread(w, r, userID)
	if !ok {
		return
	}

	var req DraftReplyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	messages, err := s.store.ListOutreachMessages(r.Context(), thread.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	resumeContext, err := s.resumeContextText(r, userID, thread.ResumeConfig)
	if err != nil {
		writeError(w, err)
		return
	}

	contactName := ""
	if thread.ContactName != nil {
		contactName = *thread.ContactName
	}

	style := req.Style
	if style == "" {
		style = llm.StyleSemiFormal
	}
	length := req.Length
	if length == "" {
		length = llm.LengthShort
	}

	draft, err := s.drafter.DraftReply(r.Context(), llm.ReplyRequest{
		History:       conversationHistory(messages),
		ResumeContext: resumeContext,
		Company:       thread.Company,
		ContactName:   contactName,
		Style:         style,
		Length:        length,
		Instructions:  req.Instructions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleRefineOutreach(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req RefineOutreachRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := s.drafter.Refine(r.Context(), req.Message, req.Instructions, req.Style, req.Length)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleImportConversation(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	thread, ok := s.getThread(w, r, userID)
	if !ok {
		return
	}

	var req ImportConversationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	parsed, err := s.drafter.ParseConversation(r.Context(), req.RawText)
	if err != nil {
		writeError(w, err)
		return
	}

	if !parsed.Success {
		// Unparseable dump is stored whole as a single received message.
		msg, err := s.store.CreateOutreachMessage(r.Context(), thread.ID, db.DirectionReceived, *parsed.RawFallback, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"parsed": false, "messages": []db.OutreachMessage{*msg}})
		return
	}

	imported := make([]db.OutreachMessage, 0, len(parsed.Messages))
	for _, pm := range parsed.Messages {
		direction := pm.Direction
		if direction != db.DirectionSent && direction != db.DirectionReceived {
			direction = db.DirectionReceived
		}

		var messageAt *time.Time
		if pm.MessageAt != nil {
			if ts, err := time.Parse("2006-01-02T15:04:05", *pm.MessageAt); err == nil {
				messageAt = &ts
			}
		}

		msg, err := s.store.CreateOutreachMessage(r.Context(), thread.ID, direction, pm.Content, messageAt)
		if err != nil {
			writeError(w, err)
			return
		}
		imported = append(imported, *msg)
	}
	writeJSON(w, http.StatusOK, map[string]any{"parsed": true, "messages": imported})
}

// conversationHistory flattens thread messages into the prompt format the
// drafter expects.
func conversationHistory(messages []db.OutreachMessage) string {
	if len(messages) == 0 {
		return "(no messages yet)"
	}

	var sb strings.Builder
	for _, m := range messages {
		label := "THEM"
		if m.Direction == db.DirectionSent {
			label = "ME"
		}
		sb.WriteString(fmt.Sprintf("[%s]: %s\n", label, m.Content))
	}
	return sb.String()
}

// resumeContextText resolves a resume config and flattens the referenced
// sections into plain text for prompt personalization. An empty config yields
// an empty-background placeholder rather than an error.
func (s *Server) resumeContextText(r *http.Request, userID uuid.UUID, rawConfig json.RawMessage) (string, error) {
	if len(rawConfig) == 0 || string(rawConfig) == "null" {
		return "(no background provided)", nil
	}

	var cfg resumeConfig
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return "", fmt.Errorf("failed to decode resume config: %w", err)
	}

	content, _, _, err := s.buildResumeContent(r, userID, &cfg)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, exp := range content.Experiences {
		sb.WriteString(fmt.Sprintf("Experience: %s at %s\n", exp.Title, exp.Company))
		for _, b := range exp.Bullets {
			sb.WriteString("  - " + b + "\n")
		}
	}
	for _, proj := range content.Projects {
		sb.WriteString("Project: " + proj.Name + "\n")
		for _, b := range proj.Bullets {
			sb.WriteString("  - " + b + "\n")
		}
	}
	if content.Skills != nil {
		for category, items := range content.Skills.Skills {
			sb.WriteString("Skills (" + category + "): " + strings.Join(items, ", ") + "\n")
		}
	}
	if sb.Len() == 0 {
		return "(no background provided)", nil
	}
	return sb.String(), nil
}
