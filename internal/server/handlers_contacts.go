package server

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateContactRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := s.store.CreateContact(r.Context(), userID, req.Name, req.Fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	contacts, err := s.store.ListContacts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateContactRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := s.store.UpdateContact(r.Context(), userID, id, req.Name, req.Fields)
	if err != nil {
		writeError(w, err)
		return
	}
	if contact == nil {
		http.Error(w, "Contact not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteContact(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Contact not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req CreateTodoRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	todo, err := s.store.CreateTodo(r.Context(), userID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	todos, err := s.store.ListTodos(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	todo, err := s.store.UpdateTodo(r.Context(), userID, id, req.Text, req.Done, req.Position)
	if err != nil {
		writeError(w, err)
		return
	}
	if todo == nil {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	found, err := s.store.DeleteTodo(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
