package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
)

// Request and response shapes for the REST API. Validation tags are enforced
// with go-playground/validator at the handler boundary.

// UserView is the public representation of a user, password hash excluded.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest is the payload for user registration.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the payload for changing a password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// LoginResponse carries the authenticated user and a bearer token.
type LoginResponse struct {
	User  *UserView `json:"user"`
	Token string    `json:"token"`
}

// CreateSectionRequest creates the first version at a new section address.
type CreateSectionRequest struct {
	Type    string          `json:"type" validate:"required"`
	Key     string          `json:"key" validate:"required,min=1,max=100"`
	Flavor  string          `json:"flavor" validate:"omitempty,max=100"`
	Content json.RawMessage `json:"content" validate:"required"`
	Tags    []string        `json:"tags"`
}

// UpdateSectionRequest appends a new version at an existing address.
type UpdateSectionRequest struct {
	Content json.RawMessage `json:"content" validate:"required"`
	Tags    []string        `json:"tags"`
}

// UpsertSectionConfigRequest sets the selection policy for a (type, key).
type UpsertSectionConfigRequest struct {
	Priority    string  `json:"priority" validate:"required,oneof=always normal never"`
	FixedFlavor *string `json:"fixed_flavor" validate:"required_if=Priority always,omitempty,max=100"`
}

// AnalyzeRequest matches a job description against the section catalog.
type AnalyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=10"`
}

// RecalculateKeywordsRequest recomputes missing keywords for a fixed selection.
type RecalculateKeywordsRequest struct {
	Terms     []string     `json:"terms" validate:"required"`
	Selection []SectionRef `json:"selection" validate:"required,dive"`
}

// SectionRef addresses one section version in a request payload.
type SectionRef struct {
	Type    string `json:"type" validate:"required"`
	Key     string `json:"key" validate:"required"`
	Flavor  string `json:"flavor"`
	Version string `json:"version"`
}

// GenerateRequest renders a resume from a resume config. When Application is
// set, a tracking record is created with the same config after a successful
// compile.
type GenerateRequest struct {
	ResumeConfig json.RawMessage           `json:"resume_config" validate:"required"`
	Application  *CreateApplicationRequest `json:"application"`
}

// CreateApplicationRequest records a new job application.
type CreateApplicationRequest struct {
	Company        string          `json:"company" validate:"required,min=1,max=200"`
	Role           string          `json:"role" validate:"required,min=1,max=200"`
	JobURL         *string         `json:"job_url" validate:"omitempty,url"`
	Location       *string         `json:"location"`
	JobDescription *string         `json:"job_description"`
	ResumeConfig   json.RawMessage `json:"resume_config"`
	AppliedAt      *time.Time      `json:"applied_at"`
	Notes          *string         `json:"notes"`
	Referral       *string         `json:"referral"`
	SalaryRange    *string         `json:"salary_range"`
}

// UpdateApplicationRequest patches application fields. Nil fields are left
// unchanged.
type UpdateApplicationRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof=applied phone_screen technical onsite offer rejected"`
	Notes       *string `json:"notes"`
	Referral    *string `json:"referral"`
	SalaryRange *string `json:"salary_range"`
}

// CreatePresetRequest saves a reusable resume config.
type CreatePresetRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	ResumeConfig json.RawMessage `json:"resume_config" validate:"required"`
}

// UpdatePresetRequest patches a preset. Nil fields are left unchanged.
type UpdatePresetRequest struct {
	Name         *string         `json:"name" validate:"omitempty,min=1,max=200"`
	ResumeConfig json.RawMessage `json:"resume_config"`
}

// CreateOutreachTemplateRequest saves a reusable outreach template.
type CreateOutreachTemplateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required"`
	Style   string `json:"style" validate:"omitempty,oneof=professional semi_formal casual friend"`
	Length  string `json:"length" validate:"omitempty,oneof=short long"`
}

// UpdateOutreachTemplateRequest patches template fields.
type UpdateOutreachTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
	Style   *string `json:"style" validate:"omitempty,oneof=professional semi_formal casual friend"`
	Length  *string `json:"length" validate:"omitempty,oneof=short long"`
}

// CreateOutreachThreadRequest starts a conversation thread.
type CreateOutreachThreadRequest struct {
	Company       string          `json:"company" validate:"required,min=1,max=200"`
	ContactName   *string         `json:"contact_name"`
	ContactMethod *string         `json:"contact_method"`
	ResumeConfig  json.RawMessage `json:"resume_config"`
}

// CreateOutreachMessageRequest appends a message to a thread.
type CreateOutreachMessageRequest struct {
	Direction string     `json:"direction" validate:"required,oneof=sent received"`
	Content   string     `json:"content" validate:"required"`
	MessageAt *time.Time `json:"message_at"`
}

// DraftOutreachRequest generates an initial outreach message.
type DraftOutreachRequest struct {
	TemplateID        uuid.UUID       `json:"template_id" validate:"required"`
	Company           string          `json:"company" validate:"required,min=1,max=200"`
	ContactName       string          `json:"contact_name"`
	ResumeConfig      json.RawMessage `json:"resume_config"`
	AdditionalContext string          `json:"additional_context"`
}

// DraftReplyRequest generates the next reply in a thread.
type DraftReplyRequest struct {
	Instructions string `json:"instructions"`
	Style        string `json:"style" validate:"omitempty,oneof=professional semi_formal casual friend"`
	Length       string `json:"length" validate:"omitempty,oneof=short long"`
}

// RefineOutreachRequest rewrites a drafted message.
type RefineOutreachRequest struct {
	Message      string `json:"message" validate:"required"`
	Instructions string `json:"instructions" validate:"required"`
	Style        string `json:"style" validate:"omitempty,oneof=professional semi_formal casual friend"`
	Length       string `json:"length" validate:"omitempty,oneof=short long"`
}

// ImportConversationRequest parses a pasted conversation into a thread.
type ImportConversationRequest struct {
	RawText string `json:"raw_text" validate:"required"`
}

// CreateContactRequest stores a networking contact card.
type CreateContactRequest struct {
	Name   string            `json:"name" validate:"required,min=1,max=200"`
	Fields []db.ContactField `json:"fields" validate:"dive"`
}

// UpdateContactRequest replaces a contact card.
type UpdateContactRequest struct {
	Name   string            `json:"name" validate:"required,min=1,max=200"`
	Fields []db.ContactField `json:"fields" validate:"dive"`
}

// CreateTodoRequest adds a todo item.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// UpdateTodoRequest patches a todo item.
type UpdateTodoRequest struct {
	Text     *string `json:"text" validate:"omitempty,min=1"`
	Done     *bool   `json:"done"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
}
