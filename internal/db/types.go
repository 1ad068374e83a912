package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus constants for the application lifecycle
const (
	StatusApplied     = "applied"
	StatusPhoneScreen = "phone_screen"
	StatusTechnical   = "technical"
	StatusOnsite      = "onsite"
	StatusOffer       = "offer"
	StatusRejected    = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status
func ValidApplicationStatus(s string) bool {
	switch s {
	case StatusApplied, StatusPhoneScreen, StatusTechnical, StatusOnsite, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// User represents a user profile
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application represents a job-application record. The resume_config payload
// stores the exact section addresses the submitted resume was built from.
type Application struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Company        string          `json:"company"`
	Role           string          `json:"role"`
	JobURL         *string         `json:"job_url,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Status         string          `json:"status"`
	ResumeConfig   json.RawMessage `json:"resume_config"`
	JobDescription *string         `json:"job_description,omitempty"`
	AppliedAt      time.Time       `json:"applied_at"`
	Notes          *string         `json:"notes,omitempty"`
	Referral       *string         `json:"referral,omitempty"`
	SalaryRange    *string         `json:"salary_range,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ResumePreset is a named, reusable resume_config
type ResumePreset struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	ResumeConfig json.RawMessage `json:"resume_config"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OutreachTemplate is a user-authored message template for AI drafting
type OutreachTemplate struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Style     string    `json:"style"`
	Length    string    `json:"length"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OutreachThread tracks a cold-outreach conversation with one contact
type OutreachThread struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Company       string          `json:"company"`
	ContactName   *string         `json:"contact_name,omitempty"`
	ContactMethod *string         `json:"contact_method,omitempty"`
	ResumeConfig  json.RawMessage `json:"resume_config,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Message direction constants
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// OutreachMessage is one message within a thread
type OutreachMessage struct {
	ID        uuid.UUID  `json:"id"`
	ThreadID  uuid.UUID  `json:"thread_id"`
	Direction string     `json:"direction"`
	Content   string     `json:"content"`
	MessageAt *time.Time `json:"message_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ContactField is one labeled value on a contact card
type ContactField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Contact is a free-form contact card
type Contact struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Name      string         `json:"name"`
	Fields    []ContactField `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Todo is a checklist item
type Todo struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	IsDone    bool      `json:"is_done"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
