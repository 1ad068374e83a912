package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SectionType constants for the fixed content-block enumeration
const (
	SectionTypeExperience = "experience"
	SectionTypeProject    = "project"
	SectionTypeSkills     = "skills"
	SectionTypeEducation  = "education"
	SectionTypeHeading    = "heading"
	SectionTypeLocation   = "location"
	SectionTypeEmail      = "email"
)

// ValidSectionType reports whether t is one of the known section types
func ValidSectionType(t string) bool {
	switch t {
	case SectionTypeExperience, SectionTypeProject, SectionTypeSkills,
		SectionTypeEducation, SectionTypeHeading, SectionTypeLocation, SectionTypeEmail:
		return true
	}
	return false
}

// DefaultFlavor is the fallback flavor for any section key
const DefaultFlavor = "default"

// Priority constants for section selection policy
const (
	PriorityAlways = "always"
	PriorityNormal = "normal"
	PriorityNever  = "never"
)

// ValidPriority reports whether p is a known priority value
func ValidPriority(p string) bool {
	return p == PriorityAlways || p == PriorityNormal || p == PriorityNever
}

// Section represents one version of a content block, addressed by
// (user, type, key, flavor, version). Exactly one version per address
// group carries is_current=true.
type Section struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Flavor    string          `json:"flavor"`
	Version   string          `json:"version"`
	Content   json.RawMessage `json:"content"`
	Tags      StringArray     `json:"tags"`
	IsCurrent bool            `json:"is_current"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SectionConfig holds per-(user,type,key) selection policy
type SectionConfig struct {
	ID          uuid.UUID `json:"id,omitempty"`
	UserID      uuid.UUID `json:"-"`
	SectionType string    `json:"section_type"`
	SectionKey  string    `json:"section_key"`
	Priority    string    `json:"priority"`
	FixedFlavor *string   `json:"fixed_flavor,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	default:
		return errors.New("unsupported source type for StringArray")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
