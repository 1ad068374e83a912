package sections

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/db"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name        string
		sectionType string
		content     string
		wantErr     bool
	}{
		{
			name:        "valid experience",
			sectionType: db.SectionTypeExperience,
			content:     `{"title": "Software Engineer", "company": "Acme", "location": "Remote", "dates": "2022 - Present", "bullets": ["Built things"]}`,
		},
		{
			name:        "experience missing company",
			sectionType: db.SectionTypeExperience,
			content:     `{"title": "Software Engineer", "bullets": []}`,
			wantErr:     true,
		},
		{
			name:        "experience bullets wrong type",
			sectionType: db.SectionTypeExperience,
			content:     `{"title": "SWE", "company": "Acme", "bullets": "not a list"}`,
			wantErr:     true,
		},
		{
			name:        "valid project",
			sectionType: db.SectionTypeProject,
			content:     `{"name": "resume-forge", "tech": "Go, Postgres", "bullets": ["Did a thing"]}`,
		},
		{
			name:        "project tech as array",
			sectionType: db.SectionTypeProject,
			content:     `{"name": "resume-forge", "tech": ["Go", "Postgres"], "bullets": []}`,
		},
		{
			name:        "valid skills",
			sectionType: db.SectionTypeSkills,
			content:     `{"skills": {"Languages": ["Go", "Python"], "Tools": ["Docker"]}}`,
		},
		{
			name:        "skills category wrong type",
			sectionType: db.SectionTypeSkills,
			content:     `{"skills": {"Languages": "Go"}}`,
			wantErr:     true,
		},
		{
			name:        "valid heading",
			sectionType: db.SectionTypeHeading,
			content:     `{"name": "Jane Doe", "email": "jane@example.com", "github": "janedoe"}`,
		},
		{
			name:        "heading missing name",
			sectionType: db.SectionTypeHeading,
			content:     `{"email": "jane@example.com"}`,
			wantErr:     true,
		},
		{
			name:        "valid education",
			sectionType: db.SectionTypeEducation,
			content:     `{"school": "State University", "degree": "BS Computer Science", "gpa": "3.8"}`,
		},
		{
			name:        "valid location",
			sectionType: db.SectionTypeLocation,
			content:     `{"value": "New York, NY"}`,
		},
		{
			name:        "location empty value",
			sectionType: db.SectionTypeLocation,
			content:     `{"value": ""}`,
			wantErr:     true,
		},
		{
			name:        "valid email",
			sectionType: db.SectionTypeEmail,
			content:     `{"value": "jane@example.com"}`,
		},
		{
			name:        "unknown type",
			sectionType: "hobbies",
			content:     `{"value": "chess"}`,
			wantErr:     true,
		},
		{
			name:        "empty content",
			sectionType: db.SectionTypeExperience,
			content:     ``,
			wantErr:     true,
		},
		{
			name:        "malformed json",
			sectionType: db.SectionTypeExperience,
			content:     `{"title":`,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.sectionType, json.RawMessage(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateContentProblems(t *testing.T) {
	err := ValidateContent(db.SectionTypeExperience, json.RawMessage(`{"title": "SWE"}`))
	require.Error(t, err)

	var invalid *ErrInvalidContent
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, db.SectionTypeExperience, invalid.Type)
	assert.NotEmpty(t, invalid.Problems)
}
