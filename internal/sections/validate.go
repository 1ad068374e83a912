package sections

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-forge/internal/db"
)

// Per-type JSON Schemas for section content payloads. Content is stored
// opaque; shape is only enforced here, at the write boundary.
var contentSchemas = map[string]string{
	db.SectionTypeExperience: `{
		"type": "object",
		"properties": {
			"title":    {"type": "string"},
			"company":  {"type": "string"},
			"location": {"type": "string"},
			"dates":    {"type": "string"},
			"bullets":  {"type": "array", "items": {"type": "string"}}
		},
		"required": ["title", "company", "bullets"]
	}`,
	db.SectionTypeProject: `{
		"type": "object",
		"properties": {
			"name":    {"type": "string"},
			"tech":    {"type": ["string", "array"]},
			"bullets": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["name", "bullets"]
	}`,
	db.SectionTypeSkills: `{
		"type": "object",
		"properties": {
			"skills": {
				"type": "object",
				"additionalProperties": {
					"type": "array",
					"items": {"type": "string"}
				}
			}
		},
		"required": ["skills"]
	}`,
	db.SectionTypeEducation: `{
		"type": "object",
		"properties": {
			"school":     {"type": "string"},
			"degree":     {"type": "string"},
			"location":   {"type": "string"},
			"dates":      {"type": "string"},
			"gpa":        {"type": "string"},
			"coursework": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["school", "degree"]
	}`,
	db.SectionTypeHeading: `{
		"type": "object",
		"properties": {
			"name":          {"type": "string"},
			"location":      {"type": "string"},
			"phone":         {"type": "string"},
			"phone_display": {"type": "string"},
			"email":         {"type": "string"},
			"linkedin":      {"type": "string"},
			"github":        {"type": "string"}
		},
		"required": ["name"]
	}`,
	db.SectionTypeLocation: `{
		"type": "object",
		"properties": {"value": {"type": "string", "minLength": 1}},
		"required": ["value"]
	}`,
	db.SectionTypeEmail: `{
		"type": "object",
		"properties": {"value": {"type": "string", "format": "email"}},
		"required": ["value"]
	}`,
}

var compiledSchemas = func() map[string]*gojsonschema.Schema {
	out := make(map[string]*gojsonschema.Schema, len(contentSchemas))
	for sectionType, raw := range contentSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid content schema for %s: %v", sectionType, err))
		}
		out[sectionType] = schema
	}
	return out
}()

// ValidateContent checks a content payload against its section type's schema
func ValidateContent(sectionType string, content json.RawMessage) error {
	schema, ok := compiledSchemas[sectionType]
	if !ok {
		return &ErrInvalidType{Type: sectionType}
	}

	if len(content) == 0 {
		return &ErrInvalidContent{Type: sectionType, Problems: []string{"content is empty"}}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return &ErrInvalidContent{Type: sectionType, Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &ErrInvalidContent{Type: sectionType, Problems: problems}
	}
	return nil
}
