package rendering

import (
	"encoding/json"
	"strings"
)

// Content payload shapes for the section types the renderer understands.
// These mirror the stored JSON; decoding happens at render time.

// ExperienceContent is one work experience entry.
type ExperienceContent struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Dates    string   `json:"dates"`
	Bullets  []string `json:"bullets"`
}

// ProjectContent is one project entry. Tech accepts a string or a list.
type ProjectContent struct {
	Name    string   `json:"name"`
	Tech    TechList `json:"tech"`
	Bullets []string `json:"bullets"`
}

// TechList decodes from either a JSON string or an array of strings.
type TechList string

func (t *TechList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TechList(single)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*t = TechList(strings.Join(items, ", "))
	return nil
}

// SkillsContent maps category names to skill lists.
type SkillsContent struct {
	Skills map[string][]string `json:"skills"`
}

// HeadingContent is the resume header block.
type HeadingContent struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	Phone        string `json:"phone"`
	PhoneDisplay string `json:"phone_display"`
	Email        string `json:"email"`
	LinkedIn     string `json:"linkedin"`
	GitHub       string `json:"github"`
}

// EducationContent is one education entry.
type EducationContent struct {
	School     string   `json:"school"`
	Degree     string   `json:"degree"`
	Location   string   `json:"location"`
	Dates      string   `json:"dates"`
	GPA        string   `json:"gpa"`
	Coursework []string `json:"coursework"`
}

// ResumeContent is everything the document generator needs, already resolved
// from stored sections.
type ResumeContent struct {
	Heading     *HeadingContent
	Experiences []ExperienceContent
	Projects    []ProjectContent
	Skills      *SkillsContent
	Education   []EducationContent
}
