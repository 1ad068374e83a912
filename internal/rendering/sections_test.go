package rendering

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceTeX(t *testing.T) {
	tex := ExperienceTeX([]ExperienceContent{
		{
			Title:    "Software Engineer",
			Company:  "Acme & Co",
			Location: "Seattle, WA",
			Dates:    "2022 - Present",
			Bullets:  []string{"Scaled the API to **1M users**"},
		},
	})

	assert.Contains(t, tex, "\\section{Experience}")
	assert.Contains(t, tex, "\\resumeSubheadingExp")
	assert.Contains(t, tex, "\\textbf{Software Engineer}")
	assert.Contains(t, tex, "Acme \\& Co")
	assert.Contains(t, tex, "\\resumeItem{Scaled the API to \\textbf{1M users}}")
	assert.Contains(t, tex, "\\resumeSubHeadingListEnd")
}

func TestProjectsTeX(t *testing.T) {
	tex := ProjectsTeX([]ProjectContent{
		{Name: "resume-forge", Tech: "Go, Postgres", Bullets: []string{"Versioned section storage"}},
	})

	assert.Contains(t, tex, "\\section{Projects}")
	assert.Contains(t, tex, "\\resumeProjectHeading")
	assert.Contains(t, tex, "\\textbf{resume-forge} $|$ \\textit{Go, Postgres}")
}

func TestTechListDecodesStringOrArray(t *testing.T) {
	var fromString ProjectContent
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "tech": "Go, Redis"}`), &fromString))
	assert.Equal(t, TechList("Go, Redis"), fromString.Tech)

	var fromArray ProjectContent
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "tech": ["Go", "Redis"]}`), &fromArray))
	assert.Equal(t, TechList("Go, Redis"), fromArray.Tech)
}

func TestSkillsTeXSortsCategories(t *testing.T) {
	tex := SkillsTeX(&SkillsContent{Skills: map[string][]string{
		"Tools":     {"Docker", "Terraform"},
		"Languages": {"Go", "Python"},
	}})

	assert.Contains(t, tex, "\\textbf{Languages:} & Go, Python.")
	assert.Contains(t, tex, "\\textbf{Tools:} & Docker, Terraform.")
	assert.Less(t, strings.Index(tex, "Languages"), strings.Index(tex, "Tools"))
}

func TestHeadingTeXOverrides(t *testing.T) {
	heading := &HeadingContent{
		Name:     "Jane Doe",
		Location: "Boston, MA",
		Email:    "old@example.com",
		Phone:    "+15551234567",
	}

	tex := HeadingTeX(heading, "Seattle, WA", "new@example.com")

	assert.Contains(t, tex, "\\textbf{\\huge Jane Doe}")
	assert.Contains(t, tex, "Seattle, WA")
	assert.NotContains(t, tex, "Boston, MA")
	assert.Contains(t, tex, "mailto:new@example.com")
	assert.NotContains(t, tex, "old@example.com")
	// Phone display falls back to the raw number
	assert.Contains(t, tex, "\\underline{+15551234567}")
}

func TestEducationTeX(t *testing.T) {
	tex := EducationTeX([]EducationContent{
		{
			School:     "State University",
			Degree:     "BS Computer Science",
			Location:   "Amherst, MA",
			Dates:      "2018 - 2022",
			GPA:        "3.8",
			Coursework: []string{"Distributed Systems", "Databases"},
		},
	})

	assert.Contains(t, tex, "\\section{Education}")
	assert.Contains(t, tex, "State University")
	assert.Contains(t, tex, "BS Computer Science (GPA: 3.8)")
	assert.Contains(t, tex, "Coursework: Distributed Systems, Databases")
}

func TestGenerateDocument(t *testing.T) {
	content := &ResumeContent{
		Heading: &HeadingContent{Name: "Jane Doe", Email: "jane@example.com"},
		Experiences: []ExperienceContent{
			{Title: "SWE", Company: "Acme", Bullets: []string{"Did things"}},
		},
		Skills: &SkillsContent{Skills: map[string][]string{"Languages": {"Go"}}},
	}

	doc, err := GenerateDocument(content, "", "")
	require.NoError(t, err)

	assert.Contains(t, doc, "\\documentclass")
	assert.Contains(t, doc, "\\begin{document}")
	assert.Contains(t, doc, "\\end{document}")
	assert.Contains(t, doc, "Jane Doe")
	assert.Contains(t, doc, "\\section{Experience}")
	assert.Contains(t, doc, "\\section{Skills}")
	assert.NotContains(t, doc, "\\section{Projects}")
}

func TestGenerateDocumentEmptyContent(t *testing.T) {
	doc, err := GenerateDocument(&ResumeContent{}, "", "")
	require.NoError(t, err)

	assert.Contains(t, doc, "\\begin{document}")
	assert.NotContains(t, doc, "\\section{Experience}")
}
