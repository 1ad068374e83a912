package rendering

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/resume.tex.tmpl
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.tex.tmpl"))

// documentBlocks holds pre-rendered, already-escaped LaTeX blocks.
type documentBlocks struct {
	Heading    string
	Education  string
	Experience string
	Projects   string
	Skills     string
}

// GenerateDocument assembles a complete standalone LaTeX document from
// resolved resume content. locationOverride and emailOverride come from
// dedicated location/email sections.
func GenerateDocument(content *ResumeContent, locationOverride, emailOverride string) (string, error) {
	blocks := documentBlocks{}

	heading := content.Heading
	if heading == nil {
		heading = &HeadingContent{}
	}
	blocks.Heading = HeadingTeX(heading, locationOverride, emailOverride)

	if len(content.Education) > 0 {
		blocks.Education = EducationTeX(content.Education)
	}
	if len(content.Experiences) > 0 {
		blocks.Experience = ExperienceTeX(content.Experiences)
	}
	if len(content.Projects) > 0 {
		blocks.Projects = ProjectsTeX(content.Projects)
	}
	if content.Skills != nil && len(content.Skills.Skills) > 0 {
		blocks.Skills = SkillsTeX(content.Skills)
	}

	var result strings.Builder
	if err := documentTemplate.Execute(&result, blocks); err != nil {
		return "", &TemplateError{Message: "failed to execute document template", Cause: err}
	}

	return result.String(), nil
}
