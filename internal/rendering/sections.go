package rendering

import (
	"fmt"
	"sort"
	"strings"
)

// ExperienceTeX renders the experience section block.
func ExperienceTeX(experiences []ExperienceContent) string {
	var sb strings.Builder
	sb.WriteString("%-----------EXPERIENCE-----------%\n")
	sb.WriteString("\\section{Experience}\n")
	sb.WriteString("\\resumeSubHeadingListStart\n\n")

	for _, exp := range experiences {
		sb.WriteString("\\resumeSubheadingExp\n")
		sb.WriteString(fmt.Sprintf("    {\\textbf{%s} $|$ \\textbf{\\textit{%s}} $|$ \\textit{%s}}{%s}\n",
			EscapeLaTeX(exp.Title), EscapeLaTeX(exp.Company), EscapeLaTeX(exp.Location), EscapeLaTeX(exp.Dates)))
		sb.WriteString(bulletListTeX(exp.Bullets))
		sb.WriteString("\n")
	}

	sb.WriteString("\\resumeSubHeadingListEnd\n")
	return sb.String()
}

// ProjectsTeX renders the projects section block.
func ProjectsTeX(projects []ProjectContent) string {
	var sb strings.Builder
	sb.WriteString("%-----------PROJECTS-----------%\n")
	sb.WriteString("\\section{Projects}\n")
	sb.WriteString("\\resumeSubHeadingListStart\n\n")

	for _, proj := range projects {
		sb.WriteString("\\resumeProjectHeading\n")
		sb.WriteString(fmt.Sprintf("    {\\textbf{%s} $|$ \\textit{%s}} {}\n",
			EscapeLaTeX(proj.Name), EscapeLaTeX(string(proj.Tech))))
		sb.WriteString(bulletListTeX(proj.Bullets))
		sb.WriteString("\n")
	}

	sb.WriteString("\\resumeSubHeadingListEnd\n")
	return sb.String()
}

// SkillsTeX renders the skills table. Categories are emitted in sorted order
// so output is stable across runs.
func SkillsTeX(skills *SkillsContent) string {
	var sb strings.Builder
	sb.WriteString("\\section{Skills}\n")
	sb.WriteString("\\small\n")
	sb.WriteString("\\begin{tabular}{ @{} p{0.15\\textwidth} p{0.80\\textwidth} @{} }\n")

	categories := make([]string, 0, len(skills.Skills))
	for category := range skills.Skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		items := strings.Join(skills.Skills[category], ", ") + "."
		sb.WriteString(fmt.Sprintf("    \\textbf{%s:} & %s\\\\\n", EscapeLaTeX(category), EscapeLaTeX(items)))
	}

	sb.WriteString("\\end{tabular}\n")
	return sb.String()
}

// HeadingTeX renders the contact header. locationOverride and emailOverride
// come from dedicated location/email sections and win over heading fields.
func HeadingTeX(heading *HeadingContent, locationOverride, emailOverride string) string {
	h := *heading
	if locationOverride != "" {
		h.Location = locationOverride
	}
	if emailOverride != "" {
		h.Email = emailOverride
	}
	phoneDisplay := h.PhoneDisplay
	if phoneDisplay == "" {
		phoneDisplay = h.Phone
	}

	var sb strings.Builder
	sb.WriteString("%----------HEADING----------%\n")
	sb.WriteString("\\begin{center}\n")
	sb.WriteString(fmt.Sprintf("    \\textbf{\\huge %s} \\\\ \\vspace{3pt}\n", EscapeLaTeX(h.Name)))
	sb.WriteString("    \\quad\n")
	sb.WriteString(fmt.Sprintf("    {\\seticon{faMapMarker} \\underline{%s}}\n", EscapeLaTeX(h.Location)))
	sb.WriteString("    \\quad\n")
	sb.WriteString(fmt.Sprintf("    \\href{tel:%s}{\\seticon{faPhone} \\underline{%s}}\n", h.Phone, EscapeLaTeX(phoneDisplay)))
	sb.WriteString("    \\quad\n")
	sb.WriteString(fmt.Sprintf("    \\href{mailto:%s}{\\seticon{faEnvelope} \\underline{%s}}\n", h.Email, EscapeLaTeX(h.Email)))
	sb.WriteString("    \\quad\n")
	sb.WriteString(fmt.Sprintf("    \\href{https://www.linkedin.com/in/%s}{\\seticon{faLinkedin} \\underline{%s}}\n", h.LinkedIn, EscapeLaTeX(h.LinkedIn)))
	sb.WriteString("    \\quad\n")
	sb.WriteString(fmt.Sprintf("    \\href{https://github.com/%s}{\\seticon{faGithub} \\underline{%s}}\n", h.GitHub, EscapeLaTeX(h.GitHub)))
	sb.WriteString("    \\quad\n")
	sb.WriteString("\\end{center}\n")
	return sb.String()
}

// EducationTeX renders the education section block.
func EducationTeX(entries []EducationContent) string {
	var sb strings.Builder
	sb.WriteString("%-----------EDUCATION-----------%\n")
	sb.WriteString("\\section{Education}\n")
	sb.WriteString("\\resumeSubHeadingListStart\n\n")

	for _, edu := range entries {
		degree := edu.Degree
		if edu.GPA != "" {
			degree += " (GPA: " + edu.GPA + ")"
		}
		sb.WriteString("\\resumeSubheading\n")
		sb.WriteString(fmt.Sprintf("    {%s}{%s}\n", EscapeLaTeX(edu.School), EscapeLaTeX(edu.Location)))
		sb.WriteString(fmt.Sprintf("    {%s}{%s}\n", EscapeLaTeX(degree), EscapeLaTeX(edu.Dates)))
		if len(edu.Coursework) > 0 {
			sb.WriteString(fmt.Sprintf("    \\resumeItemListStart\n    \\resumeItem{Coursework: %s}\n    \\resumeItemListEnd\n",
				EscapeLaTeX(strings.Join(edu.Coursework, ", "))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\\resumeSubHeadingListEnd\n")
	return sb.String()
}

func bulletListTeX(bullets []string) string {
	var sb strings.Builder
	sb.WriteString("\\resumeItemListStart\n")
	for _, bullet := range bullets {
		sb.WriteString(fmt.Sprintf("    \\resumeItem{%s}\n", ProcessBullet(bullet)))
	}
	sb.WriteString("\\resumeItemListEnd\n")
	return sb.String()
}
