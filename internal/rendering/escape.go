// Package rendering generates LaTeX resume documents from section content
// and compiles them to PDF.
package rendering

import "strings"

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2) // Pre-allocate space for potential escaping

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ProcessBullet converts markdown emphasis in a bullet to LaTeX commands and
// escapes everything else:
//
//	**bold text** -> \textbf{bold text}
//	*italic text* -> \textit{italic text}
func ProcessBullet(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "**") {
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				result.WriteString(`\textbf{` + EscapeLaTeX(text[i+2:i+2+end]) + `}`)
				i += end + 4
				continue
			}
		}
		if text[i] == '*' {
			if end := strings.IndexByte(text[i+1:], '*'); end >= 0 {
				result.WriteString(`\textit{` + EscapeLaTeX(text[i+1:i+1+end]) + `}`)
				i += end + 2
				continue
			}
		}
		if text[i] == '*' {
			// Unmatched star, keep it literal
			result.WriteString("*")
			i++
			continue
		}
		next := strings.IndexByte(text[i:], '*')
		if next < 0 {
			result.WriteString(EscapeLaTeX(text[i:]))
			break
		}
		result.WriteString(EscapeLaTeX(text[i : i+next]))
		i += next
	}

	return result.String()
}
