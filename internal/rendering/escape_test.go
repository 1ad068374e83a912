package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeLaTeX(""))
}

func TestEscapeLaTeX_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	assert.Equal(t, text, EscapeLaTeX(text))
}

func TestEscapeLaTeX_Backslash(t *testing.T) {
	assert.Equal(t, "test\\textbackslash{}backslash", EscapeLaTeX("test\\backslash"))
}

func TestEscapeLaTeX_CurlyBraces(t *testing.T) {
	assert.Equal(t, "text\\{with\\}braces", EscapeLaTeX("text{with}braces"))
}

func TestEscapeLaTeX_Ampersand(t *testing.T) {
	assert.Equal(t, "A \\& B", EscapeLaTeX("A & B"))
}

func TestEscapeLaTeX_Percent(t *testing.T) {
	assert.Equal(t, "reduced latency 40\\%", EscapeLaTeX("reduced latency 40%"))
}

func TestEscapeLaTeX_Underscore(t *testing.T) {
	assert.Equal(t, "snake\\_case", EscapeLaTeX("snake_case"))
}

func TestEscapeLaTeX_Caret(t *testing.T) {
	assert.Equal(t, "O(n\\textasciicircum{}2)", EscapeLaTeX("O(n^2)"))
}

func TestEscapeLaTeX_Tilde(t *testing.T) {
	assert.Equal(t, "\\textasciitilde{}50ms", EscapeLaTeX("~50ms"))
}

func TestProcessBullet_Plain(t *testing.T) {
	assert.Equal(t, "Built the billing service", ProcessBullet("Built the billing service"))
}

func TestProcessBullet_Bold(t *testing.T) {
	assert.Equal(t, "Scaled to \\textbf{1M users} in a year", ProcessBullet("Scaled to **1M users** in a year"))
}

func TestProcessBullet_Italic(t *testing.T) {
	assert.Equal(t, "Led the \\textit{platform} migration", ProcessBullet("Led the *platform* migration"))
}

func TestProcessBullet_BoldAndItalic(t *testing.T) {
	assert.Equal(t, "\\textbf{Reduced} cost by \\textit{40\\%}", ProcessBullet("**Reduced** cost by *40%*"))
}

func TestProcessBullet_EscapesInsideEmphasis(t *testing.T) {
	assert.Equal(t, "\\textbf{C\\& D}", ProcessBullet("**C& D**"))
}

func TestProcessBullet_UnmatchedStar(t *testing.T) {
	assert.Equal(t, "5 * 3 = 15", ProcessBullet("5 * 3 = 15"))
}

func TestProcessBullet_Empty(t *testing.T) {
	assert.Equal(t, "", ProcessBullet(""))
}
