package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJDResponse(t *testing.T) {
	response := `{
		"terms": ["Python", " AWS ", "distributed systems"],
		"sponsorship": "no",
		"years_experience": "5+",
		"location": "Seattle, WA",
		"remote": "hybrid"
	}`

	insights, err := parseJDResponse(response)
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "aws", "distributed systems"}, insights.Terms)
	assert.Equal(t, "no", insights.Sponsorship)
	require.NotNil(t, insights.YearsExperience)
	assert.Equal(t, "5+", *insights.YearsExperience)
	assert.Equal(t, "hybrid", insights.Remote)
}

func TestParseJDResponseWithPreamble(t *testing.T) {
	response := "Here is the extracted information:\n```json\n{\"terms\": [\"go\"], \"sponsorship\": \"unknown\", \"remote\": \"remote\"}\n```"

	insights, err := parseJDResponse(response)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, insights.Terms)
}

func TestParseJDResponseDefaults(t *testing.T) {
	insights, err := parseJDResponse(`{"terms": []}`)
	require.NoError(t, err)

	assert.Empty(t, insights.Terms)
	assert.Equal(t, "unknown", insights.Sponsorship)
	assert.Equal(t, "unknown", insights.Remote)
	assert.Nil(t, insights.YearsExperience)
	assert.Nil(t, insights.Location)
}

func TestParseJDResponseNotJSON(t *testing.T) {
	_, err := parseJDResponse("I could not find any requirements in that text.")
	assert.Error(t, err)
}

func TestParseTagsResponse(t *testing.T) {
	tags, err := parseTagsResponse(`["Python", "AWS", " microservices ", ""]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "aws", "microservices"}, tags)
}

func TestParseTagsResponseWithPreamble(t *testing.T) {
	tags, err := parseTagsResponse("Here are the tags:\n[\"go\", \"postgres\"]")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, tags)
}

func TestParseTagsResponseNotJSON(t *testing.T) {
	_, err := parseTagsResponse("no tags found")
	assert.Error(t, err)
}

func TestContentToText(t *testing.T) {
	content := []byte(`{
		"title": "Software Engineer",
		"company": "Acme",
		"bullets": ["Built the billing service", "Led a team of 4"],
		"tech": ["Go", "Postgres"]
	}`)

	text := contentToText(content)
	assert.Contains(t, text, "Title: Software Engineer")
	assert.Contains(t, text, "Company: Acme")
	assert.Contains(t, text, "- Built the billing service")
	assert.Contains(t, text, "Tech Stack: Go, Postgres")
}

func TestContentToTextSkillsMap(t *testing.T) {
	content := []byte(`{"skills": {"Languages": ["Go", "Python"]}}`)

	text := contentToText(content)
	assert.Contains(t, text, "Languages: Go, Python")
}
