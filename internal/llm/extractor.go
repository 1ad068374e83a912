// Package llm - extractor.go extracts structured hiring signals from job
// description text.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// JDInsights is what the model pulls out of a job description. Terms drive
// matching; the rest is administrative context surfaced to the caller.
type JDInsights struct {
	Terms           []string `json:"terms"`
	Sponsorship     string   `json:"sponsorship"`
	YearsExperience *string  `json:"years_experience"`
	Location        *string  `json:"location"`
	Remote          string   `json:"remote"`
}

// JDExtractor extracts keywords and metadata from job descriptions.
type JDExtractor struct {
	client Client
}

func NewJDExtractor(client Client) *JDExtractor {
	return &JDExtractor{client: client}
}

const jdExtractionPrompt = `Extract important information from this job description.

REMOVE: Company description, benefits, EEO statements, culture/values, "about us", "why join us"

EXTRACT:
1. All technical skills required (languages, frameworks, tools, databases, cloud)
2. Soft skills mentioned (leadership, communication, etc.)
3. Years of experience required
4. Visa/sponsorship status (look for "sponsorship", "visa", "authorized to work", "citizenship")
5. Location and remote policy
6. Any must-have requirements

Job Description:
%s

Return ONLY this JSON format:
{
  "terms": ["python", "aws", "leadership", "5+ years", ...],
  "sponsorship": "yes" | "no" | "unknown",
  "years_experience": "5+" | null,
  "location": "Seattle, WA" | null,
  "remote": "remote" | "hybrid" | "onsite" | "unknown"
}

JSON:`

// ExtractInsights asks the model for the full structured view of a job
// description.
func (e *JDExtractor) ExtractInsights(ctx context.Context, jobDescription string) (*JDInsights, error) {
	prompt := fmt.Sprintf(jdExtractionPrompt, jobDescription)

	response, err := e.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, err
	}

	insights, err := parseJDResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return insights, nil
}

// Extract returns just the normalized term list, the matcher's input.
func (e *JDExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	insights, err := e.ExtractInsights(ctx, text)
	if err != nil {
		return nil, err
	}
	return insights.Terms, nil
}

func parseJDResponse(text string) (*JDInsights, error) {
	raw := extractJSONObject(CleanJSONBlock(text))
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var insights JDInsights
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(insights.Terms))
	for _, term := range insights.Terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			normalized = append(normalized, term)
		}
	}
	insights.Terms = normalized

	if insights.Sponsorship == "" {
		insights.Sponsorship = "unknown"
	}
	if insights.Remote == "" {
		insights.Remote = "unknown"
	}
	return &insights, nil
}
