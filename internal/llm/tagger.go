// Package llm - tagger.go derives retrieval tags from section content.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SectionTagger asks the model for keyword tags describing a resume section.
// Tagging is single-attempt and best-effort: a failure leaves the section
// untagged, never unsaved.
type SectionTagger struct {
	client Client
}

func NewSectionTagger(client Client) *SectionTagger {
	return &SectionTagger{client: client}
}

const tagGenerationPrompt = `Extract ALL important keywords/tags from this resume %s section.

Include:
- Technical skills (languages, frameworks, tools, databases, cloud services)
- Soft skills (leadership, communication, collaboration, mentoring)
- Impact keywords (scaled, optimized, reduced, improved, built, designed, led)
- Domain terms (distributed systems, microservices, ML, etc.)
- Metrics indicators (%%, numbers, scale like "1M users", "150k nodes")

Section content:
%s

Return ONLY a JSON array of lowercase tags. No explanation.
Example: ["python", "aws", "leadership", "reduced latency 40%%", "microservices"]

Tags:`

// GenerateTags returns lowercase tags for a section's content.
func (t *SectionTagger) GenerateTags(ctx context.Context, sectionType string, content json.RawMessage) ([]string, error) {
	prompt := fmt.Sprintf(tagGenerationPrompt, sectionType, contentToText(content))

	response, err := t.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, err
	}

	tags, err := parseTagsResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tags response: %w", err)
	}
	return tags, nil
}

// contentToText flattens a content payload into prompt-friendly lines.
func contentToText(content json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(content, &fields); err != nil {
		return string(content)
	}

	var parts []string
	appendString := func(label, key string) {
		if value, ok := fields[key].(string); ok && value != "" {
			parts = append(parts, label+": "+value)
		}
	}

	appendString("Title", "title")
	appendString("Company", "company")
	appendString("Project", "name")
	appendString("School", "school")
	appendString("Degree", "degree")

	if bullets, ok := fields["bullets"].([]any); ok && len(bullets) > 0 {
		parts = append(parts, "Bullets:")
		for _, bullet := range bullets {
			if text, ok := bullet.(string); ok {
				parts = append(parts, "- "+text)
			}
		}
	}

	if tech, ok := fields["tech"].(string); ok && tech != "" {
		parts = append(parts, "Tech Stack: "+tech)
	} else if tech, ok := fields["tech"].([]any); ok {
		items := make([]string, 0, len(tech))
		for _, item := range tech {
			if text, ok := item.(string); ok {
				items = append(items, text)
			}
		}
		if len(items) > 0 {
			parts = append(parts, "Tech Stack: "+strings.Join(items, ", "))
		}
	}

	if skills, ok := fields["skills"].(map[string]any); ok {
		for category, items := range skills {
			if list, ok := items.([]any); ok {
				names := make([]string, 0, len(list))
				for _, item := range list {
					if text, ok := item.(string); ok {
						names = append(names, text)
					}
				}
				parts = append(parts, category+": "+strings.Join(names, ", "))
			}
		}
	}

	if len(parts) == 0 {
		return string(content)
	}
	return strings.Join(parts, "\n")
}

func parseTagsResponse(text string) ([]string, error) {
	raw := CleanJSONBlock(text)
	if !strings.HasPrefix(raw, "[") {
		start := strings.Index(raw, "[")
		if start < 0 {
			return nil, fmt.Errorf("no JSON array in response")
		}
		if arr := extractJSONArray(raw[start:]); arr != "" {
			raw = arr
		}
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out, nil
}
