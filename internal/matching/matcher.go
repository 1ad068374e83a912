// Package matching selects the best current section flavors for a job
// description. Term extraction is delegated to an external model; everything
// after that (scoring, tie-breaks, missing keywords) is deterministic.
package matching

import (
	"context"
	"slices"
	"strings"

	"github.com/jonathan/resume-forge/internal/db"
)

// TermExtractor pulls normalized lowercase keywords out of job description
// text, preserving first-appearance order.
type TermExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Ref addresses one selected section version.
type Ref struct {
	Type    string `json:"type"`
	Key     string `json:"key"`
	Flavor  string `json:"flavor"`
	Version string `json:"version"`
}

func (r Ref) String() string {
	return r.Type + ":" + r.Key + ":" + r.Flavor + ":" + r.Version
}

// Result is the outcome of matching a job description against a catalog.
type Result struct {
	Terms    []string `json:"terms"`
	Selected []Ref    `json:"selected"`
	Missing  []string `json:"missing_keywords"`
}

// Matcher scores current sections against extracted JD terms.
type Matcher struct {
	extractor TermExtractor
}

func NewMatcher(extractor TermExtractor) *Matcher {
	return &Matcher{extractor: extractor}
}

// Analyze extracts terms from the job description and matches them against
// the catalog. Extraction failure aborts with ErrExtractionUnavailable.
func (m *Matcher) Analyze(ctx context.Context, jobDescription string, catalog []db.Section, configs []db.SectionConfig) (*Result, error) {
	terms, err := m.extractor.Extract(ctx, jobDescription)
	if err != nil {
		return nil, &ErrExtractionUnavailable{Err: err}
	}
	return Match(catalog, configs, terms)
}

// Match selects one flavor per (type, key) group. Priority never excludes the
// group, always forces the configured flavor, and normal picks the flavor
// whose tags cover the largest fraction of terms, breaking ties by
// lexicographically smallest flavor name.
func Match(catalog []db.Section, configs []db.SectionConfig, terms []string) (*Result, error) {
	terms = normalizeTerms(terms)
	termSet := make(map[string]bool, len(terms))
	for _, term := range terms {
		termSet[term] = true
	}

	configByKey := make(map[string]*db.SectionConfig, len(configs))
	for i := range configs {
		cfg := &configs[i]
		configByKey[cfg.SectionType+"\x00"+cfg.SectionKey] = cfg
	}

	selected := make([]Ref, 0, len(catalog))
	covered := make(map[string]bool)

	// Catalog arrives ordered by (type, key, flavor), so groups are contiguous.
	// Flavors are re-sorted by byte order here rather than trusting the
	// database ordering, which follows the server's collation.
	for start := 0; start < len(catalog); {
		end := start
		for end < len(catalog) && catalog[end].Type == catalog[start].Type && catalog[end].Key == catalog[start].Key {
			end++
		}
		group := slices.Clone(catalog[start:end])
		slices.SortFunc(group, func(a, b db.Section) int {
			return strings.Compare(a.Flavor, b.Flavor)
		})
		start = end

		cfg := configByKey[group[0].Type+"\x00"+group[0].Key]

		var pick *db.Section
		switch {
		case cfg != nil && cfg.Priority == db.PriorityNever:
			continue
		case cfg != nil && cfg.Priority == db.PriorityAlways:
			if cfg.FixedFlavor == nil {
				return nil, &ErrConfig{Type: group[0].Type, Key: group[0].Key, Reason: "always priority requires a fixed flavor"}
			}
			for i := range group {
				if group[i].Flavor == *cfg.FixedFlavor {
					pick = &group[i]
					break
				}
			}
			if pick == nil {
				return nil, &ErrConfig{Type: group[0].Type, Key: group[0].Key, Reason: "fixed flavor " + *cfg.FixedFlavor + " has no current version"}
			}
		default:
			best := -1.0
			for i := range group {
				score := coverageScore(group[i].Tags, termSet, len(terms))
				if score > best {
					best = score
					pick = &group[i]
				}
			}
		}

		if pick == nil {
			continue
		}
		selected = append(selected, Ref{Type: pick.Type, Key: pick.Key, Flavor: pick.Flavor, Version: pick.Version})
		for _, tag := range pick.Tags {
			covered[strings.ToLower(tag)] = true
		}
	}

	return &Result{
		Terms:    terms,
		Selected: selected,
		Missing:  missingTerms(terms, covered),
	}, nil
}

// MissingForSelection recomputes the missing keyword list for a fixed,
// caller-supplied selection instead of a scored one.
func MissingForSelection(selection []db.Section, terms []string) []string {
	terms = normalizeTerms(terms)
	covered := make(map[string]bool)
	for _, section := range selection {
		for _, tag := range section.Tags {
			covered[strings.ToLower(tag)] = true
		}
	}
	return missingTerms(terms, covered)
}

func coverageScore(tags []string, termSet map[string]bool, termCount int) float64 {
	hits := 0
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if termSet[tag] && !seen[tag] {
			seen[tag] = true
			hits++
		}
	}
	denom := termCount
	if denom < 1 {
		denom = 1
	}
	return float64(hits) / float64(denom)
}

func missingTerms(terms []string, covered map[string]bool) []string {
	missing := make([]string, 0)
	for _, term := range terms {
		if !covered[term] {
			missing = append(missing, term)
		}
	}
	return missing
}

// normalizeTerms lowercases and deduplicates, keeping first-appearance order.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}
