package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/db"
)

func section(sectionType, key, flavor, version string, tags ...string) db.Section {
	return db.Section{
		Type:      sectionType,
		Key:       key,
		Flavor:    flavor,
		Version:   version,
		Tags:      tags,
		IsCurrent: true,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestMatchPicksFlavorWithBestCoverage(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.2", "python", "aws"),
		section("experience", "amazon", "frontend", "1.0", "java", "aws"),
	}

	result, err := Match(catalog, nil, []string{"python", "aws", "distributed"})
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, Ref{Type: "experience", Key: "amazon", Flavor: "backend", Version: "1.2"}, result.Selected[0])
	assert.Equal(t, []string{"distributed"}, result.Missing)
}

func TestMatchTieBreaksLexicographically(t *testing.T) {
	catalog := []db.Section{
		section("experience", "startup", "alpha", "1.0", "go"),
		section("experience", "startup", "beta", "1.0", "go"),
	}

	result, err := Match(catalog, nil, []string{"go", "kubernetes"})
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, "alpha", result.Selected[0].Flavor)
}

func TestMatchTieBreakIgnoresCatalogOrder(t *testing.T) {
	// A collation-aware database may order "api" before "API". The tie-break
	// must sort by byte order itself, so the picked flavor stays the same.
	catalog := []db.Section{
		section("experience", "startup", "api", "1.0", "go"),
		section("experience", "startup", "API", "1.0", "go"),
	}

	result, err := Match(catalog, nil, []string{"go"})
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, "API", result.Selected[0].Flavor)
}

func TestMatchIsDeterministic(t *testing.T) {
	catalog := []db.Section{
		section("experience", "acme", "data", "1.1", "python", "sql"),
		section("experience", "acme", "ml", "1.3", "python", "pytorch"),
		section("project", "scraper", "default", "1.0", "go", "postgres"),
	}
	terms := []string{"python", "go", "sql"}

	first, err := Match(catalog, nil, terms)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Match(catalog, nil, terms)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatchNeverPriorityExcludesGroup(t *testing.T) {
	catalog := []db.Section{
		section("skills", "main", "default", "1.0", "python", "aws"),
		section("experience", "amazon", "default", "1.0", "python"),
	}
	configs := []db.SectionConfig{
		{SectionType: "skills", SectionKey: "main", Priority: db.PriorityNever},
	}

	result, err := Match(catalog, configs, []string{"python", "aws"})
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, "experience", result.Selected[0].Type)
	assert.Equal(t, []string{"aws"}, result.Missing)
}

func TestMatchAlwaysPriorityForcesFixedFlavor(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python", "aws"),
		section("experience", "amazon", "retail", "1.4", "excel"),
	}
	configs := []db.SectionConfig{
		{SectionType: "experience", SectionKey: "amazon", Priority: db.PriorityAlways, FixedFlavor: strPtr("retail")},
	}

	result, err := Match(catalog, configs, []string{"python", "aws"})
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, "retail", result.Selected[0].Flavor)
	assert.Equal(t, "1.4", result.Selected[0].Version)
}

func TestMatchAlwaysPriorityWinsWithEmptyTerms(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python"),
		section("experience", "amazon", "retail", "1.0", "excel"),
	}
	configs := []db.SectionConfig{
		{SectionType: "experience", SectionKey: "amazon", Priority: db.PriorityAlways, FixedFlavor: strPtr("retail")},
	}

	result, err := Match(catalog, configs, nil)
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Equal(t, "retail", result.Selected[0].Flavor)
	assert.Empty(t, result.Missing)
}

func TestMatchAlwaysPriorityMissingFlavorIsConfigError(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python"),
	}
	configs := []db.SectionConfig{
		{SectionType: "experience", SectionKey: "amazon", Priority: db.PriorityAlways, FixedFlavor: strPtr("retail")},
	}

	_, err := Match(catalog, configs, []string{"python"})
	require.Error(t, err)

	var cfgErr *ErrConfig
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMatchAlwaysPriorityWithoutFixedFlavorIsConfigError(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python"),
	}
	configs := []db.SectionConfig{
		{SectionType: "experience", SectionKey: "amazon", Priority: db.PriorityAlways},
	}

	_, err := Match(catalog, configs, []string{"python"})
	var cfgErr *ErrConfig
	assert.ErrorAs(t, err, &cfgErr)
}

func TestMatchEmptyTermsSelectsEverythingWithNoMissing(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python"),
		section("project", "scraper", "default", "1.0", "go"),
	}

	result, err := Match(catalog, nil, []string{})
	require.NoError(t, err)

	assert.Len(t, result.Selected, 2)
	assert.Empty(t, result.Missing)
}

func TestMatchEmptyCatalog(t *testing.T) {
	result, err := Match(nil, nil, []string{"python"})
	require.NoError(t, err)

	assert.Empty(t, result.Selected)
	assert.Equal(t, []string{"python"}, result.Missing)
}

func TestMatchNormalizesAndDeduplicatesTerms(t *testing.T) {
	catalog := []db.Section{
		section("experience", "amazon", "backend", "1.0", "Python"),
	}

	result, err := Match(catalog, nil, []string{"Python", "python", " AWS ", "aws"})
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "aws"}, result.Terms)
	assert.Equal(t, []string{"aws"}, result.Missing)
}

func TestMissingForSelection(t *testing.T) {
	selection := []db.Section{
		section("experience", "amazon", "backend", "1.0", "python", "aws"),
		section("skills", "main", "default", "1.0", "sql"),
	}

	missing := MissingForSelection(selection, []string{"python", "sql", "kubernetes", "aws"})
	assert.Equal(t, []string{"kubernetes"}, missing)

	assert.Empty(t, MissingForSelection(selection, nil))
}

type stubExtractor struct {
	terms []string
	err   error
}

func (s *stubExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	return s.terms, s.err
}

func TestAnalyzeWrapsExtractionFailure(t *testing.T) {
	matcher := NewMatcher(&stubExtractor{err: errors.New("model timed out")})

	_, err := matcher.Analyze(context.Background(), "job description", nil, nil)
	require.Error(t, err)

	var unavailable *ErrExtractionUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestAnalyzeMatchesExtractedTerms(t *testing.T) {
	matcher := NewMatcher(&stubExtractor{terms: []string{"go", "postgres"}})
	catalog := []db.Section{
		section("project", "scraper", "default", "1.2", "go", "postgres"),
	}

	result, err := matcher.Analyze(context.Background(), "backend role using Go and Postgres", catalog, nil)
	require.NoError(t, err)

	require.Len(t, result.Selected, 1)
	assert.Empty(t, result.Missing)
}
