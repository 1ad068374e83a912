// Package sections implements the versioned section store: append-only
// version history per (type, key, flavor) address with a single current
// version, content validation, and tag enrichment.
package sections

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
)

// Tagger generates retrieval tags for section content. Implementations may
// call an external model; tagging is best-effort and never blocks a write.
type Tagger interface {
	GenerateTags(ctx context.Context, sectionType string, content json.RawMessage) ([]string, error)
}

// Service coordinates versioned section writes and reads.
type Service struct {
	store  *db.DB
	tagger Tagger
}

// NewService creates a section service. tagger may be nil, in which case
// sections are stored without tags.
func NewService(store *db.DB, tagger Tagger) *Service {
	return &Service{store: store, tagger: tagger}
}

// Create stores the first version of a section at the given address. The new
// version is "1.0" and becomes current. Fails if the address already exists.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, addr Address, content json.RawMessage, tags []string) (*db.Section, error) {
	if !db.ValidSectionType(addr.Type) {
		return nil, &ErrInvalidType{Type: addr.Type}
	}
	if err := ValidateContent(addr.Type, content); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = s.generateTags(ctx, addr.Type, content)
	}

	section, err := s.store.CreateSection(ctx, userID, addr.Type, addr.Key, addr.Flavor, InitialVersion.String(), content, tags)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, &ErrDuplicateVersion{Address: addr}
		}
		return nil, err
	}
	return section, nil
}

// Update appends a new version at the address with a bumped minor version
// and atomically flips currency from the previous version to it.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, addr Address, content json.RawMessage, tags []string) (*db.Section, error) {
	if !db.ValidSectionType(addr.Type) {
		return nil, &ErrInvalidType{Type: addr.Type}
	}
	if err := ValidateContent(addr.Type, content); err != nil {
		return nil, err
	}

	current, err := s.store.GetCurrentSection(ctx, userID, addr.Type, addr.Key, addr.Flavor)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &ErrNotFound{Address: addr}
	}

	prev, err := ParseVersion(current.Version)
	if err != nil {
		return nil, err
	}
	next := prev.BumpMinor()

	if tags == nil {
		tags = s.generateTags(ctx, addr.Type, content)
	}

	section, err := s.store.InsertNextVersion(ctx, userID, addr.Type, addr.Key, addr.Flavor, current.Version, next.String(), content, tags)
	if err != nil {
		if err == db.ErrCurrentChanged || db.IsUniqueViolation(err) {
			return nil, &ErrConflict{Address: addr}
		}
		return nil, err
	}
	return section, nil
}

// GetCurrent returns the current version at the address.
func (s *Service) GetCurrent(ctx context.Context, userID uuid.UUID, addr Address) (*db.Section, error) {
	section, err := s.store.GetCurrentSection(ctx, userID, addr.Type, addr.Key, addr.Flavor)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, &ErrNotFound{Address: addr}
	}
	return section, nil
}

// GetVersion returns a specific version at the address.
func (s *Service) GetVersion(ctx context.Context, userID uuid.UUID, addr Address, version string) (*db.Section, error) {
	if _, err := ParseVersion(version); err != nil {
		return nil, err
	}
	section, err := s.store.GetSectionVersion(ctx, userID, addr.Type, addr.Key, addr.Flavor, version)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, &ErrNotFound{Address: addr, Version: version}
	}
	return section, nil
}

// List returns every stored section version for a user, optionally filtered
// by type.
func (s *Service) List(ctx context.Context, userID uuid.UUID, typeFilter string) ([]db.Section, error) {
	if typeFilter != "" && !db.ValidSectionType(typeFilter) {
		return nil, &ErrInvalidType{Type: typeFilter}
	}
	return s.store.ListSections(ctx, userID, typeFilter)
}

// ListVersions returns the full version history at an address, newest first.
func (s *Service) ListVersions(ctx context.Context, userID uuid.UUID, addr Address) ([]db.Section, error) {
	versions, err := s.store.ListSectionVersions(ctx, userID, addr.Type, addr.Key, addr.Flavor)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &ErrNotFound{Address: addr}
	}
	return versions, nil
}

// DeleteVersion removes one version from an address's history. Deleting the
// current version promotes the highest remaining version to current; the
// promoted version string is returned, or "" if nothing was promoted.
func (s *Service) DeleteVersion(ctx context.Context, userID uuid.UUID, addr Address, version string) (string, error) {
	if _, err := ParseVersion(version); err != nil {
		return "", err
	}
	found, promoted, err := s.store.DeleteSectionVersion(ctx, userID, addr.Type, addr.Key, addr.Flavor, version)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &ErrNotFound{Address: addr, Version: version}
	}
	return promoted, nil
}

// Catalog returns every current section for a user, the input to matching.
func (s *Service) Catalog(ctx context.Context, userID uuid.UUID) ([]db.Section, error) {
	return s.store.ListCurrentSections(ctx, userID)
}

func (s *Service) generateTags(ctx context.Context, sectionType string, content json.RawMessage) []string {
	if s.tagger == nil {
		return []string{}
	}
	tags, err := s.tagger.GenerateTags(ctx, sectionType, content)
	if err != nil {
		log.Printf("tag generation failed for %s section: %v", sectionType, err)
		return []string{}
	}
	return tags
}
