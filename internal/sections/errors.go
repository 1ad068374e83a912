package sections

import "fmt"

// Address identifies one (type, key, flavor) group
type Address struct {
	Type   string
	Key    string
	Flavor string
}

func (a Address) String() string {
	return a.Type + ":" + a.Key + ":" + a.Flavor
}

// Ref is a fully qualified section reference including version
type Ref struct {
	Address
	Version string
}

func (r Ref) String() string {
	return r.Address.String() + ":" + r.Version
}

// ErrNotFound indicates no row matched the requested address
type ErrNotFound struct {
	Address Address
	Version string // empty when the current version was requested
}

func (e *ErrNotFound) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("section not found: %s:%s", e.Address, e.Version)
	}
	return fmt.Sprintf("no current section: %s", e.Address)
}

// ErrDuplicateVersion indicates create was called on an existing address
type ErrDuplicateVersion struct {
	Address Address
}

func (e *ErrDuplicateVersion) Error() string {
	return fmt.Sprintf("section already exists: %s", e.Address)
}

// ErrConflict indicates a concurrent update won the version race.
// The caller should retry from a fresh read of the current version.
type ErrConflict struct {
	Address Address
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("concurrent update conflict: %s", e.Address)
}

// ErrInvalidVersion indicates a version string that does not parse as
// major.minor
type ErrInvalidVersion struct {
	Version string
	Reason  string
}

func (e *ErrInvalidVersion) Error() string {
	return fmt.Sprintf("malformed version %q: %s", e.Version, e.Reason)
}

// ErrInvalidType indicates an unknown section type
type ErrInvalidType struct {
	Type string
}

func (e *ErrInvalidType) Error() string {
	return fmt.Sprintf("invalid section type: %q", e.Type)
}

// ErrInvalidContent indicates the content payload failed its type's schema
type ErrInvalidContent struct {
	Type     string
	Problems []string
}

func (e *ErrInvalidContent) Error() string {
	return fmt.Sprintf("invalid %s content: %v", e.Type, e.Problems)
}
