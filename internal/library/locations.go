// Package library implements the image lifecycle state machine: scanning
// the three storage locations, keeping sidecars consistent with their
// assets, and moving asset/sidecar pairs between locations.
package library

import (
	"fmt"
	"path/filepath"
	"strings"

	"darkroom/internal/domain"
)

// Location is one of the three mutually exclusive storage directories
// an asset can reside in. The location is the asset's lifecycle state.
type Location string

const (
	LocationPool  Location = "pool"
	LocationPicks Location = "picks"
	LocationTrash Location = "trash"
)

// ParseLocation resolves a caller-supplied location tag. The empty string
// means the pool, matching the API's optional directory parameter.
// Unknown tags fail with domain.ErrValidation.
func ParseLocation(tag string) (Location, error) {
	switch tag {
	case "", "pool":
		return LocationPool, nil
	case "picks":
		return LocationPicks, nil
	case "trash":
		return LocationTrash, nil
	default:
		return "", &domain.ValidationError{Message: fmt.Sprintf("unknown location %q", tag)}
	}
}

// Dir returns the on-disk directory for the location under base.
// The pool is the base directory itself; picks and trash are
// subdirectories of it.
func (l Location) Dir(base string) string {
	switch l {
	case LocationPicks:
		return filepath.Join(base, "picks")
	case LocationTrash:
		return filepath.Join(base, "trash")
	default:
		return base
	}
}

// SidecarPath returns the sidecar path for an asset path: the same
// directory and filename stem with a .json extension.
func SidecarPath(assetPath string) string {
	return strings.TrimSuffix(assetPath, filepath.Ext(assetPath)) + ".json"
}
