// Package sidecar reads and writes the JSON metadata files paired with
// image assets. Every asset has exactly one sidecar sharing its filename
// stem; the store knows nothing about locations or lifecycle, only about
// single files.
package sidecar

import (
	"encoding/json"
	"fmt"
	"os"

	"darkroom/internal/domain"
	"darkroom/internal/domain/models"
)

// Store performs sidecar file I/O.
type Store struct{}

// NewStore creates a sidecar store.
func NewStore() *Store {
	return &Store{}
}

// Load reads and decodes the sidecar at path.
// Returns domain.ErrNotFound if the file is absent and
// domain.ErrCorruptData if its content is not valid JSON.
func (s *Store) Load(path string) (models.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Metadata{}, &domain.NotFoundError{Message: fmt.Sprintf("sidecar not found: %s", path)}
		}
		return models.Metadata{}, &domain.IOError{Message: fmt.Sprintf("read sidecar %s: %v", path, err)}
	}

	var meta models.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return models.Metadata{}, &domain.CorruptDataError{Message: fmt.Sprintf("sidecar %s is not valid JSON: %v", path, err)}
	}
	return meta, nil
}

// Save encodes meta and replaces the whole content of the file at path.
// Returns domain.ErrIO on write failure.
func (s *Store) Save(path string, meta models.Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return &domain.IOError{Message: fmt.Sprintf("encode sidecar %s: %v", path, err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("write sidecar %s: %v", path, err)}
	}
	return nil
}

// Default produces the metadata a freshly discovered asset starts with.
func Default(originalFilename string) models.Metadata {
	return models.Metadata{
		Filename: originalFilename,
		Trash:    false,
		Pick:     false,
		Rating:   nil,
		Notes:    "",
		Prompt:   "",
	}
}

// Backfill fills every absent or null field of {trash, pick, rating, notes,
// prompt} with an empty string. The empty string is used even for the
// boolean and rating fields: existing sidecar trees were written this way
// and callers rely on "" being falsy, so the coercion is kept as is.
// Idempotent.
func Backfill(meta models.Metadata) models.Metadata {
	if meta.Trash == nil {
		meta.Trash = ""
	}
	if meta.Pick == nil {
		meta.Pick = ""
	}
	if meta.Rating == nil {
		meta.Rating = ""
	}
	// Notes and Prompt are typed strings; an absent or null JSON value
	// already decodes to "", which matches the backfill default.
	return meta
}
