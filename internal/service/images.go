// Package service composes the library and sidecar store into the
// operations the HTTP layer exposes: listings, annotation updates, and
// lifecycle transitions.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"darkroom/internal/config"
	"darkroom/internal/domain"
	"darkroom/internal/domain/models"
	"darkroom/internal/library"
	"darkroom/internal/sidecar"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ImageService answers queries over the asset tree and drives lifecycle
// transitions.
//
// The service assumes a single writer: there is no file locking and no
// cross-request coordination. A listing and a transition running
// concurrently on the same asset can interleave and leave the listing
// holding a stale view. That is accepted for a single-user local tool;
// multi-client deployments need an external mutual-exclusion layer.
type ImageService struct {
	lib    *library.Library
	store  *sidecar.Store
	logger *slog.Logger
}

// NewImageService creates the image service.
func NewImageService(lib *library.Library, store *sidecar.Store, logger *slog.Logger) *ImageService {
	return &ImageService{
		lib:    lib,
		store:  store,
		logger: logger,
	}
}

// scanOrder is the fixed location order for full listings.
var scanOrder = []library.Location{
	library.LocationPool,
	library.LocationPicks,
	library.LocationTrash,
}

// ListAll returns the metadata of every asset in the tree, pool entries
// first, then picks, then trash. Before reading, every asset gets its
// sidecar created if missing and reconciled (missing fields backfilled).
// Within a location the order is filesystem enumeration order.
func (s *ImageService) ListAll(ctx context.Context) ([]models.Metadata, error) {
	if err := s.lib.CheckBase(); err != nil {
		return nil, err
	}

	for _, loc := range scanOrder {
		assets, err := s.lib.ListAssets(s.lib.Dir(loc))
		if err != nil {
			return nil, err
		}
		for _, asset := range assets {
			if err := s.lib.EnsureSidecar(asset); err != nil {
				return nil, err
			}
			if err := s.lib.ReconcileSidecar(asset); err != nil {
				return nil, err
			}
		}
	}

	all := make([]models.Metadata, 0)
	for _, loc := range scanOrder {
		metas, err := s.lib.ReadAll(s.lib.Dir(loc), nil)
		if err != nil {
			return nil, err
		}
		all = append(all, metas...)
	}

	s.logger.Debug("listed all images", "count", len(all))
	return all, nil
}

// ListTrash returns the metadata of trashed assets: sidecars in the trash
// location whose trash field is true.
func (s *ImageService) ListTrash(ctx context.Context) ([]models.Metadata, error) {
	if err := s.lib.CheckBase(); err != nil {
		return nil, err
	}
	return s.lib.ReadAll(s.lib.Dir(library.LocationTrash), models.Metadata.Trashed)
}

// ListPicks returns the metadata of picked assets: sidecars in the picks
// location whose pick field is true.
func (s *ImageService) ListPicks(ctx context.Context) ([]models.Metadata, error) {
	if err := s.lib.CheckBase(); err != nil {
		return nil, err
	}
	return s.lib.ReadAll(s.lib.Dir(library.LocationPicks), models.Metadata.Picked)
}

// UpdateAnnotationRequest carries an annotation edit. Nil Notes/Prompt
// leave the corresponding field untouched.
type UpdateAnnotationRequest struct {
	Filename string
	Location string
	Notes    *string
	Prompt   *string
}

// UpdateAnnotation rewrites the notes and/or prompt of one asset's
// sidecar in place. Fields the caller did not supply are preserved.
func (s *ImageService) UpdateAnnotation(ctx context.Context, req *UpdateAnnotationRequest) error {
	if err := s.validateAnnotation(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	loc, err := library.ParseLocation(req.Location)
	if err != nil {
		return err
	}

	path := s.lib.SidecarFor(loc, req.Filename)
	meta, err := s.store.Load(path)
	if err != nil {
		return err
	}

	if req.Notes != nil {
		meta.Notes = *req.Notes
	}
	if req.Prompt != nil {
		meta.Prompt = *req.Prompt
	}

	if err := s.store.Save(path, meta); err != nil {
		return err
	}

	s.logger.Info("annotation updated",
		"filename", req.Filename,
		"location", loc,
	)
	return nil
}

// ToTrash moves an asset from the pool to the trash.
func (s *ImageService) ToTrash(ctx context.Context, filename string) error {
	return s.move(library.ToTrash, filename)
}

// ToPicks moves an asset from the pool to the picks, rating it 5.
func (s *ImageService) ToPicks(ctx context.Context, filename string) error {
	return s.move(library.ToPicks, filename)
}

// RestoreFromTrash moves an asset from the trash back to the pool.
func (s *ImageService) RestoreFromTrash(ctx context.Context, filename string) error {
	return s.move(library.RestoreFromTrash, filename)
}

// DemotePick moves an asset from the picks back to the pool, lowering its
// rating to 4.
func (s *ImageService) DemotePick(ctx context.Context, filename string) error {
	return s.move(library.DemotePick, filename)
}

// PurgeTrash deletes every file in the trash location.
func (s *ImageService) PurgeTrash(ctx context.Context) error {
	return s.lib.PurgeTrash()
}

func (s *ImageService) move(t library.Transition, filename string) error {
	if err := validateFilename(filename); err != nil {
		return fmt.Errorf("%w: image name: %v", domain.ErrValidation, err)
	}
	return s.lib.Move(t, filename)
}

func (s *ImageService) validateAnnotation(req *UpdateAnnotationRequest) error {
	if err := validateFilename(req.Filename); err != nil {
		return fmt.Errorf("filename: %v", err)
	}
	if req.Notes != nil {
		if err := validation.Validate(*req.Notes, validation.RuneLength(0, config.MaxNotesLength)); err != nil {
			return fmt.Errorf("notes: %v", err)
		}
	}
	if req.Prompt != nil {
		if err := validation.Validate(*req.Prompt, validation.RuneLength(0, config.MaxPromptLength)); err != nil {
			return fmt.Errorf("prompt: %v", err)
		}
	}
	return nil
}

func validateFilename(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.RuneLength(1, config.MaxImageNameLength),
		validation.By(plainFilename),
	)
}

// plainFilename rejects names that would escape the location directory.
func plainFilename(value interface{}) error {
	name, _ := value.(string)
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("must be a plain filename")
	}
	return nil
}
