package library

import (
	"fmt"
	"os"
	"path/filepath"

	"darkroom/internal/domain"
	"darkroom/internal/domain/models"
)

// Transition is a named move of an asset between two locations with a
// fixed metadata patch applied on the way.
type Transition struct {
	Name        string
	Source      Location
	Destination Location
	Patch       models.Patch
}

// The four lifecycle transitions. These are the only ways an asset
// changes location.
var (
	ToTrash = Transition{
		Name:        "to-trash",
		Source:      LocationPool,
		Destination: LocationTrash,
		Patch:       models.Patch{Trash: boolPtr(true)},
	}
	ToPicks = Transition{
		Name:        "to-picks",
		Source:      LocationPool,
		Destination: LocationPicks,
		Patch:       models.Patch{Pick: boolPtr(true), Rating: intPtr(5)},
	}
	RestoreFromTrash = Transition{
		Name:        "restore-from-trash",
		Source:      LocationTrash,
		Destination: LocationPool,
		Patch:       models.Patch{Trash: boolPtr(false)},
	}
	DemotePick = Transition{
		Name:        "demote-pick",
		Source:      LocationPicks,
		Destination: LocationPool,
		Patch:       models.Patch{Pick: boolPtr(false), Rating: intPtr(4)},
	}
)

// Move relocates one asset (image file plus sidecar) along a transition.
//
// The steps run in a fixed order: write the patched sidecar at the
// destination, delete the source sidecar, move the image file last. There
// is no rollback; if a step fails the transition aborts and leaves the
// partial state behind. The order keeps that state recoverable: an
// interrupted run leaves a readable sidecar at the destination and the
// image still at the source, and re-running the same transition completes
// it (sidecar write and delete are repeatable, the file move runs last).
func (l *Library) Move(t Transition, filename string) error {
	srcDir := t.Source.Dir(l.base)
	dstDir := t.Destination.Dir(l.base)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("create %s directory: %v", t.Destination, err)}
	}

	srcImage := filepath.Join(srcDir, filename)
	if _, err := os.Stat(srcImage); err != nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s does not exist in %s", filename, t.Source)}
	}

	srcSidecar := SidecarPath(srcImage)
	if _, err := os.Stat(srcSidecar); err != nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("sidecar for %s not found in %s", filename, t.Source)}
	}

	meta, err := l.store.Load(srcSidecar)
	if err != nil {
		return err
	}
	meta = meta.Apply(t.Patch)

	dstSidecar := filepath.Join(dstDir, filepath.Base(srcSidecar))
	if err := l.store.Save(dstSidecar, meta); err != nil {
		return err
	}
	if err := os.Remove(srcSidecar); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("remove source sidecar %s: %v", srcSidecar, err)}
	}
	if err := os.Rename(srcImage, filepath.Join(dstDir, filename)); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("move %s to %s: %v", filename, t.Destination, err)}
	}

	l.logger.Info("asset moved",
		"transition", t.Name,
		"filename", filename,
		"from", t.Source,
		"to", t.Destination,
	)
	return nil
}

// PurgeTrash deletes every file directly under the trash location, image
// files and sidecars alike. The first deletion failure aborts the rest of
// the batch. Fails with domain.ErrNotFound if the trash directory is
// absent.
func (l *Library) PurgeTrash() error {
	dir := LocationTrash.Dir(l.base)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.NotFoundError{Message: "trash directory does not exist"}
		}
		return &domain.IOError{Message: fmt.Sprintf("read trash directory: %v", err)}
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return &domain.IOError{Message: fmt.Sprintf("delete %s: %v", path, err)}
		}
		removed++
	}

	l.logger.Info("trash purged", "files_deleted", removed)
	return nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
