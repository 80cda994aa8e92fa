package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"darkroom/internal/domain"
	"darkroom/internal/domain/models"
	"darkroom/internal/sidecar"
)

// Library operates on the asset tree rooted at a configured base
// directory. The base directory is injected at construction; nothing in
// this package reads process-wide state.
type Library struct {
	base   string
	store  *sidecar.Store
	logger *slog.Logger
}

// New creates a library over the asset tree at baseDir.
func New(baseDir string, store *sidecar.Store, logger *slog.Logger) *Library {
	return &Library{
		base:   baseDir,
		store:  store,
		logger: logger,
	}
}

// Dir returns the directory backing a location.
func (l *Library) Dir(loc Location) string {
	return loc.Dir(l.base)
}

// SidecarFor returns the sidecar path for filename inside a location.
func (l *Library) SidecarFor(loc Location, filename string) string {
	return SidecarPath(filepath.Join(loc.Dir(l.base), filename))
}

// CheckBase fails with domain.ErrNotFound if the base directory is absent.
func (l *Library) CheckBase() error {
	info, err := os.Stat(l.base)
	if err != nil || !info.IsDir() {
		return &domain.NotFoundError{Message: "base directory does not exist"}
	}
	return nil
}

// EnsureSidecar creates a default sidecar for the asset at assetPath if
// none exists yet. Idempotent: an existing sidecar is left untouched.
// Fails with domain.ErrNotFound if the asset's directory is absent.
func (l *Library) EnsureSidecar(assetPath string) error {
	if err := l.checkDir(filepath.Dir(assetPath)); err != nil {
		return err
	}

	scPath := SidecarPath(assetPath)
	if _, err := os.Stat(scPath); err == nil {
		return nil
	}

	meta := sidecar.Default(filepath.Base(assetPath))
	if err := l.store.Save(scPath, meta); err != nil {
		return err
	}
	l.logger.Debug("sidecar created", "path", scPath)
	return nil
}

// ReconcileSidecar loads the asset's existing sidecar, backfills missing
// fields, and writes it back. The rewrite happens even when nothing
// changed. Fails with domain.ErrNotFound if the asset's directory or its
// sidecar is absent.
func (l *Library) ReconcileSidecar(assetPath string) error {
	if err := l.checkDir(filepath.Dir(assetPath)); err != nil {
		return err
	}

	scPath := SidecarPath(assetPath)
	meta, err := l.store.Load(scPath)
	if err != nil {
		return err
	}
	return l.store.Save(scPath, sidecar.Backfill(meta))
}

// ListAssets returns the image files directly inside dir: regular files
// that are not hidden and are not sidecars. Non-recursive. A missing
// directory yields an empty list.
func (l *Library) ListAssets(dir string) ([]string, error) {
	return l.list(dir, func(name string) bool {
		return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".json")
	})
}

// ListSidecars returns the sidecar files directly inside dir.
// A missing directory yields an empty list.
func (l *Library) ListSidecars(dir string) ([]string, error) {
	return l.list(dir, func(name string) bool {
		return strings.HasSuffix(name, ".json")
	})
}

// ReadAll loads every sidecar directly inside dir, keeping the entries
// for which pred is nil or returns true. Load failures propagate.
func (l *Library) ReadAll(dir string, pred func(models.Metadata) bool) ([]models.Metadata, error) {
	paths, err := l.ListSidecars(dir)
	if err != nil {
		return nil, err
	}

	out := make([]models.Metadata, 0, len(paths))
	for _, p := range paths {
		meta, err := l.store.Load(p)
		if err != nil {
			return nil, err
		}
		if pred != nil && !pred(meta) {
			continue
		}
		out = append(out, meta)
	}
	return out, nil
}

func (l *Library) list(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.IOError{Message: fmt.Sprintf("read directory %s: %v", dir, err)}
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out, nil
}

func (l *Library) checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &domain.NotFoundError{Message: fmt.Sprintf("directory does not exist: %s", dir)}
	}
	return nil
}
