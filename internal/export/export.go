// Package export packages parts of the asset tree into zip archives for
// download. It reads the tree through the library and never mutates
// pool, picks or trash content.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"darkroom/internal/domain"
	"darkroom/internal/library"
	"darkroom/internal/sidecar"

	"github.com/google/uuid"
)

// Service builds export archives from the asset tree.
type Service struct {
	lib    *library.Library
	store  *sidecar.Store
	logger *slog.Logger
}

// NewService creates the export service.
func NewService(lib *library.Library, store *sidecar.Store, logger *slog.Logger) *Service {
	return &Service{
		lib:    lib,
		store:  store,
		logger: logger,
	}
}

// Prompts collects every asset in the pool and picks whose sidecar has a
// non-empty prompt, copies the image next to a <stem>.txt file holding
// the prompt text, and zips the result. Returns the zip path. Fails with
// domain.ErrNotFound when nothing has a prompt to export.
//
// Archives are staged outside the asset tree so a later scan never
// mistakes them for assets.
func (s *Service) Prompts(ctx context.Context) (string, error) {
	scratch := scratchDir()
	exportDir := filepath.Join(scratch, "exported_prompts")
	if err := recreateDir(exportDir); err != nil {
		return "", err
	}

	exported := 0
	for _, loc := range []library.Location{library.LocationPool, library.LocationPicks} {
		dir := s.lib.Dir(loc)
		sidecars, err := s.lib.ListSidecars(dir)
		if err != nil {
			return "", err
		}
		for _, scPath := range sidecars {
			meta, err := s.store.Load(scPath)
			if err != nil {
				return "", err
			}
			if meta.Prompt == "" {
				continue
			}

			imgPath, ok, err := s.findAsset(dir, scPath)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}

			if err := copyFile(imgPath, filepath.Join(exportDir, filepath.Base(imgPath))); err != nil {
				return "", err
			}
			stem := strings.TrimSuffix(filepath.Base(scPath), ".json")
			txtPath := filepath.Join(exportDir, stem+".txt")
			if err := os.WriteFile(txtPath, []byte(meta.Prompt), 0644); err != nil {
				return "", &domain.IOError{Message: fmt.Sprintf("write prompt file %s: %v", txtPath, err)}
			}
			exported++
		}
	}

	if exported == 0 {
		return "", &domain.NotFoundError{Message: "no prompts to export"}
	}

	zipPath := filepath.Join(scratch, "exported_prompts.zip")
	if err := zipDir(exportDir, zipPath); err != nil {
		return "", err
	}

	s.logger.Info("prompts exported", "count", exported, "archive", zipPath)
	return zipPath, nil
}

// Picks zips the whole picks directory. Fails with domain.ErrNotFound if
// the picks directory does not exist.
func (s *Service) Picks(ctx context.Context) (string, error) {
	picksDir := s.lib.Dir(library.LocationPicks)
	info, err := os.Stat(picksDir)
	if err != nil || !info.IsDir() {
		return "", &domain.NotFoundError{Message: "picks directory does not exist"}
	}

	scratch := scratchDir()
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return "", &domain.IOError{Message: fmt.Sprintf("create export directory %s: %v", scratch, err)}
	}
	zipPath := filepath.Join(scratch, "exported_picks.zip")
	if err := zipDir(picksDir, zipPath); err != nil {
		return "", err
	}

	s.logger.Info("picks exported", "archive", zipPath)
	return zipPath, nil
}

// findAsset locates the image file sharing the sidecar's stem in dir.
// Assets can have any image extension, so the match is by stem, not a
// hardcoded suffix.
func (s *Service) findAsset(dir, sidecarPath string) (string, bool, error) {
	stem := strings.TrimSuffix(filepath.Base(sidecarPath), ".json")
	assets, err := s.lib.ListAssets(dir)
	if err != nil {
		return "", false, err
	}
	for _, asset := range assets {
		name := filepath.Base(asset)
		if strings.TrimSuffix(name, filepath.Ext(name)) == stem {
			return asset, true, nil
		}
	}
	return "", false, nil
}

// scratchDir returns a unique staging directory under the system temp
// dir. Each export gets its own so concurrent downloads never clobber
// each other's archive.
func scratchDir() string {
	return filepath.Join(os.TempDir(), "darkroom-export-"+uuid.NewString())
}

// recreateDir deletes and recreates a scratch directory.
func recreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("clear export directory %s: %v", dir, err)}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("create export directory %s: %v", dir, err)}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &domain.IOError{Message: fmt.Sprintf("open %s: %v", src, err)}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &domain.IOError{Message: fmt.Sprintf("create %s: %v", dst, err)}
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("copy %s: %v", src, err)}
	}
	return nil
}

// zipDir writes a zip archive of every file under dir, with entry names
// relative to dir.
func zipDir(dir, zipPath string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return &domain.IOError{Message: fmt.Sprintf("create archive %s: %v", zipPath, err)}
	}
	defer f.Close()

	w := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entry, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(entry, src)
		return err
	})
	if err != nil {
		w.Close()
		return &domain.IOError{Message: fmt.Sprintf("build archive %s: %v", zipPath, err)}
	}
	if err := w.Close(); err != nil {
		return &domain.IOError{Message: fmt.Sprintf("finalize archive %s: %v", zipPath, err)}
	}
	return nil
}
