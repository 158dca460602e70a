package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/voyager/pkg/domain"
)

const tmpPrefix = ".tmp-"

// Store implements ports.AssetStore using the local filesystem.
// Locations map to files below BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".voyager/assets".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".voyager", "assets")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(location string) (string, error) {
	if !fs.ValidPath(location) || location == "." {
		return "", fmt.Errorf("invalid asset location %q", location)
	}
	return filepath.Join(s.BasePath, filepath.FromSlash(location)), nil
}

// Put writes data to the location's file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, location string, data []byte) error {
	destPath, err := s.path(location)
	if err != nil {
		return err
	}
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure asset directory: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, tmpPrefix+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing asset for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", location, err)
	}
	return nil
}

// Get reads the location's file.
func (s *Store) Get(ctx context.Context, location string) ([]byte, error) {
	filePath, err := s.path(location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", location, domain.ErrAssetNotFound)
		}
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}

// Delete removes the location's file.
func (s *Store) Delete(ctx context.Context, location string) error {
	filePath, err := s.path(location)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// List walks BasePath and returns the locations under prefix. Temporary files of
// in-flight writes are skipped.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var locations []string
	err := filepath.WalkDir(s.BasePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == s.BasePath {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), tmpPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.BasePath, p)
		if err != nil {
			return err
		}
		if location := filepath.ToSlash(rel); strings.HasPrefix(location, prefix) {
			locations = append(locations, location)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	slices.Sort(locations)
	return locations, nil
}
