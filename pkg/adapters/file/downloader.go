package file

import (
	"context"
	"fmt"
	"path/filepath"
)

// Downloader implements ports.Downloader by writing into a download directory.
type Downloader struct {
	store *Store
}

// NewDownloader creates a Downloader writing into dir.
// If dir is empty, it defaults to the current directory.
func NewDownloader(dir string) *Downloader {
	if dir == "" {
		dir = "."
	}
	return &Downloader{store: New(dir)}
}

// Download writes data to fileName inside the download directory. Directory
// components of fileName are dropped.
func (d *Downloader) Download(ctx context.Context, fileName string, data []byte) error {
	name := filepath.Base(filepath.Clean(fileName))
	if err := d.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("download %s: %w", fileName, err)
	}
	return nil
}
