package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/voyager"
	"github.com/aretw0/voyager/pkg/ports"
)

// CaptureDownloader forwards downloads and keeps the outcome of the last one, so that
// a download triggered through a document event can be checked afterwards.
type CaptureDownloader struct {
	ports.Downloader

	mu     sync.Mutex
	called bool
	name   string
	err    error
}

func (c *CaptureDownloader) Download(ctx context.Context, fileName string, data []byte) error {
	err := c.Downloader.Download(ctx, fileName, data)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.called, c.name, c.err = true, fileName, err
	return err
}

// Result returns the file name and error of the last download.
func (c *CaptureDownloader) Result() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.called {
		return "", errors.New("no download happened")
	}
	return c.name, c.err
}

// Export opens the document at path and fires its download event. The engine must
// have been created with downloader.
func Export(ctx context.Context, eng *voyager.Engine, downloader *CaptureDownloader, path string) (string, error) {
	doc, err := eng.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer doc.Node().Dispose()

	doc.Download.Set()
	eng.Tick(ctx)
	return downloader.Result()
}
