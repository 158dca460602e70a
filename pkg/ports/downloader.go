package ports

import "context"

// Downloader delivers a serialized document to the user, e.g. as a file in a download
// directory.
type Downloader interface {
	Download(ctx context.Context, fileName string, data []byte) error
}
