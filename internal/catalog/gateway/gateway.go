package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound marks an identifier the media directory does not know.
var ErrNotFound = errors.New("resource not found")

// Resource is one stored asset as the media directory reports it.
type Resource struct {
	PublicID  string
	Format    string
	Width     int
	Height    int
	Bytes     int64
	URL       string
	CreatedAt time.Time
}

type UploadRequest struct {
	PublicID string
	Body     io.Reader
}

// Directory is the contract the catalog needs from the media directory.
// Nothing above this interface may assume Cloudinary.
type Directory interface {
	ListByPrefix(ctx context.Context, prefix string, maxResults int) ([]Resource, error)
	GetByID(ctx context.Context, id string) (Resource, error)
	DeleteByID(ctx context.Context, id string) error
	Upload(ctx context.Context, req UploadRequest) (Resource, error)
}

// HTTPError captures an unexpected upstream status code and body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}
