package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when the backing store rejects or cannot take a write
var ErrUnavailable = errors.New("media store unavailable")

// Store persists uploaded media and returns its public URL
type Store interface {
	Save(ctx context.Context, folder, name string, r io.Reader, contentType string) (string, error)
}

// ObjectName gives an upload a collision-free name that keeps its extension
func ObjectName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 {
		ext = ""
	}
	return uuid.NewString() + ext
}
