// Package storage stores uploaded editor images and hands back public URLs.
package storage

import (
	"context"

	"github.com/rs/zerolog"
)

var storageLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storageLogger = l
}

// Store persists a named blob and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
