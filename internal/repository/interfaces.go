package repository

import (
	"context"
)

// SourceRepository turns an analysis source into a file the drivers can open
type SourceRepository interface {
	// Open resolves source to a local file. The caller must Close the result;
	// for remote sources that removes the downloaded copy.
	Open(ctx context.Context, source string) (*LocalImage, error)

	// Validate checks a source without touching the network or the disk
	Validate(source string) error
}

// SourceKind tells where a source lives
type SourceKind string

const (
	SourceLocal SourceKind = "local"
	SourceHTTP  SourceKind = "http"
	SourceAzure SourceKind = "azure"
)

// LocalImage is a source available on the local file system
type LocalImage struct {
	Source string
	Path   string
	Kind   SourceKind
	Size   int64

	release func() error
}

// Close releases the local copy. It is safe to call more than once.
func (l *LocalImage) Close() error {
	if l == nil || l.release == nil {
		return nil
	}
	release := l.release
	l.release = nil
	return release()
}
