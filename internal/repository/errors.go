package repository

import "errors"

var (
	// ErrInvalidSource indicates an empty or malformed source
	ErrInvalidSource = errors.New("invalid image source")

	// ErrSourceNotFound indicates a local path that does not exist
	ErrSourceNotFound = errors.New("image source not found")

	// ErrStorageUnavailable indicates a source whose storage backend is not configured
	ErrStorageUnavailable = errors.New("storage backend unavailable")

	// ErrLocalSourcesDisabled indicates a local path while no local root is configured
	ErrLocalSourcesDisabled = errors.New("local sources are disabled")

	// ErrOutsideRoot indicates a local path that escapes the local root
	ErrOutsideRoot = errors.New("path is outside the local source root")

	// ErrSourceTooLarge indicates a source over the size limit
	ErrSourceTooLarge = errors.New("image source too large")
)
