package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when a source exceeds the configured size limit
var ErrTooLarge = errors.New("source exceeds size limit")

// Fetcher downloads a remote source and streams its bytes into dst
type Fetcher interface {
	Fetch(ctx context.Context, source string, dst io.Writer) error
}

// copyLimited copies src into dst and fails with ErrTooLarge once more than
// limit bytes arrive. A limit of zero or less copies everything.
func copyLimited(dst io.Writer, src io.Reader, limit int64) error {
	if limit <= 0 {
		_, err := io.Copy(dst, src)
		return err
	}

	n, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return nil
}
