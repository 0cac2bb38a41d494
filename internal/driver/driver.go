// Package driver holds the backend drivers. Each one calls a single image
// library and translates that library's enumerations into the normalized
// labels of models.ImageInfo through explicit, total mapping functions.
package driver

import (
	"sync"

	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/internal/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Driver names, also used as ImageInfo.Analyzer.
const (
	NameImage   = "image"
	NameImagick = "imagick"
	NameVips    = "vips"
	NameOpenCV  = "opencv"
)

const unsupportedMessage = "File type not supported."

// unsupported wraps a backend failure for filename into an unsupported-file error.
func unsupported(driver, filename string, cause error) error {
	if cause != nil {
		cause = errors.Wrapf(cause, "%s: decode %s", driver, filename)
	}
	logger.WithFields(logrus.Fields{
		"driver": driver,
		"file":   filename,
	}).WithError(cause).Debug("Backend could not decode file")
	return apperrors.NewUnsupportedFileError(unsupportedMessage, cause)
}

// availability runs a check once and caches it for the process lifetime.
type availability struct {
	once  sync.Once
	check func() bool
	ok    bool
}

func (a *availability) get() bool {
	a.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				a.ok = false
			}
		}()
		a.ok = a.check()
	})
	return a.ok
}

// notCompiled is the cause reported by drivers left out of the build.
func notCompiled(library, tag string) error {
	return errors.Errorf("%s support not compiled in (build with -tags %s)", library, tag)
}

func ptr[T any](v T) *T {
	return &v
}
