package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/storage"
	"go-image-analyzer/pkg/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tempFilePrefix = "image-analyzer-"

// Options tunes how sources are resolved
type Options struct {
	// TempDir receives downloaded copies
	TempDir string

	// LocalRoot is the only directory local paths may point into. Relative
	// paths are taken from it. Empty disables local sources.
	LocalRoot string

	// FetchTimeout bounds one download including retries; zero means the
	// caller's context is the only bound
	FetchTimeout time.Duration

	// MaxSize caps local files in bytes; zero means unlimited. Downloads are
	// capped by the fetchers.
	MaxSize int64
}

// accountScoped is implemented by fetchers bound to one storage account
type accountScoped interface {
	Account() string
}

// sourceRepository resolves local paths inside a root and downloads remote
// sources into scoped temp files
type sourceRepository struct {
	httpFetcher  storage.Fetcher
	azureFetcher storage.Fetcher
	urlValidator *validation.URLValidator
	options      Options

	// resolvedRoot is LocalRoot with its symlinks followed
	resolvedRoot string
}

// NewSourceRepository creates a repository. azureFetcher may be nil when no
// storage account is configured.
func NewSourceRepository(
	httpFetcher storage.Fetcher,
	azureFetcher storage.Fetcher,
	urlValidator *validation.URLValidator,
	options Options,
) SourceRepository {
	r := &sourceRepository{
		httpFetcher:  httpFetcher,
		azureFetcher: azureFetcher,
		urlValidator: urlValidator,
		options:      options,
	}
	if options.LocalRoot != "" {
		if abs, err := filepath.Abs(options.LocalRoot); err == nil {
			r.options.LocalRoot = abs
		}
		r.options.LocalRoot = filepath.Clean(r.options.LocalRoot)
		r.resolvedRoot = r.options.LocalRoot
		if resolved, err := filepath.EvalSymlinks(r.options.LocalRoot); err == nil {
			r.resolvedRoot = resolved
		}
	}
	return r
}

func (r *sourceRepository) Validate(source string) error {
	_, _, err := r.classify(source)
	return err
}

func (r *sourceRepository) Open(ctx context.Context, source string) (*LocalImage, error) {
	kind, path, err := r.classify(source)
	if err != nil {
		return nil, err
	}

	if kind == SourceLocal {
		return r.openLocal(source, path)
	}
	return r.download(ctx, source, kind)
}

// isRemote treats anything carrying a URL scheme as remote
func isRemote(source string) bool {
	return strings.Contains(source, "://")
}

// classify tells where source lives. For local sources it also returns the
// cleaned path inside the local root.
func (r *sourceRepository) classify(source string) (SourceKind, string, error) {
	if strings.TrimSpace(source) == "" {
		return "", "", apperrors.NewInvalidArgumentError("source cannot be empty", ErrInvalidSource)
	}
	if !isRemote(source) {
		path, err := r.localPath(source)
		if err != nil {
			return "", "", err
		}
		return SourceLocal, path, nil
	}

	parsedURL, err := r.urlValidator.ValidateImageURL(source)
	if err != nil {
		return "", "", err
	}
	if storage.IsBlobURL(parsedURL) {
		if r.azureFetcher == nil {
			return "", "", apperrors.NewInvalidArgumentError("azure storage is not configured", ErrStorageUnavailable)
		}
		if scoped, ok := r.azureFetcher.(accountScoped); ok &&
			!strings.EqualFold(storage.BlobAccount(parsedURL), scoped.Account()) {
			return "", "", apperrors.NewInvalidArgumentError("blob URL names another storage account", storage.ErrForeignAccount)
		}
		return SourceAzure, "", nil
	}
	return SourceHTTP, "", nil
}

func (r *sourceRepository) localPath(source string) (string, error) {
	root := r.options.LocalRoot
	if root == "" {
		return "", apperrors.NewInvalidArgumentError("local sources are not enabled", ErrLocalSourcesDisabled)
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)
	if !within(root, path) && !within(r.resolvedRoot, path) {
		return "", apperrors.NewInvalidArgumentError(fmt.Sprintf("%q is outside the local source root", source), ErrOutsideRoot)
	}
	return path, nil
}

// within reports whether path is root or lies below it
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func (r *sourceRepository) openLocal(source, path string) (*LocalImage, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("file %q does not exist", source), ErrSourceNotFound)
	}
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("file %q cannot be read", source), err)
	}
	// a symlink inside the root may still point out of it
	if !within(r.resolvedRoot, resolved) {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("%q is outside the local source root", source), ErrOutsideRoot)
	}

	stat, err := os.Stat(resolved)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("file %q cannot be read", source), err)
	}
	if stat.IsDir() {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("%q is a directory", source), ErrInvalidSource)
	}
	if r.options.MaxSize > 0 && stat.Size() > r.options.MaxSize {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("file %q is larger than %d bytes", source, r.options.MaxSize), ErrSourceTooLarge)
	}

	return &LocalImage{Source: source, Path: resolved, Kind: SourceLocal, Size: stat.Size()}, nil
}

func (r *sourceRepository) download(ctx context.Context, source string, kind SourceKind) (*LocalImage, error) {
	fetcher := r.httpFetcher
	if kind == SourceAzure {
		fetcher = r.azureFetcher
	}

	if r.options.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.FetchTimeout)
		defer cancel()
	}

	path := filepath.Join(r.options.TempDir, tempFilePrefix+uuid.NewString())
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create temp file", err)
	}

	remove := func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WithFields(logrus.Fields{"path": path}).WithError(err).Warn("Failed to remove temp file")
			return err
		}
		return nil
	}

	fetchErr := fetcher.Fetch(ctx, source, f)
	closeErr := f.Close()
	if fetchErr == nil {
		fetchErr = closeErr
	}
	if fetchErr != nil {
		remove()
		return nil, classifyFetchError(ctx, fetchErr)
	}

	stat, err := os.Stat(path)
	if err != nil {
		remove()
		return nil, apperrors.NewInternalError("downloaded file disappeared", err)
	}

	logger.WithFields(logrus.Fields{
		"source": source,
		"kind":   kind,
		"bytes":  stat.Size(),
	}).Debug("Source downloaded")

	return &LocalImage{Source: source, Path: path, Kind: kind, Size: stat.Size(), release: remove}, nil
}

func classifyFetchError(ctx context.Context, err error) error {
	if errors.Is(err, storage.ErrTooLarge) {
		return apperrors.NewInvalidArgumentError("image source too large", errors.Join(ErrSourceTooLarge, err))
	}
	if errors.Is(err, storage.ErrForeignAccount) {
		return apperrors.NewInvalidArgumentError("blob URL names another storage account", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("image fetch timed out", err)
	}
	return apperrors.NewNetworkError("failed to fetch image", err)
}
