package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlobHostSuffix identifies Azure blob endpoints
const AzureBlobHostSuffix = ".blob.core.windows.net"

// ErrForeignAccount is returned for blob URLs outside the configured account
var ErrForeignAccount = errors.New("blob belongs to another storage account")

// AzureFetcher downloads blobs from one storage account
type AzureFetcher struct {
	client   *azblob.Client
	account  string
	maxBytes int64
}

// NewAzureFetcher creates a fetcher authenticated with a shared key. Blobs
// over maxBytes fail with ErrTooLarge; zero or less means no limit.
func NewAzureFetcher(accountName string, accountKey string, maxBytes int64) (*AzureFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s%s", accountName, AzureBlobHostSuffix),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure client: %w", err)
	}

	return &AzureFetcher{client: client, account: accountName, maxBytes: maxBytes}, nil
}

// Account returns the storage account the fetcher is authenticated for
func (s *AzureFetcher) Account() string {
	return s.account
}

func (s *AzureFetcher) Fetch(ctx context.Context, blobURL string, dst io.Writer) error {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return fmt.Errorf("invalid blob URL: %w", err)
	}
	if !strings.EqualFold(BlobAccount(parsedURL), s.account) {
		return fmt.Errorf("%w: %s", ErrForeignAccount, parsedURL.Hostname())
	}

	containerName, blobName, err := ParseBlobURL(blobURL)
	if err != nil {
		return err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	body := downloadResponse.Body
	defer body.Close()

	if err := copyLimited(dst, body, s.maxBytes); err != nil {
		return fmt.Errorf("failed to read blob: %w", err)
	}
	return nil
}

// ParseBlobURL splits a blob URL into container and blob name. Both the
// path form (/container/dir/blob.jpg) and the query form
// (/container?blob=dir/blob.jpg) are accepted.
func ParseBlobURL(blobURL string) (container, blob string, err error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid blob URL: %w", err)
	}

	path := strings.TrimPrefix(parsedURL.Path, "/")
	if name := parsedURL.Query().Get("blob"); name != "" {
		container, blob = path, name
	} else {
		container, blob, _ = strings.Cut(path, "/")
	}

	if container == "" || blob == "" {
		return "", "", fmt.Errorf("invalid blob URL: %q has no container or blob name", blobURL)
	}
	return container, blob, nil
}

// BlobAccount returns the storage account named by a blob URL host, or ""
// when u is not a blob URL
func BlobAccount(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	account, ok := strings.CutSuffix(host, AzureBlobHostSuffix)
	if !ok || account == "" || strings.Contains(account, ".") {
		return ""
	}
	return account
}

// IsBlobURL reports whether u points at an Azure blob endpoint
func IsBlobURL(u *url.URL) bool {
	return strings.HasSuffix(strings.ToLower(u.Hostname()), AzureBlobHostSuffix)
}
