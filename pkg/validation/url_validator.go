package validation

import (
	"net"
	"net/url"
	"strings"

	apperrors "go-image-analyzer/internal/errors"
)

// URLValidator handles URL validation logic
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a new URL validator with default settings
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom options
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateImageURL validates a remote image source and returns it parsed
func (v *URLValidator) ValidateImageURL(imageURL string) (*url.URL, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, apperrors.NewInvalidArgumentError("URL cannot be empty", nil)
	}

	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError("Invalid URL format", err)
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return nil, apperrors.NewInvalidArgumentError("URL scheme not allowed", nil)
	}

	if parsedURL.Hostname() == "" {
		return nil, apperrors.NewInvalidArgumentError("URL must have a valid host", nil)
	}

	if !v.isHostAllowed(parsedURL.Hostname()) {
		return nil, apperrors.NewInvalidArgumentError("URL host not allowed", nil)
	}

	// Listed hosts are trusted even when internal.
	if !v.isHostListed(parsedURL.Hostname()) && isInternalHost(parsedURL.Hostname()) {
		return nil, apperrors.NewInvalidArgumentError("URL host is not publicly routable", nil)
	}

	return parsedURL, nil
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

// isHostAllowed returns true if no host restrictions are set
func (v *URLValidator) isHostAllowed(host string) bool {
	return len(v.allowedHosts) == 0 || v.isHostListed(host)
}

func (v *URLValidator) isHostListed(host string) bool {
	for _, allowed := range v.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}

// isInternalHost reports loopback names and IP literals that point into
// private, link-local or unspecified ranges. Names are not resolved.
func isInternalHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
