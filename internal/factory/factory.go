package factory

import (
	"fmt"
	"strings"
	"time"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/driver"
	"go-image-analyzer/internal/storage"
)

// DriverType names a backend driver
type DriverType string

const (
	// ImageDriver reads headers with the Go image decoders
	ImageDriver DriverType = driver.NameImage
	// ImagickDriver reads files with ImageMagick
	ImagickDriver DriverType = driver.NameImagick
	// VipsDriver reads files with libvips
	VipsDriver DriverType = driver.NameVips
	// OpenCVDriver reads files with OpenCV
	OpenCVDriver DriverType = driver.NameOpenCV
)

// DriverTypes lists every known driver in default preference order
var DriverTypes = []DriverType{ImagickDriver, VipsDriver, OpenCVDriver, ImageDriver}

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
)

// DriverFactory creates drivers by name
type DriverFactory interface {
	CreateDriver(driverType DriverType) (analyzer.Driver, error)
	CreateDrivers(names []string) ([]analyzer.Driver, error)
}

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.Fetcher, error)
}

type driverFactory struct{}

// NewDriverFactory creates a new driver factory
func NewDriverFactory() DriverFactory {
	return &driverFactory{}
}

// CreateDriver creates a driver based on the specified type. The driver is
// returned even when its backend is not available in this process.
func (f *driverFactory) CreateDriver(driverType DriverType) (analyzer.Driver, error) {
	switch driverType {
	case ImageDriver:
		return driver.NewImageDriver(), nil
	case ImagickDriver:
		return driver.NewImagickDriver(), nil
	case VipsDriver:
		return driver.NewVipsDriver(), nil
	case OpenCVDriver:
		return driver.NewOpenCVDriver(), nil
	default:
		return nil, fmt.Errorf("unsupported driver type: %s", driverType)
	}
}

// CreateDrivers creates drivers in the given order, skipping blanks and duplicates
func (f *driverFactory) CreateDrivers(names []string) ([]analyzer.Driver, error) {
	drivers := make([]analyzer.Driver, 0, len(names))
	seen := make(map[DriverType]bool, len(names))

	for _, name := range names {
		driverType := DriverType(strings.ToLower(strings.TrimSpace(name)))
		if driverType == "" || seen[driverType] {
			continue
		}
		d, err := f.CreateDriver(driverType)
		if err != nil {
			return nil, err
		}
		seen[driverType] = true
		drivers = append(drivers, d)
	}

	if len(drivers) == 0 {
		return nil, fmt.Errorf("no drivers configured")
	}
	return drivers, nil
}

// StorageOptions carries what the storage backends need to connect
type StorageOptions struct {
	AzureAccountName string
	AzureAccountKey  string

	// FetchTimeout bounds one HTTP attempt
	FetchTimeout  time.Duration
	// MaxSourceSize caps a download in bytes; zero means unlimited
	MaxSourceSize int64
}

type storageFactory struct {
	options StorageOptions
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(options StorageOptions) StorageFactory {
	return &storageFactory{options: options}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.Fetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPFetcher(f.options.FetchTimeout, f.options.MaxSourceSize), nil
	case AzureStorage:
		if f.options.AzureAccountName == "" || f.options.AzureAccountKey == "" {
			return nil, fmt.Errorf("azure storage requires an account name and key")
		}
		return storage.NewAzureFetcher(f.options.AzureAccountName, f.options.AzureAccountKey, f.options.MaxSourceSize)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	DriverFactory  DriverFactory
	StorageFactory StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(options StorageOptions) *ComponentFactory {
	return &ComponentFactory{
		DriverFactory:  NewDriverFactory(),
		StorageFactory: NewStorageFactory(options),
	}
}
