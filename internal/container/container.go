package container

import (
	"fmt"
	"net/http"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/config"
	"go-image-analyzer/internal/factory"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/observer"
	"go-image-analyzer/internal/repository"
	"go-image-analyzer/internal/service"
	"go-image-analyzer/internal/storage"
	"go-image-analyzer/internal/transport"
	"go-image-analyzer/pkg/validation"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config               *config.Config
	drivers              []analyzer.Driver
	sourceRepository     repository.SourceRepository
	metrics              *observer.MetricsObserver
	imageAnalysisService service.ImageAnalysisService
	handler              http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory(factory.StorageOptions{
		AzureAccountName: cfg.AzureAccountName,
		AzureAccountKey:  cfg.AzureAccountKey,
		FetchTimeout:     cfg.ImageFetchTimeout,
		MaxSourceSize:    cfg.MaxSourceSize,
	})

	drivers, err := components.DriverFactory.CreateDrivers(cfg.Drivers)
	if err != nil {
		return nil, fmt.Errorf("failed to create drivers: %w", err)
	}
	for _, d := range drivers {
		logger.WithFields(logrus.Fields{
			"driver":    d.Name(),
			"available": d.Available(),
		}).Info("Registered analysis driver")
	}

	httpFetcher, err := components.StorageFactory.CreateStorage(factory.HTTPStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to create http storage: %w", err)
	}

	var azureFetcher storage.Fetcher
	allowedHosts := cfg.AllowedHosts
	if cfg.AzureEnabled() {
		azureFetcher, err = components.StorageFactory.CreateStorage(factory.AzureStorage)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure storage: %w", err)
		}
		if len(allowedHosts) > 0 {
			allowedHosts = append(append([]string(nil), allowedHosts...), cfg.AzureAccountName+storage.AzureBlobHostSuffix)
		}
	}

	urlValidator := validation.NewURLValidatorWithOptions([]string{"http", "https"}, allowedHosts)
	sourceRepository := repository.NewSourceRepository(httpFetcher, azureFetcher, urlValidator, repository.Options{
		TempDir:      cfg.TempDir,
		LocalRoot:    cfg.LocalSourceRoot,
		FetchTimeout: cfg.ImageFetchTimeout,
		MaxSize:      cfg.MaxSourceSize,
	})
	if cfg.LocalSourceRoot == "" {
		logger.Info("Local path sources disabled; set LOCAL_SOURCE_ROOT to enable them")
	}

	metrics := observer.NewMetricsObserver()
	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(metrics)

	imageAnalysisService := service.NewImageAnalysisService(
		sourceRepository,
		drivers,
		validation.NewInfoValidator(),
		publisher,
	)
	handler := transport.NewHandler(imageAnalysisService, metrics, cfg)

	return &Container{
		config:               cfg,
		drivers:              drivers,
		sourceRepository:     sourceRepository,
		metrics:              metrics,
		imageAnalysisService: imageAnalysisService,
		handler:              handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the analysis service
func (c *Container) Service() service.ImageAnalysisService {
	return c.imageAnalysisService
}

// Drivers returns the configured drivers in preference order
func (c *Container) Drivers() []analyzer.Driver {
	return c.drivers
}

// Metrics returns the metrics collected from analysis events
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}
