package service

import (
	"context"
	"time"

	"go-image-analyzer/internal/analyzer"
	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/observer"
	"go-image-analyzer/internal/repository"
	"go-image-analyzer/internal/strategy"
	"go-image-analyzer/pkg/models"
	"go-image-analyzer/pkg/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImageAnalysisService resolves sources, picks drivers and runs analyses
type ImageAnalysisService interface {
	// AnalyzeFile analyzes a file already on the local file system
	AnalyzeFile(ctx context.Context, filename string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error)

	// AnalyzeSource analyzes a local path, http(s) URL or Azure blob URL
	AnalyzeSource(ctx context.Context, source string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error)

	// AnalyzeBatch analyzes every source and returns one result per source,
	// in input order. Failures are reported in AnalysisResult.Err.
	AnalyzeBatch(ctx context.Context, sources []string, options analyzer.AnalysisOptions) []*models.AnalysisResult

	// Drivers reports the configured drivers in preference order
	Drivers() []models.DriverStatus

	// ValidateSource checks a source without fetching it
	ValidateSource(source string) error
}

type imageAnalysisService struct {
	sourceRepo repository.SourceRepository
	drivers    []analyzer.Driver
	validator  *validation.InfoValidator
	publisher  observer.Subject
}

// NewImageAnalysisService creates a new image analysis service. drivers are
// tried in the given order when no driver is requested.
func NewImageAnalysisService(
	sourceRepository repository.SourceRepository,
	drivers []analyzer.Driver,
	infoValidator *validation.InfoValidator,
	publisher observer.Subject,
) ImageAnalysisService {
	return &imageAnalysisService{
		sourceRepo: sourceRepository,
		drivers:    drivers,
		validator:  infoValidator,
		publisher:  publisher,
	}
}

func (s *imageAnalysisService) AnalyzeFile(ctx context.Context, filename string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	result := newResult(filename)
	s.publish(ctx, observer.NewEvent(observer.AnalysisStarted, filename))

	err := s.analyze(ctx, result, filename, options)
	return s.finish(ctx, result, err)
}

func (s *imageAnalysisService) AnalyzeSource(ctx context.Context, source string, options analyzer.AnalysisOptions) (*models.AnalysisResult, error) {
	result := newResult(source)
	s.publish(ctx, observer.NewEvent(observer.AnalysisStarted, source))

	img, err := s.sourceRepo.Open(ctx, source)
	if err != nil {
		event := observer.NewEvent(observer.SourceFetchFailed, source)
		event.ErrorMessage = err.Error()
		s.publish(ctx, event)
		return s.finish(ctx, result, err)
	}
	defer img.Close()

	if img.Kind != repository.SourceLocal {
		event := observer.NewEvent(observer.SourceFetched, source)
		event.Success = true
		event.Metadata = map[string]interface{}{"bytes": img.Size, "storage": img.Kind}
		s.publish(ctx, event)
	}

	err = s.analyze(ctx, result, img.Path, options)
	return s.finish(ctx, result, err)
}

func (s *imageAnalysisService) AnalyzeBatch(ctx context.Context, sources []string, options analyzer.AnalysisOptions) []*models.AnalysisResult {
	results := make([]*models.AnalysisResult, len(sources))

	// AnalyzeSource always returns a result; the error is kept in result.Err
	analyzeOne := func(i int) {
		results[i], _ = s.AnalyzeSource(ctx, sources[i], options)
	}

	if !options.UseWorkerPool || len(sources) < 2 {
		for i := range sources {
			analyzeOne(i)
		}
		return results
	}

	pool := analyzer.NewWorkerPool(options.MaxWorkers)
	pool.Start()
	defer pool.Close()

	for i := range sources {
		if ctx.Err() != nil {
			results[i] = newResult(sources[i])
			results[i].Err = apperrors.NewTimeoutError("batch cancelled before analysis", ctx.Err())
			continue
		}
		pool.Submit(func() { analyzeOne(i) })
	}
	pool.Wait()

	stats := pool.GetStats()
	logger.WithFields(logrus.Fields{
		"sources":   len(sources),
		"completed": stats.CompletedJobs,
	}).Debug("Batch analysis finished")

	return results
}

func (s *imageAnalysisService) Drivers() []models.DriverStatus {
	statuses := make([]models.DriverStatus, 0, len(s.drivers))
	for _, d := range s.drivers {
		statuses = append(statuses, models.DriverStatus{Name: d.Name(), Available: d.Available()})
	}
	return statuses
}

func (s *imageAnalysisService) ValidateSource(source string) error {
	return s.sourceRepo.Validate(source)
}

// analyze selects a driver and runs it within options.Timeout
func (s *imageAnalysisService) analyze(ctx context.Context, result *models.AnalysisResult, filename string, options analyzer.AnalysisOptions) error {
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewTimeoutError("analysis cancelled", err)
	}

	selection := strategy.ForOptions(options)
	driver, err := selection.Select(s.drivers, filename)
	if err != nil {
		return err
	}
	result.Driver = driver.Name()

	event := observer.NewEvent(observer.DriverSelected, result.Source)
	event.Driver = driver.Name()
	event.Metadata = map[string]interface{}{"strategy": selection.GetStrategyName()}
	s.publish(ctx, event)

	info, err := runDriver(ctx, driver, filename)
	if err != nil {
		return err
	}

	if options.ValidateResult {
		if err := s.validator.Validate(info); err != nil {
			return err
		}
	}

	result.Info = info
	return nil
}

type driverOutcome struct {
	info *models.ImageInfo
	err  error
}

// runDriver returns when the driver finishes or ctx ends, whichever is
// first. A native decode cannot be interrupted; on timeout it runs on in the
// background and its result is dropped.
func runDriver(ctx context.Context, driver analyzer.Driver, filename string) (*models.ImageInfo, error) {
	if ctx.Done() == nil {
		return analyzer.NewImageAnalyzer(driver).Analyze(filename)
	}

	done := make(chan driverOutcome, 1)
	go func() {
		info, err := analyzer.NewImageAnalyzer(driver).Analyze(filename)
		done <- driverOutcome{info: info, err: err}
	}()

	select {
	case out := <-done:
		return out.info, out.err
	case <-ctx.Done():
		logger.WithFields(logrus.Fields{
			"driver": driver.Name(),
			"file":   filename,
		}).Warn("Analysis abandoned after deadline")
		return nil, apperrors.NewTimeoutError("analysis timed out", ctx.Err())
	}
}

func (s *imageAnalysisService) finish(ctx context.Context, result *models.AnalysisResult, err error) (*models.AnalysisResult, error) {
	result.ProcessingTime = time.Since(result.Timestamp)

	eventType := observer.AnalysisCompleted
	if err != nil {
		eventType = observer.AnalysisFailed
		result.Err = err
	}

	event := observer.NewEvent(eventType, result.Source)
	event.Driver = result.Driver
	event.ProcessingTime = result.ProcessingTime
	event.Success = err == nil
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	s.publish(ctx, event)

	return result, err
}

func (s *imageAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.publisher != nil {
		s.publisher.NotifyObservers(ctx, event)
	}
}

func newResult(source string) *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:        uuid.NewString(),
		Source:    source,
		Timestamp: time.Now(),
	}
}
