package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-image-analyzer/internal/analyzer"
	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/internal/observer"
	"go-image-analyzer/internal/repository"
	"go-image-analyzer/pkg/models"
	"go-image-analyzer/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	name      string
	available bool
	supported map[string]bool
	info      func(filename string) *models.ImageInfo
	delay     time.Duration

	mu    sync.Mutex
	calls int
}

func (d *fakeDriver) Name() string    { return d.name }
func (d *fakeDriver) Available() bool { return d.available }

func (d *fakeDriver) Supports(filename string) bool {
	return d.supported[filename]
}

func (d *fakeDriver) Analyze(filename string) (*models.ImageInfo, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	time.Sleep(d.delay)

	if !d.supported[filename] {
		return nil, apperrors.NewUnsupportedFileError("File type not supported.", nil)
	}
	if d.info != nil {
		return d.info(filename), nil
	}
	return models.NewImageInfo().
		SetAnalyzer(d.name).
		SetSize(466, 350).
		SetFormat("JPEG").
		SetType(models.TypeTrueColor).
		SetColorspace(models.ColorspaceRGB).
		SetDepth(8), nil
}

// fakeRepository maps remote sources to local paths
type fakeRepository struct {
	remote map[string]string
	fail   map[string]error
}

func (r *fakeRepository) Open(ctx context.Context, source string) (*repository.LocalImage, error) {
	if err := r.fail[source]; err != nil {
		return nil, err
	}
	if path, ok := r.remote[source]; ok {
		return &repository.LocalImage{Source: source, Path: path, Kind: repository.SourceHTTP}, nil
	}
	return &repository.LocalImage{Source: source, Path: source, Kind: repository.SourceLocal}, nil
}

func (r *fakeRepository) Validate(source string) error {
	return r.fail[source]
}

type recorder struct {
	mu     sync.Mutex
	events []observer.AnalysisEvent
}

func (r *recorder) OnEvent(ctx context.Context, event observer.AnalysisEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) GetObserverName() string { return "recorder" }

func (r *recorder) types() []observer.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]observer.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.EventType)
	}
	return types
}

func newTestService(repo repository.SourceRepository, drivers ...analyzer.Driver) (ImageAnalysisService, *recorder, *observer.MetricsObserver) {
	publisher := observer.NewEventPublisher()
	rec := &recorder{}
	metrics := observer.NewMetricsObserver()
	publisher.Subscribe(rec)
	publisher.Subscribe(metrics)
	return NewImageAnalysisService(repo, drivers, validation.NewInfoValidator(), publisher), rec, metrics
}

func TestAnalyzeFile_AutoSelectsFirstSupportingDriver(t *testing.T) {
	imagick := &fakeDriver{name: "imagick", available: false, supported: map[string]bool{"a.jpg": true}}
	vips := &fakeDriver{name: "vips", available: true, supported: map[string]bool{}}
	image := &fakeDriver{name: "image", available: true, supported: map[string]bool{"a.jpg": true}}

	svc, rec, _ := newTestService(&fakeRepository{}, imagick, vips, image)

	result, err := svc.AnalyzeFile(context.Background(), "a.jpg", analyzer.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "image", result.Driver)
	assert.Equal(t, "image", result.Info.Analyzer)
	assert.NotEmpty(t, result.ID)
	assert.Nil(t, result.Err)
	assert.Zero(t, imagick.calls)
	assert.Zero(t, vips.calls)

	assert.Eventually(t, func() bool { return len(rec.types()) == 3 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t,
		[]observer.EventType{observer.AnalysisStarted, observer.DriverSelected, observer.AnalysisCompleted},
		rec.types())
}

func TestAnalyzeFile_FixedDriverPassesUnsupportedFileThrough(t *testing.T) {
	vips := &fakeDriver{name: "vips", available: true, supported: map[string]bool{}}
	svc, _, _ := newTestService(&fakeRepository{}, vips)

	result, err := svc.AnalyzeFile(context.Background(), "file.unknown", analyzer.DefaultOptions().WithDriver("vips"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedFile(err))
	assert.Equal(t, err, result.Err)
	assert.Equal(t, 1, vips.calls)
}

func TestAnalyzeFile_NoDriverAvailable(t *testing.T) {
	svc, _, _ := newTestService(&fakeRepository{}, &fakeDriver{name: "imagick"})

	_, err := svc.AnalyzeFile(context.Background(), "a.jpg", analyzer.DefaultOptions())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestAnalyzeFile_ValidationRejectsMalformedInfo(t *testing.T) {
	broken := &fakeDriver{
		name:      "broken",
		available: true,
		supported: map[string]bool{"a.jpg": true},
		info: func(string) *models.ImageInfo {
			return models.NewImageInfo().SetAnalyzer("broken").SetSize(1, 1).SetFormat("JPEG").
				SetType("SOMETHING").SetColorspace(models.ColorspaceRGB)
		},
	}
	svc, _, _ := newTestService(&fakeRepository{}, broken)

	_, err := svc.AnalyzeFile(context.Background(), "a.jpg", analyzer.DefaultOptions())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))

	result, err := svc.AnalyzeFile(context.Background(), "a.jpg", analyzer.DefaultOptions().WithoutValidation())
	require.NoError(t, err)
	assert.Equal(t, "SOMETHING", result.Info.Type)
}

func TestAnalyzeFile_CancelledContext(t *testing.T) {
	d := &fakeDriver{name: "image", available: true, supported: map[string]bool{"a.jpg": true}}
	svc, _, _ := newTestService(&fakeRepository{}, d)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeFile(ctx, "a.jpg", analyzer.DefaultOptions())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout))
	assert.Zero(t, d.calls)
}

func TestAnalyzeFile_TimeoutBoundsSlowDriver(t *testing.T) {
	d := &fakeDriver{name: "image", available: true, supported: map[string]bool{"a.jpg": true}, delay: time.Second}
	svc, _, _ := newTestService(&fakeRepository{}, d)

	start := time.Now()
	result, err := svc.AnalyzeFile(context.Background(), "a.jpg", analyzer.DefaultOptions().WithTimeout(20*time.Millisecond))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Nil(t, result.Info)
	assert.Equal(t, "image", result.Driver)
}

func TestAnalyzeBatch_TimeoutAppliesPerItem(t *testing.T) {
	supported := map[string]bool{"a.jpg": true, "b.png": true}
	slow := &fakeDriver{name: "image", available: true, supported: supported, delay: 200 * time.Millisecond}
	svc, _, _ := newTestService(&fakeRepository{}, slow)

	options := analyzer.DefaultOptions().WithWorkers(2).WithTimeout(20 * time.Millisecond)
	results := svc.AnalyzeBatch(context.Background(), []string{"a.jpg", "b.png"}, options)

	require.Len(t, results, 2)
	for _, result := range results {
		assert.True(t, apperrors.IsType(result.Err, apperrors.ErrorTypeTimeout), result.Source)
	}

	fast := &fakeDriver{name: "image", available: true, supported: supported}
	svc, _, _ = newTestService(&fakeRepository{}, fast)
	results = svc.AnalyzeBatch(context.Background(), []string{"a.jpg", "b.png"}, options)
	for _, result := range results {
		assert.NoError(t, result.Err, result.Source)
		assert.NotNil(t, result.Info)
	}
}

func TestAnalyzeSource_RemoteUsesDownloadedPath(t *testing.T) {
	d := &fakeDriver{name: "image", available: true, supported: map[string]bool{"/tmp/image-analyzer-1": true}}
	repo := &fakeRepository{remote: map[string]string{"https://example.com/a.jpg": "/tmp/image-analyzer-1"}}
	svc, rec, metrics := newTestService(repo, d)

	result, err := svc.AnalyzeSource(context.Background(), "https://example.com/a.jpg", analyzer.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.jpg", result.Source)
	assert.Equal(t, 466, result.Info.Width)

	assert.Eventually(t, func() bool { return len(rec.types()) == 4 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, rec.types(), observer.SourceFetched)
	assert.Eventually(t, func() bool {
		return metrics.GetMetrics().AnalysesByDriver["image"] == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAnalyzeSource_FetchFailure(t *testing.T) {
	fetchErr := apperrors.NewNetworkError("failed to fetch image", errors.New("connection reset"))
	repo := &fakeRepository{fail: map[string]error{"https://example.com/a.jpg": fetchErr}}
	svc, rec, _ := newTestService(repo, &fakeDriver{name: "image", available: true})

	result, err := svc.AnalyzeSource(context.Background(), "https://example.com/a.jpg", analyzer.DefaultOptions())
	assert.Same(t, fetchErr, err)
	require.NotNil(t, result)
	assert.Nil(t, result.Info)

	assert.Eventually(t, func() bool { return len(rec.types()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, rec.types(), observer.SourceFetchFailed)
	assert.Contains(t, rec.types(), observer.AnalysisFailed)
}

func TestAnalyzeBatch(t *testing.T) {
	supported := map[string]bool{"a.jpg": true, "b.png": true, "c.gif": true}
	d := &fakeDriver{name: "image", available: true, supported: supported}

	for _, options := range []analyzer.AnalysisOptions{
		analyzer.DefaultOptions().WithWorkers(2),
		analyzer.SequentialOptions(),
	} {
		svc, _, _ := newTestService(&fakeRepository{}, d)
		sources := []string{"a.jpg", "missing.bmp", "b.png", "c.gif"}

		results := svc.AnalyzeBatch(context.Background(), sources, options)
		require.Len(t, results, len(sources))
		for i, result := range results {
			require.NotNil(t, result)
			assert.Equal(t, sources[i], result.Source, "results keep input order")
		}
		assert.NotNil(t, results[0].Info)
		assert.True(t, apperrors.IsUnsupportedFile(results[1].Err))
		assert.NotNil(t, results[2].Info)
		assert.NotNil(t, results[3].Info)
	}
}

func TestDrivers(t *testing.T) {
	svc, _, _ := newTestService(&fakeRepository{},
		&fakeDriver{name: "imagick", available: false},
		&fakeDriver{name: "image", available: true},
	)

	assert.Equal(t, []models.DriverStatus{
		{Name: "imagick", Available: false},
		{Name: "image", Available: true},
	}, svc.Drivers())
}
