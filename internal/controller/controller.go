package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/riskscan/internal/model"
	"github.com/nao1215/riskscan/internal/preflight"
	"github.com/nao1215/riskscan/internal/report"
)

// DefaultInterval is the period of the automatic history and stats refresh.
const DefaultInterval = 10 * time.Second

// Backend is the analysis service. *backend.Client implements it.
type Backend interface {
	// Analyze sends a validated request to the endpoint matching its kind.
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error)
	History(ctx context.Context) (model.History, error)
	Stats(ctx context.Context) (*model.StatsSnapshot, error)
}

// Notifier shows a notice to the operator.
type Notifier interface {
	Notify(message string)
}

// Region is a display area replaced wholesale on every Show.
type Region interface {
	Show(content string)
}

// Recorder stores successful submissions locally.
type Recorder interface {
	RecordSubmission(ctx context.Context, s *model.Submission) error
}

// Inspector looks for identifying metadata in screenshots.
type Inspector interface {
	Inspect(image []byte) ([]preflight.Finding, error)
}

// Ticker is the tick source used by Run.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// timeTicker adapts *time.Ticker to Ticker.
type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Controller coordinates submissions, notices, and region refreshes.
type Controller struct {
	backend  Backend
	notifier Notifier
	history  Region
	stats    Region

	recorder  Recorder
	inspector Inspector
	logger    *slog.Logger
	now       func() time.Time

	interval  time.Duration
	newTicker func(time.Duration) Ticker

	historySeq sequencer
	statsSeq   sequencer

	// inflight tracks timer-driven refreshes so Run can wait for them.
	inflight sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder journals every successful submission.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithInspector enables the preflight metadata check for screenshots.
func WithInspector(i Inspector) Option {
	return func(c *Controller) {
		c.inspector = i
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithInterval sets the automatic refresh period. Non-positive values are
// ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTicker replaces the tick source used by Run.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(c *Controller) {
		c.newTicker = newTicker
	}
}

// WithClock sets the time source used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a Controller that submits to backend, announces verdicts via
// notifier, and renders into the history and stats regions.
func New(backend Backend, notifier Notifier, history, stats Region, opts ...Option) *Controller {
	c := &Controller{
		backend:   backend,
		notifier:  notifier,
		history:   history,
		stats:     stats,
		now:       time.Now,
		interval:  DefaultInterval,
		newTicker: newTimeTicker,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Interval returns the automatic refresh period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// SubmitScreenshot submits an image. An empty filename means no file was
// selected.
func (c *Controller) SubmitScreenshot(ctx context.Context, filename string, image []byte) (*model.AnalysisResult, error) {
	return c.Submit(ctx, model.NewScreenshotRequest(filename, image))
}

// SubmitText submits free text. The text is trimmed before validation.
func (c *Controller) SubmitText(ctx context.Context, text string) (*model.AnalysisResult, error) {
	return c.Submit(ctx, model.NewTextRequest(text))
}

// SubmitWebsite submits a URL. The URL is trimmed but not parsed.
func (c *Controller) SubmitWebsite(ctx context.Context, websiteURL string) (*model.AnalysisResult, error) {
	return c.Submit(ctx, model.NewWebsiteRequest(websiteURL))
}

// Submit validates req, sends it to the backend, and announces the verdict.
//
// A validation failure is announced and returned without any network call.
// A backend failure is announced as "Analysis failed: ..." and returned.
// On success the verdict is announced, journaled when a Recorder is set, and
// one history and one stats refresh run concurrently; Submit returns after
// both finish. Refresh failures are logged and do not fail the submission.
func (c *Controller) Submit(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			c.notifier.Notify(verr.Prompt)
		} else {
			c.notifier.Notify(err.Error())
		}
		return nil, err
	}

	if req.Kind == model.KindScreenshot {
		c.inspect(req)
	}

	result, err := c.backend.Analyze(ctx, req)
	if err != nil {
		c.logger.Warn("analysis failed",
			"kind", req.Kind.String(),
			"error", err,
		)
		c.notifier.Notify("Analysis failed: " + err.Error())
		return nil, err
	}

	c.logger.Debug("analysis completed",
		"kind", req.Kind.String(),
		"content", req.Content(),
		"risk", result.RiskLevel.String(),
	)
	if result.ExtractedText != "" {
		c.logger.Debug("screenshot text extracted",
			"file", req.Filename,
			"text", result.ExtractedText,
		)
	}
	c.notifier.Notify(report.FormatResult(result))

	c.record(ctx, req, result)

	if err := c.Refresh(ctx); err != nil {
		c.logger.Debug("post-submit refresh incomplete", "error", err)
	}

	return result, nil
}

// inspect warns about identifying metadata. It never blocks the upload.
func (c *Controller) inspect(req model.AnalysisRequest) {
	if c.inspector == nil {
		return
	}

	findings, err := c.inspector.Inspect(req.Image)
	if err != nil {
		c.logger.Debug("metadata inspection failed", "file", req.Filename, "error", err)
		return
	}

	for _, f := range findings {
		c.logger.Info("identifying metadata found",
			"file", req.Filename,
			"category", string(f.Category),
			"tag", f.Tag,
		)
	}

	if summary := preflight.Summarize(findings); summary != "" {
		c.notifier.Notify(summary)
	}
}

// record journals a successful submission. Failures are logged only.
func (c *Controller) record(ctx context.Context, req model.AnalysisRequest, result *model.AnalysisResult) {
	if c.recorder == nil {
		return
	}

	submission := model.NewSubmission(req, result, c.now())
	if err := c.recorder.RecordSubmission(ctx, submission); err != nil {
		c.logger.Warn("failed to journal submission", "error", err)
	}
}

// Refresh runs one history and one stats refresh concurrently and waits for
// both. A failure in one does not cancel the other; the first error is
// returned.
func (c *Controller) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.RefreshHistory(ctx) })
	g.Go(func() error { return c.RefreshStats(ctx) })
	return g.Wait()
}

// RefreshHistory fetches the history and renders it into the history region.
// On failure the region keeps its content and the error is returned.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	seq := c.historySeq.begin()

	history, err := c.backend.History(ctx)
	if err != nil {
		c.logger.Warn("history refresh failed", "error", err)
		return fmt.Errorf("refresh history: %w", err)
	}

	text := report.FormatHistory(history)
	if !c.historySeq.apply(seq, func() { c.history.Show(text) }) {
		c.logger.Debug("discarded stale history response", "seq", seq)
	}
	return nil
}

// RefreshStats fetches the stats and renders them into the stats region.
// On failure the region keeps its content and the error is returned.
func (c *Controller) RefreshStats(ctx context.Context) error {
	seq := c.statsSeq.begin()

	stats, err := c.backend.Stats(ctx)
	if err != nil {
		c.logger.Warn("stats refresh failed", "error", err)
		return fmt.Errorf("refresh stats: %w", err)
	}

	text := report.FormatStats(stats)
	if !c.statsSeq.apply(seq, func() { c.stats.Show(text) }) {
		c.logger.Debug("discarded stale stats response", "seq", seq)
	}
	return nil
}

// Run refreshes history and stats on every tick until ctx is cancelled.
// Each tick starts both refreshes in their own goroutines without waiting for
// earlier ticks. Run returns once ctx is done and in-flight refreshes have
// finished. Failures are logged only.
func (c *Controller) Run(ctx context.Context) error {
	ticker := c.newTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug("auto refresh started", "interval", c.interval)

	for {
		select {
		case <-ctx.Done():
			c.inflight.Wait()
			c.logger.Debug("auto refresh stopped")
			return nil
		case <-ticker.C():
			c.inflight.Add(2)
			go func() {
				defer c.inflight.Done()
				_ = c.RefreshHistory(ctx) //nolint:errcheck // logged in RefreshHistory
			}()
			go func() {
				defer c.inflight.Done()
				_ = c.RefreshStats(ctx) //nolint:errcheck // logged in RefreshStats
			}()
		}
	}
}
