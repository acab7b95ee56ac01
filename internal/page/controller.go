package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/f3rmion/baitlens/internal/client"
	"github.com/f3rmion/baitlens/internal/render"
	"github.com/f3rmion/baitlens/internal/samples"
)

// ErrBusy is returned when analyze is triggered while a request is in flight.
var ErrBusy = errors.New("analysis already in progress")

// Analyzer performs one analyze request.
type Analyzer interface {
	Analyze(ctx context.Context, text string, embeddings bool) client.Outcome
}

// Submission is the control state captured when a request starts.
type Submission struct {
	Text       string
	Embeddings bool
}

// Controller runs the sample loader and the analyze flow against a Surface.
type Controller struct {
	surface  Surface
	analyzer Analyzer
	logger   *slog.Logger

	busy bool
}

// NewController binds a controller to its surface and analyzer.
func NewController(surface Surface, analyzer Analyzer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		surface:  surface,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	return c.busy
}

// LoadSample replaces the input with the sample text and hides the banner.
func (c *Controller) LoadSample(key samples.Key) {
	c.surface.SetText(samples.Text(key))
	c.surface.HideError()
}

// Begin puts the surface into the busy state and captures the request.
// It returns false, leaving the surface untouched, while another request
// is in flight.
func (c *Controller) Begin() (Submission, bool) {
	if c.busy {
		return Submission{}, false
	}
	c.busy = true

	c.surface.HideError()
	c.surface.SetTrigger(true, LabelBusy)

	sub := Submission{
		Text:       c.surface.Text(),
		Embeddings: c.surface.EmbeddingsEnabled(),
	}
	c.logger.Debug("analyze started", "text_length", len(sub.Text), "embeddings", sub.Embeddings)
	return sub, true
}

// Fetch issues the request for sub. It does not touch the surface, so a
// front end may run it off its event loop.
func (c *Controller) Fetch(ctx context.Context, sub Submission) client.Outcome {
	return c.analyzer.Analyze(ctx, sub.Text, sub.Embeddings)
}

// Finish applies an outcome to the surface and returns the trigger to idle.
func (c *Controller) Finish(out client.Outcome) {
	defer func() {
		c.busy = false
		c.surface.SetTrigger(false, LabelIdle)
	}()

	// Mirrored on both paths so failed requests stay inspectable.
	if out.HasRaw() {
		c.surface.SetRaw(out.Raw)
	}

	if !out.OK() {
		c.fail(out.Message)
		return
	}

	if err := c.renderSafely(out.Response); err != nil {
		c.fail(err.Error())
	}
}

// Analyze runs the whole flow synchronously.
func (c *Controller) Analyze(ctx context.Context) (client.Outcome, error) {
	sub, ok := c.Begin()
	if !ok {
		return client.Outcome{}, ErrBusy
	}

	out := c.Fetch(ctx, sub)
	c.Finish(out)
	return out, nil
}

// RenderResults draws a successful response.
func (c *Controller) RenderResults(resp *analysis.Response) {
	c.surface.ReplaceResults(render.BuildCards(resp))
	c.surface.SetMetaSummary(render.MetaSummary(resp.Meta))
}

func (c *Controller) renderSafely(resp *analysis.Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering results: %v", r)
		}
	}()
	c.RenderResults(resp)
	return nil
}

func (c *Controller) fail(message string) {
	c.logger.Warn("analyze failed", "error", message)

	c.surface.ReplaceResults(nil)
	c.surface.SetMetaSummary(render.FixRequestSummary)
	c.surface.ShowError(message)
}
