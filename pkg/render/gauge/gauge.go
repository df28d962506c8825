package gauge

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/observability"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/arcs"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/labels"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/layout"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger passes report to. Passes whose configuration
// sets debug log their geometry at debug level.
func WithLogger(l *log.Logger) Option { return func(c *Chart) { c.logger = l } }

// Chart draws gauge grids onto one surface and text host. It is not safe
// for concurrent use; passes on one Chart run one at a time.
type Chart struct {
	surface  canvas.Surface
	registry *labels.Registry
	logger   *log.Logger
}

// New returns a Chart drawing onto surface and host.
func New(surface canvas.Surface, host canvas.TextHost, opts ...Option) *Chart {
	c := &Chart{
		surface:  surface,
		registry: labels.NewRegistry(host),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Result describes a completed pass.
type Result struct {
	// Config is the pass's resolved configuration: thresholds sorted and no
	// automatic fields left.
	Config config.Config
	Layout layout.Layout
	Cells  []layout.CellLayout
}

// Draw runs one render pass over items. cfg is not modified. A reading
// that is NaN or infinite fails the pass with INVALID_SERIES before
// anything is drawn.
//
// With no items, only the canvas background is drawn and every text
// element is removed.
func (c *Chart) Draw(cfg config.Config, items []series.Item) (*Result, error) {
	return c.DrawContext(context.Background(), cfg, items)
}

// DrawContext is like [Chart.Draw] and reports layout timing to the
// registered pipeline hooks under ctx.
func (c *Chart) DrawContext(ctx context.Context, cfg config.Config, items []series.Item) (*Result, error) {
	w, h := c.registry.Host().Size()
	if w <= 0 || h <= 0 {
		return nil, errors.Layout("canvas must be positive, got %vx%v", w, h)
	}
	cfg, err := cfg.Prepare()
	if err != nil {
		return nil, err
	}
	if err := series.Validate(items); err != nil {
		return nil, err
	}
	logger := c.passLogger(cfg.Debug)

	if len(items) == 0 {
		l := layout.Layout{CanvasWidth: w, CanvasHeight: h}
		arcs.New(c.surface, &cfg, l).Background()
		c.registry.Begin()
		c.registry.End()
		logger.Debug("empty pass", "canvas", sizeString(w, h))
		return &Result{Config: cfg, Layout: l}, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(items))
	l, err := layout.Compute(w, h, len(items), &cfg)
	hooks.OnLayoutComplete(ctx, l.Columns, l.Rows, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Debug("layout",
		"canvas", sizeString(w, h),
		"grid", sizeString(float64(l.Columns), float64(l.Rows)),
		"cell", sizeString(l.CellWidth, l.CellHeight),
		"radius", l.Radius,
		"width", l.Width)

	ar := arcs.New(c.surface, &cfg, l)
	lr := labels.New(c.registry, &cfg, l)
	res := &Result{Config: cfg, Layout: l, Cells: l.Cells(&cfg, len(items))}

	c.registry.Begin()
	ar.Background()
	for i, it := range items {
		cell := res.Cells[i]
		c.drawCell(ar, lr, &cfg, cell, it)
		logger.Debug("cell", "index", i, "label", it.Label, "cx", cell.CX, "cy", cell.CY)
	}
	removed := c.registry.End()
	if removed > 0 {
		logger.Debug("removed stale text", "count", removed)
	}
	return res, nil
}

func (c *Chart) drawCell(ar *arcs.Renderer, lr *labels.Renderer, cfg *config.Config, cell layout.CellLayout, it series.Item) {
	ar.CellBackground(cell)
	ar.Frame(cell)
	if v, ok := it.Value(); ok {
		ar.Value(cell, v)
	}
	if cfg.Threshold.Show {
		ar.ThresholdBand(cell)
	}
	if cfg.Threshold.Label.Show {
		lr.ThresholdValues(cell)
	}
	if cfg.Value.Show {
		lr.Value(cell, it)
	}
	if cfg.Label.Show {
		lr.Label(cell, it)
	}
}

func (c *Chart) passLogger(debug bool) *log.Logger {
	l := c.logger.With("pass", uuid.NewString()[:8])
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Render draws one pass onto a fresh Chart. Use a long-lived [Chart] when
// the same host is redrawn.
func Render(surface canvas.Surface, host canvas.TextHost, cfg config.Config, items []series.Item, opts ...Option) (*Result, error) {
	return New(surface, host, opts...).Draw(cfg, items)
}

func sizeString(w, h float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "x" + strconv.FormatFloat(h, 'f', -1, 64)
}
