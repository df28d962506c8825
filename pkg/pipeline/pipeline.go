// Package pipeline provides the render pipeline shared by the gaugegrid CLI
// and HTTP service.
//
// This package turns a gauge configuration, a set of series and a canvas
// size into rendered artifacts. By centralizing this logic, the CLI and the
// server validate, cache and render identically.
//
// # Architecture
//
// A run has two stages:
//
//  1. Prepare: validate options, apply defaults and hash the inputs
//  2. Render: produce every requested format (SVG, PNG, PDF, JSON)
//     concurrently, or return them from the cache when all are present
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Config:  cfg,
//	    Series:  items,
//	    Width:   800,
//	    Height:  400,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugegrid/pkg/cache"
	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxCanvasSide bounds each canvas side so a request cannot allocate an
	// arbitrarily large raster.
	MaxCanvasSide = 8192.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Inputs
	Config config.Config `json:"config"`
	Series []series.Item `json:"series"`
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Title   string   `json:"title,omitempty"`
	NoFonts bool     `json:"no_fonts,omitempty"` // Do not embed fonts in SVG/PDF output
	Refresh bool     `json:"refresh,omitempty"`  // Skip cache reads; results are still stored

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the content hash of config, series and canvas size.
	InputHash string

	// Pass describes the computed layout. It is nil when every artifact
	// came from the cache.
	Pass *gauge.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether all artifacts came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	RenderTime  time.Duration
	Bytes       int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateCanvas checks that a canvas size is usable.
func ValidateCanvas(width, height float64) error {
	for _, side := range []float64{width, height} {
		if math.IsNaN(side) || side <= 0 {
			return errors.Layout("canvas must be positive, got %vx%v", width, height)
		}
		if side > MaxCanvasSide {
			return errors.New(errors.ErrCodeInvalidInput, "canvas side %v exceeds %v", side, MaxCanvasSide)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks inputs and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || math.IsNaN(o.Scale) || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %v", o.Scale)
	}
	if err := series.Validate(o.Series); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset sizes, formats, scale and logger.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// InputHash returns the content hash of everything that determines the
// pass's geometry. Formatter funcs are not part of it; see [Options.Cacheable].
func (o *Options) InputHash() (string, error) {
	data, err := json.Marshal(struct {
		Config config.Config `json:"config"`
		Series []series.Item `json:"series"`
		Size   [2]float64    `json:"size"`
	}{o.Config, o.Series, [2]float64{o.Width, o.Height}})
	if err != nil {
		return "", fmt.Errorf("hash inputs: %w", err)
	}
	return cache.Hash(data), nil
}

// Cacheable reports whether artifacts may be read from and written to the
// cache. A config with formatter funcs renders text the hash cannot see.
func (o *Options) Cacheable() bool { return !o.Config.HasFormatters() }

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG, FormatPDF:
		opts.Title = o.Title
		opts.Fonts = !o.NoFonts
	}
	return opts
}
