package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gaugegrid/pkg/cache"
	"github.com/matzehuels/gaugegrid/pkg/observability"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts and returns every requested format, from the
// cache when all of them are present and freshly rendered otherwise.
// Configs with formatter funcs never touch the cache.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	inputHash, err := opts.InputHash()
	if err != nil {
		return nil, err
	}
	result = &Result{
		InputHash: inputHash,
		Stats:     Stats{SeriesCount: len(opts.Series)},
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	cacheable := opts.Cacheable()
	if !cacheable {
		r.Logger.Debug("cache bypassed", "reason", "config has formatter funcs")
	}
	if !opts.Refresh && cacheable {
		if artifacts, ok := r.cached(ctx, inputHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheHit = true
			result.Stats.RenderTime = time.Since(start)
			result.Stats.Bytes = totalBytes(artifacts)
			r.Logger.Debug("artifacts from cache", "hash", inputHash[:12], "formats", opts.Formats)
			return result, nil
		}
	}

	artifacts, pass, err := r.renderAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	if cacheable {
		r.store(ctx, inputHash, opts, artifacts)
	}

	result.Artifacts = artifacts
	result.Pass = pass
	result.Stats.RenderTime = time.Since(start)
	result.Stats.Bytes = totalBytes(artifacts)
	r.Logger.Info("rendered outputs",
		"series", len(opts.Series),
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// cached returns every requested artifact, or false if any is missing.
func (r *Runner) cached(ctx context.Context, inputHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
			return nil, false
		}
		if !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, inputHash string, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
}

// renderAll renders each format on its own goroutine. The first failure
// cancels the rest.
func (r *Runner) renderAll(ctx context.Context, opts Options) (map[string][]byte, *gauge.Result, error) {
	data := make([][]byte, len(opts.Formats))
	var (
		mu   sync.Mutex
		pass *gauge.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		i, format := i, format
		g.Go(func() error {
			out, res, err := Render(gctx, opts, format)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			data[i] = out
			mu.Lock()
			if pass == nil {
				pass = res
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for i, format := range opts.Formats {
		artifacts[format] = data[i]
	}
	return artifacts, pass, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func totalBytes(artifacts map[string][]byte) int {
	n := 0
	for _, b := range artifacts {
		n += len(b)
	}
	return n
}
