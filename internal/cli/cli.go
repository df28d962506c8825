package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugegrid/pkg/buildinfo"
	"github.com/matzehuels/gaugegrid/pkg/cache"
	"github.com/matzehuels/gaugegrid/pkg/pipeline"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gaugegrid"

	// envRedisURL names the environment variable that selects the Redis
	// artifact cache when --redis is not given.
	envRedisURL = "GAUGEGRID_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // command results and status lines
	Err    io.Writer // progress indicators
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gaugegrid draws grids of circular gauges",
		Long:         `gaugegrid renders labelled readings as a grid of circular gauges with colour-coded threshold bands, to SVG, PNG, PDF or a JSON layout description.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Instrument(cc), nil, c.Logger), nil
}

// newCache picks the artifact cache: none, Redis when a URL is configured,
// otherwise the per-user file cache. A file cache that cannot be created
// disables caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL == "" {
		redisURL = os.Getenv(envRedisURL)
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL, Prefix: appName + ":"})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", redactURL(redisURL))
		return rc, nil
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// redactURL hides the password of a redis URL for logging.
func redactURL(s string) string {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return s
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return s
	}
	if user, _, hasPass := strings.Cut(userinfo, ":"); hasPass {
		return scheme + "://" + user + ":***@" + host
	}
	return s
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gaugegrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Inputs
// =============================================================================

// inputFlags are the flags every command that reads a series file shares.
type inputFlags struct {
	config string
	width  float64
	height float64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "gauge config file (TOML); defaults apply when omitted")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
}

// load reads the series file and the optional config into pipeline
// options.
func (f *inputFlags) load(seriesPath string) (pipeline.Options, error) {
	items, err := series.ReadFile(seriesPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	cfg := config.Default()
	if f.config != "" {
		if cfg, err = config.Load(f.config); err != nil {
			return pipeline.Options{}, err
		}
	}
	return pipeline.Options{
		Config: cfg,
		Series: items,
		Width:  f.width,
		Height: f.height,
	}, nil
}

// openOutput creates path for writing, or returns stdout for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
