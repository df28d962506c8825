package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugegrid/pkg/errors"
)

const seriesJSON = `[
  {"label": "CPU", "data": [[0, 63.5]]},
  {"label": "Memory", "data": 42},
  {"label": "Disk", "data": [[0, 91]]},
  {"label": "Idle"}
]`

const configTOML = `
[layout]
columns = 2

[value]
format = "%.1f"
`

// testCLI returns a CLI writing to buffers and a fresh cache directory.
func testCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")
	var out bytes.Buffer
	return &CLI{
		Logger: newLogger(io.Discard, log.InfoLevel),
		Out:    &out,
		Err:    io.Discard,
	}, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRenderCommand(t *testing.T) {
	c, out := testCLI(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "series.json", seriesJSON)
	cfg := writeFile(t, dir, "gauges.toml", configTOML)
	base := filepath.Join(dir, "grid")

	if err := run(t, c, "render", input, "-c", cfg, "-f", "svg,png,json", "-o", base+".svg", "--scale", "1"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	for _, ext := range []string{"svg", "png", "json"} {
		info, err := os.Stat(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}

	svg, _ := os.ReadFile(base + ".svg")
	if !bytes.Contains(svg, []byte(">63.5<")) {
		t.Error("svg does not use the configured value format")
	}
	if s := out.String(); !strings.Contains(s, "4 gauges") || !strings.Contains(s, "2x2 grid") || !strings.Contains(s, iconFresh) {
		t.Errorf("status output = %q", s)
	}

	out.Reset()
	if err := run(t, c, "render", input, "-c", cfg, "-f", "svg,png,json", "-o", base+".svg", "--scale", "1"); err != nil {
		t.Fatalf("second render error: %v", err)
	}
	if !strings.Contains(out.String(), iconCached) {
		t.Errorf("second render output = %q, want cached", out.String())
	}
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	c, _ := testCLI(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "metrics.json", seriesJSON)

	if err := run(t, c, "render", input, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "metrics.svg")); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "series.json", seriesJSON)
	badCfg := writeFile(t, dir, "bad.toml", "[layout]\ncolumns = 0\n")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad config", []string{"render", input, "-c", badCfg}, errors.ErrCodeInvalidConfig},
		{"missing config", []string{"render", input, "-c", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"degenerate canvas", []string{"render", input, "--width", "8", "--height", "8"}, errors.ErrCodeDegenerateLayout},
		{"stdout with many formats", []string{"render", input, "-f", "svg,json", "-o", "-"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI(t)
			err := run(t, c, tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	c, out := testCLI(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "series.json", seriesJSON)
	cfg := writeFile(t, dir, "gauges.toml", configTOML)

	if err := run(t, c, "layout", input, "-c", cfg, "--width", "600", "--height", "400"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	s := out.String()
	for _, want := range []string{"2 columns x 2 rows", "600 x 400", "CPU", "Memory", "Idle", "red", "Center"} {
		if !strings.Contains(s, want) {
			t.Errorf("layout output missing %q:\n%s", want, s)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	c, out := testCLI(t)
	if err := run(t, c, "config"); err != nil {
		t.Fatalf("config error: %v", err)
	}
	for _, want := range []string{"[layout]", "columns = 3", "[threshold]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config output missing %q", want)
		}
	}

	dir := t.TempDir()
	cfg := writeFile(t, dir, "gauges.toml", configTOML)
	out.Reset()
	if err := run(t, c, "config", "-c", cfg); err != nil {
		t.Fatalf("config -c error: %v", err)
	}
	if !strings.Contains(out.String(), "columns = 2") {
		t.Errorf("merged config output = %q, want columns = 2", out.String())
	}
}

func TestCacheCommands(t *testing.T) {
	c, out := testCLI(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "series.json", seriesJSON)

	if err := run(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	cachePath := strings.TrimSpace(out.String())
	if filepath.Base(cachePath) != "gaugegrid" {
		t.Errorf("cache path = %q", cachePath)
	}

	if err := run(t, c, "render", input, "-f", "svg,json"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	out.Reset()
	if err := run(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := testCLI(t)
	if err := run(t, c, "completion", "bash"); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out.String(), "gaugegrid") {
		t.Error("bash completion does not mention the command")
	}
}

func TestRenderBundledExample(t *testing.T) {
	c, _ := testCLI(t)
	out := filepath.Join(t.TempDir(), "basic.svg")

	err := run(t, c, "render", "../../examples/basic/series.json",
		"-c", "../../examples/basic/gauges.toml", "-o", out, "--no-cache")
	if err != nil {
		t.Fatalf("render example error: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"63.5%", "#e53935", "Disk /var"} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("example svg missing %q", want)
		}
	}
}
