// Package pkg provides the libraries behind gaugegrid, a renderer for grids
// of circular gauges.
//
// # Overview
//
// A grid shows one dial per labelled reading. Each dial has a coloured value
// arc, an optional threshold band and text for the label, the reading and
// the threshold steps. The pkg directory is organized into four areas:
//
//  1. [render/gauge] - The render pass and its parts (layout, mapping, arcs, labels)
//  2. [render/gauge/sink] - Output formats (SVG, PNG, PDF, JSON)
//  3. [pipeline] - Validation, caching and concurrent rendering for CLI and server
//  4. [cache], [server], [observability] - Infrastructure
//
// # Architecture
//
// The data flow of one render:
//
//	series.json + gauges.toml
//	         ↓
//	    [series], [render/gauge/config] (decode, overlay defaults, validate)
//	         ↓
//	    [render/gauge/layout] (grid, cell sizes, automatic fields)
//	         ↓
//	    [render/gauge] (per-cell arcs and text onto a canvas.Surface)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
//	    "github.com/matzehuels/gaugegrid/pkg/render/gauge/sink"
//	    "github.com/matzehuels/gaugegrid/pkg/series"
//	)
//
//	items, _ := series.ReadFile("series.json")
//	cfg, _ := config.Load("gauges.toml")
//	svg, _, err := sink.RenderSVG(context.Background(), 800, 400, cfg, items)
//
// For caching and multiple formats at once, use [pipeline.Runner].
package pkg
