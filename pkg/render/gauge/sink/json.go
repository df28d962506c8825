package sink

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/gaugegrid/pkg/render/gauge"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/canvas"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/layout"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/mapping"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	gaugeOpts []gauge.Option
	config    bool
	texts     bool
}

// WithJSONGaugeOptions passes options through to the render pass.
func WithJSONGaugeOptions(opts ...gauge.Option) JSONOption {
	return func(r *jsonRenderer) { r.gaugeOpts = opts }
}

// WithJSONConfig includes the pass's resolved configuration, with every
// automatic field replaced by its computed value.
func WithJSONConfig() JSONOption { return func(r *jsonRenderer) { r.config = true } }

// WithJSONTexts includes every placed text element with its measured box.
func WithJSONTexts() JSONOption { return func(r *jsonRenderer) { r.texts = true } }

type jsonOutput struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Layout layout.Layout  `json:"layout"`
	Cells  []jsonCell     `json:"cells"`
	Texts  []jsonText     `json:"texts,omitempty"`
	Config *config.Config `json:"config,omitempty"`
}

type jsonCell struct {
	Index      int      `json:"index"`
	Label      string   `json:"label"`
	Value      *float64 `json:"value,omitempty"`
	Angle      *float64 `json:"angle,omitempty"`
	Color      string   `json:"color,omitempty"`
	Col        int      `json:"col"`
	Row        int      `json:"row"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	OffsetY    float64  `json:"offset_y"`
	CellWidth  float64  `json:"cell_width"`
	CellHeight float64  `json:"cell_height"`
	CX         float64  `json:"cx"`
	CY         float64  `json:"cy"`
}

type jsonText struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color,omitempty"`
}

// RenderJSON runs a pass without drawing and exports the computed geometry
// as a pretty-printed JSON document: the grid layout, one entry per cell
// with its reading, dial angle and threshold colour, and optionally the
// placed text and the resolved configuration.
func RenderJSON(ctx context.Context, width, height float64, cfg config.Config, items []series.Item, opts ...JSONOption) ([]byte, *gauge.Result, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var rec canvas.Recorder
	res, texts, err := draw(ctx, &rec, width, height, cfg, items, r.gaugeOpts)
	if err != nil {
		return nil, nil, err
	}

	out := jsonOutput{
		Width:  width,
		Height: height,
		Layout: res.Layout,
		Cells:  buildJSONCells(res, items),
	}
	if r.texts {
		out.Texts = buildJSONTexts(texts)
	}
	if r.config {
		out.Config = &res.Config
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return data, res, nil
}

func buildJSONCells(res *gauge.Result, items []series.Item) []jsonCell {
	cells := make([]jsonCell, 0, len(res.Cells))
	for i, c := range res.Cells {
		jc := jsonCell{
			Index:      c.Index,
			Label:      items[i].Label,
			Col:        c.Col,
			Row:        c.Row,
			X:          c.X,
			Y:          c.Y,
			OffsetY:    c.OffsetY,
			CellWidth:  c.CellWidth,
			CellHeight: c.CellHeight,
			CX:         c.CX,
			CY:         c.CY,
		}
		if v, ok := items[i].Value(); ok {
			angle := mapping.Angle(&res.Config, v)
			jc.Value = &v
			jc.Angle = &angle
			jc.Color = mapping.Color(&res.Config, v)
		}
		cells = append(cells, jc)
	}
	return cells
}

func buildJSONTexts(texts []textBox) []jsonText {
	out := make([]jsonText, len(texts))
	for i, t := range texts {
		out[i] = jsonText{
			Text:     t.Text,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			Height:   t.H,
			Rotation: t.Rotation,
			FontSize: t.Style.FontSize,
			Color:    t.Style.Color,
		}
	}
	return out
}
