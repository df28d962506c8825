// Package series reads the labelled readings a gauge grid displays.
//
// A document is a JSON array of items, each with a label and a list of
// (x, y) points. Only the y of the first point is shown:
//
//	[
//	  {"label": "CPU", "data": [[0, 63.5]]},
//	  {"label": "Disk", "data": [[0, 91]]}
//	]
//
// A bare number is accepted in place of the point list as a shorthand for
// [[0, n]].
package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/matzehuels/gaugegrid/pkg/errors"
)

// Point is one (x, y) sample.
type Point [2]float64

// Item is one labelled series.
type Item struct {
	Label string  `json:"label"`
	Data  []Point `json:"data"`
}

// Value returns the gauge reading, the y of the first point. ok is false
// when the series has no points.
func (it Item) Value() (v float64, ok bool) {
	if len(it.Data) == 0 {
		return 0, false
	}
	return it.Data[0][1], true
}

// UnmarshalJSON accepts the point list or a bare number for data.
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		Label string          `json:"label"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	it.Label = raw.Label
	it.Data = nil

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		it.Data = []Point{{0, n}}
		return nil
	}
	return json.Unmarshal(data, &it.Data)
}

// Decode reads a JSON series document.
func Decode(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSeries, err, "decode series")
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadFile reads a JSON series document from path.
func ReadFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "series %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open series: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate rejects readings that cannot be placed on a dial.
func Validate(items []Item) error {
	for i, it := range items {
		v, ok := it.Value()
		if ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return errors.New(errors.ErrCodeInvalidSeries, "series %d (%q): reading is not finite", i, it.Label)
		}
	}
	return nil
}
