// Package fonts provides the embedded fonts used to measure and draw gauge
// text.
//
// The Go font family (regular and mono) ships inside golang.org/x/image, so
// text metrics are identical on every machine and match what the raster
// sink draws. The SVG sink embeds the same font data as base64 so browsers
// lay the text out with the metrics it was measured with.
package fonts

import (
	"encoding/base64"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Embedded font families.
const (
	FamilyRegular = "Go"
	FamilyMono    = "Go Mono"
)

// FallbackFontFamily is appended to CSS font-family lists.
const FallbackFontFamily = "sans-serif"

var (
	parseOnce sync.Once
	regular   *truetype.Font
	mono      *truetype.Font
	parseErr  error
)

func parse() {
	regular, parseErr = truetype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	mono, parseErr = truetype.Parse(gomono.TTF)
}

// Resolve maps a CSS font-family list onto an embedded family: anything
// naming a monospace font resolves to [FamilyMono], the rest to
// [FamilyRegular].
func Resolve(family string) string {
	f := strings.ToLower(family)
	if strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "consol") {
		return FamilyMono
	}
	return FamilyRegular
}

// TTF returns the font data of the family family resolves to.
func TTF(family string) []byte {
	if Resolve(family) == FamilyMono {
		return gomono.TTF
	}
	return goregular.TTF
}

func parsed(family string) (*truetype.Font, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	if Resolve(family) == FamilyMono {
		return mono, nil
	}
	return regular, nil
}

// NewFace returns a face of the given pixel size. Faces cache glyphs and
// are not safe for concurrent use; each caller gets its own.
func NewFace(family string, size float64) (font.Face, error) {
	f, err := parsed(family)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}), nil
}

type faceKey struct {
	family string
	size   float64
}

var (
	measureMu sync.Mutex
	faces     = map[faceKey]font.Face{}
)

// Measure returns the advance width of text and the line height of the
// face, in pixels.
func Measure(text, family string, size float64) (width, height float64) {
	if size <= 0 {
		return 0, 0
	}
	measureMu.Lock()
	defer measureMu.Unlock()

	face := cachedFace(family, size)
	if face == nil {
		return 0.6 * size * float64(len([]rune(text))), size
	}
	m := face.Metrics()
	height = float64(m.Ascent+m.Descent) / 64
	width = float64(font.MeasureString(face, text)) / 64
	return width, height
}

// Ascent returns the distance from the top of a line to its baseline, in
// pixels.
func Ascent(family string, size float64) float64 {
	if size <= 0 {
		return 0
	}
	measureMu.Lock()
	defer measureMu.Unlock()

	face := cachedFace(family, size)
	if face == nil {
		return 0.8 * size
	}
	return float64(face.Metrics().Ascent) / 64
}

// cachedFace returns the shared measuring face, or nil when the font data
// cannot be parsed. measureMu must be held.
func cachedFace(family string, size float64) font.Face {
	key := faceKey{Resolve(family), size}
	if face, ok := faces[key]; ok {
		return face
	}
	face, err := NewFace(family, size)
	if err != nil {
		return nil
	}
	faces[key] = face
	return face
}

var (
	b64Mu sync.Mutex
	b64   = map[string]string{}
)

// Base64 returns the family's font data base64-encoded. The result is
// cached after first computation.
func Base64(family string) string {
	name := Resolve(family)
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[name]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(TTF(name))
	b64[name] = s
	return s
}

// CSSFamily returns the font-family list used in SVG output for family.
func CSSFamily(family string) string {
	return "'" + Resolve(family) + "', " + FallbackFontFamily
}
