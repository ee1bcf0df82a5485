package text

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/displaylist/internal/cache"
)

// ShaperOption configures a Shaper.
type ShaperOption func(*shaperConfig)

type shaperConfig struct {
	language  language.Language
	direction Direction
	capacity  int
}

func defaultShaperConfig() shaperConfig {
	return shaperConfig{
		language:  language.NewLanguage("en"),
		direction: LTR,
		capacity:  cache.DefaultCapacity,
	}
}

// WithLanguage sets the BCP 47 language tag passed to the shaper.
func WithLanguage(tag string) ShaperOption {
	return func(c *shaperConfig) {
		c.language = language.NewLanguage(tag)
	}
}

// WithBaseDirection sets the paragraph direction. The default is LTR.
func WithBaseDirection(d Direction) ShaperOption {
	return func(c *shaperConfig) {
		c.direction = d
	}
}

// WithCacheCapacity sets the per-shard capacity of the blob cache.
func WithCacheCapacity(n int) ShaperOption {
	return func(c *shaperConfig) {
		c.capacity = n
	}
}

// Shaper turns strings into Blobs for a single font.
//
// Shaper is safe for concurrent use. The parsed font.Font is read-only;
// each Shape call creates its own font.Face and borrows a pooled
// HarfbuzzShaper, neither of which may be shared between goroutines.
type Shaper struct {
	font *font.Font
	cfg  shaperConfig

	shapers sync.Pool
	blobs   *cache.Sharded[string, *Blob]
}

// NewShaper parses an OpenType or TrueType font.
func NewShaper(data []byte, opts ...ShaperOption) (*Shaper, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	cfg := defaultShaperConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Shaper{
		font: face.Font,
		cfg:  cfg,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		blobs: cache.NewSharded[string, *Blob](cfg.capacity, cache.StringHasher),
	}, nil
}

// Shape shapes s at the given size in pixels. Results are cached, so
// repeated calls with the same arguments return the same *Blob.
func (s *Shaper) Shape(str string, size float32) (*Blob, error) {
	if !(size > 0) || math.IsInf(float64(size), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	runs, err := SplitRuns(str, s.cfg.direction)
	if err != nil {
		return nil, err
	}
	key := strconv.FormatFloat(float64(size), 'g', -1, 32) + "\x00" + str
	return s.blobs.GetOrCreate(key, func() *Blob {
		return s.shapeRuns([]rune(str), runs, size)
	}), nil
}

// CacheStats reports blob cache counters.
func (s *Shaper) CacheStats() cache.Stats { return s.blobs.Stats() }

// ClearCache drops every cached blob.
func (s *Shaper) ClearCache() { s.blobs.Clear() }

func (s *Shaper) shapeRuns(runes []rune, runs []Run, size float32) *Blob {
	face := font.NewFace(s.font)
	hb := s.shapers.Get().(*shaping.HarfbuzzShaper)
	defer s.shapers.Put(hb)

	var (
		glyphs          []Glyph
		pen             float32
		ascent, descent float32
	)
	for _, run := range runs {
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  run.Start,
			RunEnd:    run.End,
			Direction: run.Direction.shapingDirection(),
			Face:      face,
			Size:      floatToFixed(size),
			Script:    detectScript(runes[run.Start:run.End]),
			Language:  s.cfg.language,
		})
		glyphs, pen = appendGlyphs(glyphs, out, pen, 0)
		ascent = max(ascent, fixedToFloat(out.LineBounds.Ascent))
		descent = min(descent, fixedToFloat(out.LineBounds.Descent))
	}
	return makeBlob(glyphs, pen, ascent, descent)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
