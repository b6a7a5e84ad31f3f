// Package matrix produces the falling-glyph background as a stream of frames.
package matrix

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// Glyphs is the alphabet drawn by the rain.
	Glyphs = "01アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン"
	// FontSize is the glyph size in pixels; it is also the column width and row height.
	FontSize = 14
	// FadeAlpha is the opacity of the black overlay painted before every frame.
	FadeAlpha = 0.05
	// Color is the glyph fill color.
	Color = "#4a9f8c"

	// MaxDimension caps each side of the surface in pixels.
	MaxDimension = 16384

	resetChance = 0.975
)

var glyphs = []rune(Glyphs)

// Glyph is one character to paint at pixel position X, Y.
type Glyph struct {
	X    int     `json:"x"`
	Y    float64 `json:"y"`
	Char string  `json:"char"`
}

// Frame is one tick of the animation: fade the surface, then paint the glyphs.
type Frame struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	FontSize int       `json:"fontSize"`
	Fade     float64   `json:"fade"`
	Color    string    `json:"color"`
	Glyphs   []Glyph   `json:"glyphs"`
	At       time.Time `json:"at"`
}

// Rain tracks one drop per column. It is safe for concurrent use.
type Rain struct {
	mu     sync.Mutex
	rng    *rand.Rand
	width  int
	height int
	drops  []float64
	now    func() time.Time
}

// NewRain sizes the rain to width x height. A nil rng uses a randomly seeded source.
func NewRain(width, height int, rng *rand.Rand) *Rain {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	r := &Rain{rng: rng, now: time.Now}
	r.resizeLocked(width, height)
	return r
}

// Columns returns the number of drops.
func (r *Rain) Columns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drops)
}

// Size returns the current surface size.
func (r *Rain) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Resize follows a viewport change. Existing columns keep their rows, new
// columns start at a random row and columns past the new width are dropped.
// Each side is clamped to [0, MaxDimension].
func (r *Rain) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizeLocked(width, height)
}

func (r *Rain) resizeLocked(width, height int) {
	width = min(max(width, 0), MaxDimension)
	height = min(max(height, 0), MaxDimension)
	r.width, r.height = width, height

	n := columnsFor(width)
	if n <= len(r.drops) {
		r.drops = r.drops[:n]
		return
	}
	for len(r.drops) < n {
		r.drops = append(r.drops, r.rng.Float64()*float64(height)/FontSize)
	}
}

// Tick draws one glyph per column at its drop, then advances every drop by a
// row. A drop below the bottom edge goes back to the top with a small chance.
func (r *Rain) Tick() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	f := Frame{
		Width:    r.width,
		Height:   r.height,
		FontSize: FontSize,
		Fade:     FadeAlpha,
		Color:    Color,
		Glyphs:   make([]Glyph, len(r.drops)),
		At:       r.now(),
	}
	for i, d := range r.drops {
		f.Glyphs[i] = Glyph{
			X:    i * FontSize,
			Y:    d * FontSize,
			Char: string(glyphs[r.rng.IntN(len(glyphs))]),
		}
		if d*FontSize > float64(r.height) && r.rng.Float64() > resetChance {
			d = 0
		}
		r.drops[i] = d + 1
	}
	return f
}

func columnsFor(width int) int {
	return (width + FontSize - 1) / FontSize
}
