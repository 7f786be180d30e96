// Package face composes the dual clock into raster images.
//
// Image hands are stored as horizontal SVG strips pointing toward 3 o'clock.
// Each strip is rasterized at the requested size and rotated around its pivot
// (the centre of its round base) so that the pivot lands on the dial centre.
package face

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"math"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/tartampluch/go-dualclock/internal/config"
	"github.com/tartampluch/go-dualclock/internal/engine"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Assets holds the dial and hand graphics, addressed by their config.Asset* path.
//
//go:embed assets/*.svg
var Assets embed.FS

// Compositor renders the dial and hands. It is safe for concurrent use.
type Compositor struct {
	mu    sync.Mutex
	dial  *oksvg.SvgIcon
	hands map[engine.HandType]*oksvg.SvgIcon
	specs map[engine.HandType]engine.HandSpec
	raw   map[string][]byte
}

// NewCompositor parses every asset referenced by engine.HandSpecs from fsys.
func NewCompositor(fsys fs.FS) (*Compositor, error) {
	c := &Compositor{
		hands: make(map[engine.HandType]*oksvg.SvgIcon),
		specs: engine.HandSpecs,
		raw:   make(map[string][]byte),
	}

	dial, err := c.load(fsys, config.AssetDial)
	if err != nil {
		return nil, err
	}
	c.dial = dial

	for h, spec := range c.specs {
		if spec.Mode != engine.HandModeImage {
			continue
		}
		if spec.Asset == "" {
			return nil, fmt.Errorf("%s: %s", config.ErrAssetMissing, h)
		}
		icon, err := c.load(fsys, spec.Asset)
		if err != nil {
			return nil, err
		}
		c.hands[h] = icon
	}

	return c, nil
}

// NewDefaultCompositor uses the embedded assets.
func NewDefaultCompositor() (*Compositor, error) {
	return NewCompositor(Assets)
}

func (c *Compositor) load(fsys fs.FS, path string) (*oksvg.SvgIcon, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrAssetRead, path, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrAssetDecode, path, err)
	}
	c.raw[path] = data

	slog.Debug(config.MsgAssetLoaded,
		config.LogKeyComponent, config.CompFace,
		config.LogKeyFile, path,
	)
	return icon, nil
}

// Asset returns the raw bytes of a loaded asset, for callers that draw it
// with their own SVG renderer.
func (c *Compositor) Asset(path string) []byte {
	return c.raw[path]
}

// Render composes dial, hands (bottom to top) and pivot dot into a square image.
func (c *Compositor) Render(side int, angles engine.Angles) (*image.RGBA, error) {
	if side <= 0 {
		return nil, errors.New(config.ErrFaceSize)
	}

	dst := c.Dial(side, side)
	for _, h := range engine.StackOrder() {
		angle, ok := angles.Of(h)
		if !ok {
			return nil, fmt.Errorf("%s: %s", config.ErrUnknownHand, h)
		}
		layer, err := c.HandLayer(h, side, side, angle)
		if err != nil {
			return nil, err
		}
		draw.Draw(dst, dst.Bounds(), layer, image.Point{}, draw.Over)
	}
	c.drawPivot(dst)

	return dst, nil
}

// Dial rasterizes the dial face into a w×h image, centred in a square.
func (c *Compositor) Dial(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	side := min(w, h)
	if side <= 0 {
		return dst
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	x := float64(w-side) / 2
	y := float64(h-side) / 2
	c.dial.SetTarget(x, y, float64(side), float64(side))
	rasterize(c.dial, dst)
	return dst
}

// HandLayer draws a single hand, rotated by angle degrees, on a transparent
// w×h layer whose centre is the dial pivot.
func (c *Compositor) HandLayer(h engine.HandType, w, ht int, angle float64) (*image.RGBA, error) {
	spec, ok := c.specs[h]
	if !ok {
		return nil, fmt.Errorf("%s: %s", config.ErrAssetMissing, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, ht))
	radius := float64(min(w, ht)) / 2
	if radius <= 0 {
		return dst, nil
	}

	strip, pivot, err := c.strip(h, spec, radius)
	if err != nil {
		return nil, err
	}

	centre := f64.Vec2{float64(w) / 2, float64(ht) / 2}
	draw.BiLinear.Transform(dst, pivotTransform(pivot, centre, angle), strip, strip.Bounds(), draw.Over, nil)
	return dst, nil
}

// strip returns the unrotated hand and the pivot location inside it.
func (c *Compositor) strip(h engine.HandType, spec engine.HandSpec, radius float64) (*image.RGBA, f64.Vec2, error) {
	height := max(1, int(math.Round(spec.Thickness*radius)))

	switch spec.Mode {
	case engine.HandModeLine:
		width := max(1, int(math.Round(spec.Length*radius)))
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(img, img.Bounds(), image.NewUniform(spec.Color), image.Point{}, draw.Src)
		return img, f64.Vec2{0, float64(height) / 2}, nil

	default:
		icon, ok := c.hands[h]
		if !ok {
			return nil, f64.Vec2{}, fmt.Errorf("%s: %s", config.ErrAssetMissing, h)
		}
		// The visible length runs from the pivot to the tip.
		width := max(1, int(math.Round(spec.Length*radius/(1-spec.PivotX))))
		img := image.NewRGBA(image.Rect(0, 0, width, height))

		c.mu.Lock()
		icon.SetTarget(0, 0, float64(width), float64(height))
		rasterize(icon, img)
		c.mu.Unlock()

		return img, f64.Vec2{spec.PivotX * float64(width), float64(height) / 2}, nil
	}
}

func (c *Compositor) drawPivot(dst *image.RGBA) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	r := float64(min(w, h)) / 2 * config.PivotDotRatio / 2

	scanner := rasterx.NewScannerGV(w, h, dst, b)
	filler := rasterx.NewFiller(w, h, scanner)
	rasterx.AddCircle(float64(w)/2, float64(h)/2, r, filler)
	filler.SetColor(color.Color(engine.PivotColor))
	filler.Draw()
}

// pivotTransform maps the source pivot onto centre after rotating the source
// by angle degrees clockwise (screen coordinates, y down).
func pivotTransform(pivot, centre f64.Vec2, angle float64) f64.Aff3 {
	sin, cos := math.Sincos(engine.NormalizeDegrees(angle) * math.Pi / 180)
	return f64.Aff3{
		cos, -sin, centre[0] - (cos*pivot[0] - sin*pivot[1]),
		sin, cos, centre[1] - (sin*pivot[0] + cos*pivot[1]),
	}
}

func rasterize(icon *oksvg.SvgIcon, dst *image.RGBA) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	icon.Draw(dasher, 1.0)
}
