package ui

import (
	"image"
	"log/slog"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dualclock/internal/config"
	"github.com/tartampluch/go-dualclock/internal/engine"
	"github.com/tartampluch/go-dualclock/internal/face"
)

// ClockFace is the analog dial widget. Every hand rotates around the centre
// of the largest square that fits the widget.
type ClockFace struct {
	widget.BaseWidget

	compositor *face.Compositor

	mu     sync.RWMutex
	angles engine.Angles
}

// NewClockFace creates a face drawing its hands with the given compositor.
func NewClockFace(compositor *face.Compositor) *ClockFace {
	f := &ClockFace{compositor: compositor}
	f.ExtendBaseWidget(f)
	return f
}

// SetAngles stores the hand angles and redraws the face.
func (f *ClockFace) SetAngles(a engine.Angles) {
	f.mu.Lock()
	f.angles = a
	f.mu.Unlock()
	f.Refresh()
}

// Angles returns the angles currently displayed.
func (f *ClockFace) Angles() engine.Angles {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.angles
}

// CreateRenderer implements fyne.Widget.
func (f *ClockFace) CreateRenderer() fyne.WidgetRenderer {
	dial := canvas.NewImageFromResource(fyne.NewStaticResource(config.AssetDial, f.compositor.Asset(config.AssetDial)))
	dial.FillMode = canvas.ImageFillContain

	r := &clockFaceRenderer{
		face:  f,
		dial:  dial,
		hands: make(map[engine.HandType]fyne.CanvasObject),
		pivot: canvas.NewCircle(engine.PivotColor),
	}

	r.objects = append(r.objects, dial)
	for _, h := range engine.StackOrder() {
		spec := engine.HandSpecs[h]
		var obj fyne.CanvasObject
		switch spec.Mode {
		case engine.HandModeLine:
			obj = canvas.NewLine(spec.Color)
		default:
			obj = canvas.NewRaster(f.handGenerator(h))
		}
		r.hands[h] = obj
		r.order = append(r.order, h)
		r.objects = append(r.objects, obj)
	}
	r.objects = append(r.objects, r.pivot)

	return r
}

// handGenerator returns a raster callback drawing hand h at the current angle.
func (f *ClockFace) handGenerator(h engine.HandType) func(w, ht int) image.Image {
	return func(w, ht int) image.Image {
		angle, ok := f.Angles().Of(h)
		if !ok {
			slog.Error(config.ErrUnknownHand,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyHand, h.String(),
			)
			return image.NewRGBA(image.Rect(0, 0, w, ht))
		}

		img, err := f.compositor.HandLayer(h, w, ht, angle)
		if err != nil {
			slog.Error(config.ErrHandRender,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyHand, h.String(),
				config.LogKeyError, err,
			)
			return image.NewRGBA(image.Rect(0, 0, w, ht))
		}
		return img
	}
}

type clockFaceRenderer struct {
	face    *ClockFace
	dial    *canvas.Image
	hands   map[engine.HandType]fyne.CanvasObject
	order   []engine.HandType
	pivot   *canvas.Circle
	objects []fyne.CanvasObject
}

// square returns the origin and side of the largest centred square in size.
func square(size fyne.Size) (fyne.Position, float32) {
	side := min(size.Width, size.Height)
	return fyne.NewPos((size.Width-side)/2, (size.Height-side)/2), side
}

func (r *clockFaceRenderer) Layout(size fyne.Size) {
	origin, side := square(size)
	radius := side / 2
	centre := origin.AddXY(radius, radius)
	angles := r.face.Angles().ByHand()

	r.dial.Move(origin)
	r.dial.Resize(fyne.NewSquareSize(side))

	for _, h := range r.order {
		spec := engine.HandSpecs[h]
		switch obj := r.hands[h].(type) {
		case *canvas.Line:
			length := float64(radius) * spec.Length
			sin, cos := math.Sincos(angles[h] * math.Pi / 180)
			obj.StrokeWidth = radius * float32(spec.Thickness)
			obj.Position1 = centre
			obj.Position2 = centre.AddXY(float32(length*cos), float32(length*sin))
		default:
			obj.Move(origin)
			obj.Resize(fyne.NewSquareSize(side))
		}
	}

	dot := side * config.PivotDotRatio
	r.pivot.Resize(fyne.NewSquareSize(dot))
	r.pivot.Move(centre.SubtractXY(dot/2, dot/2))
}

func (r *clockFaceRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(config.MinFaceSize)
}

func (r *clockFaceRenderer) Refresh() {
	r.Layout(r.face.Size())
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *clockFaceRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *clockFaceRenderer) Destroy() {}
