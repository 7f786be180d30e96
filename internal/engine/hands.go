package engine

import (
	"image/color"
	"sort"

	"github.com/tartampluch/go-dualclock/internal/config"
)

// HandType identifies one of the rotating indicators.
type HandType int

const (
	HandPrimaryHour HandType = iota
	HandSecondaryHour
	HandMinute
	HandSecond
)

var handNames = map[HandType]string{
	HandPrimaryHour:   "primary_hour",
	HandSecondaryHour: "secondary_hour",
	HandMinute:        "minute",
	HandSecond:        "second",
}

func (h HandType) String() string {
	if n, ok := handNames[h]; ok {
		return n
	}
	return "unknown"
}

// HandMode tells the renderer how a hand is drawn.
type HandMode int

const (
	// HandModeImage hands are horizontal graphic strips rotated around PivotX.
	HandModeImage HandMode = iota
	// HandModeLine hands are plain segments anchored at the dial centre.
	HandModeLine
)

// HandSpec is the static visual metadata of a hand.
type HandSpec struct {
	Length    float64 // fraction of the dial radius, measured from the pivot
	Thickness float64 // fraction of the dial radius
	ZIndex    int     // higher is drawn on top
	PivotX    float64 // fraction of the asset width where the round base sits
	Mode      HandMode
	Asset     string // embedded asset path, image hands only
	Color     color.NRGBA
}

// HandSpecs is the lookup table of every hand. Adding a hand is a data change.
var HandSpecs = map[HandType]HandSpec{
	HandPrimaryHour: {
		Length:    0.55,
		Thickness: 0.09,
		ZIndex:    1,
		PivotX:    0.1,
		Mode:      HandModeImage,
		Asset:     config.AssetHourPrimary,
		Color:     color.NRGBA{R: 0x1f, G: 0x3a, B: 0x93, A: 0xff},
	},
	HandSecondaryHour: {
		Length:    0.55,
		Thickness: 0.09,
		ZIndex:    2,
		PivotX:    0.1,
		Mode:      HandModeImage,
		Asset:     config.AssetHourSecondary,
		Color:     color.NRGBA{R: 0x0b, G: 0x7a, B: 0x4b, A: 0xff},
	},
	HandMinute: {
		Length:    0.8,
		Thickness: 0.06,
		ZIndex:    3,
		PivotX:    0.075,
		Mode:      HandModeImage,
		Asset:     config.AssetMinute,
		Color:     color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
	},
	HandSecond: {
		Length:    0.88,
		Thickness: 0.015,
		ZIndex:    4,
		Mode:      HandModeLine,
		Color:     color.NRGBA{R: 0xd0, G: 0x1c, B: 0x1c, A: 0xff},
	},
}

// PivotColor is the colour of the dot drawn above every hand.
var PivotColor = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}

// StackOrder returns the hand types from bottom to top.
func StackOrder() []HandType {
	order := make([]HandType, 0, len(HandSpecs))
	for h := range HandSpecs {
		order = append(order, h)
	}
	sort.Slice(order, func(i, j int) bool {
		return HandSpecs[order[i]].ZIndex < HandSpecs[order[j]].ZIndex
	})
	return order
}
