package render

import (
	"image/color"
	"math"

	"github.com/vanderheijden86/cortex/pkg/model"
	"github.com/vanderheijden86/cortex/pkg/region"

	"gonum.org/v1/gonum/spatial/r2"
)

// distFloor clamps the normalized distance to an anchor so the reciprocal
// weight cannot blow up when a node sits on top of an anchor.
const distFloor = 0.08

// blendKeep is the share of the proximity-computed color kept in the
// final mix; the rest is the theme gray, keeping unclassified nodes
// visually subdued relative to explicitly classified ones.
const blendKeep = 0.45

// BaseColor is the discrete color assignment, checked in order: the focal
// node gets the accent color; a node with an explicit region its region
// color; a visited or tag node the secondary color; everything else the
// neutral gray. The renderer overrides this per frame with ProximityColor
// for unclassified nodes, including tag nodes without a resolved region.
func BaseColor(n model.Node, focal int, visited func(string) bool, th Theme) color.RGBA {
	switch {
	case n.Idx == focal:
		return th.Accent
	case n.Region != "":
		return region.ForName(n.Region).Color
	case (visited != nil && visited(n.ID)) || n.IsTag():
		return th.Secondary
	default:
		return th.Gray
	}
}

// ProximityColor blends the named region colors by inverse distance from
// pos (centered layout coords) to each region's fractional anchor, then
// desaturates toward the theme gray. It is a pure function of pos, the
// fixed anchor table and the theme: identical inputs always yield the
// identical color, and it is continuous in pos.
func ProximityColor(pos r2.Vec, width, height float64, th Theme) color.RGBA {
	f := r2.Vec{
		X: (pos.X + width/2) / width,
		Y: (pos.Y + height/2) / height,
	}
	anchors := region.Named()
	weights := make([]float64, len(anchors))
	var total float64
	for i, a := range anchors {
		dist := math.Max(r2.Norm(r2.Sub(f, a.Pos)), distFloor)
		weights[i] = 1 / dist
		total += weights[i]
	}

	var lr, lg, lb float64
	for i, a := range anchors {
		w := weights[i] / total
		lr += w * srgbToLinear(a.Color.R)
		lg += w * srgbToLinear(a.Color.G)
		lb += w * srgbToLinear(a.Color.B)
	}

	gr := srgbToLinear(th.Gray.R)
	gg := srgbToLinear(th.Gray.G)
	gb := srgbToLinear(th.Gray.B)
	lr = blendKeep*lr + (1-blendKeep)*gr
	lg = blendKeep*lg + (1-blendKeep)*gg
	lb = blendKeep*lb + (1-blendKeep)*gb

	return color.RGBA{
		R: linearToSRGB(lr),
		G: linearToSRGB(lg),
		B: linearToSRGB(lb),
		A: 0xff,
	}
}

func srgbToLinear(c uint8) float64 {
	return math.Pow(float64(c)/255, 2.2)
}

func linearToSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(math.Pow(v, 1/2.2) * 255))
}

// withAlpha scales the color's alpha by opacity in [0,1].
func withAlpha(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}
