// Package region maps semantic content categories onto named zones of the
// two-lobe silhouette. Each anchor doubles as a physical attraction target
// for the simulation and as a discrete color key for the renderer.
package region

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Hemisphere tags which lobe an anchor belongs to. Left and right anchors
// get a fixed horizontal shift when mapped to screen space; center anchors
// do not.
type Hemisphere int

const (
	Center Hemisphere = iota
	Left
	Right
)

// Anchor is a named semantic zone: a fractional position within the
// silhouette bounding box plus a hemisphere tag and display color.
type Anchor struct {
	Name  string
	Pos   r2.Vec // fractional coordinates, 0..1 in both axes
	Hemi  Hemisphere
	Color color.RGBA
}

// HemisphereShift is the horizontal screen offset applied to left/right
// hemisphere anchors when computing attraction targets.
const HemisphereShift = 24.0

// The four recognized regions plus the default anchor for unclassified
// nodes. Named returns only the real regions; the default is reachable
// through ForName with an unknown name.
var (
	logical = Anchor{
		Name:  "logical",
		Pos:   r2.Vec{X: 0.30, Y: 0.34},
		Hemi:  Left,
		Color: color.RGBA{R: 0x4c, G: 0x8b, B: 0xf5, A: 0xff},
	}
	creative = Anchor{
		Name:  "creative",
		Pos:   r2.Vec{X: 0.70, Y: 0.34},
		Hemi:  Right,
		Color: color.RGBA{R: 0xec, G: 0x6b, B: 0xb8, A: 0xff},
	}
	reflective = Anchor{
		Name:  "reflective",
		Pos:   r2.Vec{X: 0.36, Y: 0.62},
		Hemi:  Left,
		Color: color.RGBA{R: 0x3f, G: 0xb8, B: 0x8a, A: 0xff},
	}
	practical = Anchor{
		Name:  "practical",
		Pos:   r2.Vec{X: 0.64, Y: 0.62},
		Hemi:  Right,
		Color: color.RGBA{R: 0xe8, G: 0xa2, B: 0x3c, A: 0xff},
	}
	fallback = Anchor{
		Name:  "default",
		Pos:   r2.Vec{X: 0.50, Y: 0.55},
		Hemi:  Center,
		Color: color.RGBA{R: 0x8a, G: 0x8a, B: 0x9a, A: 0xff},
	}
)

// Named returns the recognized regions in a fixed order. The slice is
// freshly allocated; callers may reorder it.
func Named() []Anchor {
	return []Anchor{logical, creative, reflective, practical}
}

// Default returns the anchor used for absent or unrecognized regions.
func Default() Anchor { return fallback }

// ForName resolves a region name to its anchor, falling back to the
// default anchor for empty or unrecognized names.
func ForName(name string) Anchor {
	for _, a := range Named() {
		if a.Name == name {
			return a
		}
	}
	return fallback
}

// Target maps an anchor's fractional position into a concrete point of a
// width x height silhouette bounding box, shifted outward for left/right
// hemisphere anchors.
func Target(a Anchor, width, height float64) r2.Vec {
	p := r2.Vec{X: a.Pos.X * width, Y: a.Pos.Y * height}
	switch a.Hemi {
	case Left:
		p.X -= HemisphereShift
	case Right:
		p.X += HemisphereShift
	}
	return p
}
