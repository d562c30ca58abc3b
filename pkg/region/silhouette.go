package region

import "gonum.org/v1/gonum/spatial/r2"

// Silhouette is the geometric predicate defining the visually "inside"
// area: two overlapping ellipses (one per lobe) minus a small notch at
// the top center between the lobes, unioned with a rectangular stem below
// and between the lobes. The result is non-convex, which is why the
// simulation uses a soft containment force instead of clipping.
type Silhouette struct {
	Width, Height float64
}

// Fractional geometry of the silhouette. The two lobe ellipses overlap
// across the vertical midline so the shape has a connected neck.
const (
	lobeCenterY = 0.44
	lobeOffsetX = 0.215 // lobe centers at 0.5 +/- lobeOffsetX
	lobeRadiusX = 0.27
	lobeRadiusY = 0.34
	notchHalfW  = 0.045
	notchDepth  = 0.30 // notch spans the top of the midline down to this fraction
	stemHalfW   = 0.10
	stemTop     = 0.70
	stemBottom  = 0.92
)

// Contains reports whether p (in box coordinates) lies inside the
// silhouette.
func (s Silhouette) Contains(p r2.Vec) bool {
	if s.Width <= 0 || s.Height <= 0 {
		return false
	}
	// Normalize to fractional coordinates.
	f := r2.Vec{X: p.X / s.Width, Y: p.Y / s.Height}

	inStem := f.X >= 0.5-stemHalfW && f.X <= 0.5+stemHalfW &&
		f.Y >= stemTop && f.Y <= stemBottom
	if inStem {
		return true
	}

	inNotch := f.X >= 0.5-notchHalfW && f.X <= 0.5+notchHalfW &&
		f.Y <= notchDepth
	if inNotch {
		return false
	}

	return insideEllipse(f, 0.5-lobeOffsetX, lobeCenterY) ||
		insideEllipse(f, 0.5+lobeOffsetX, lobeCenterY)
}

func insideEllipse(f r2.Vec, cx, cy float64) bool {
	dx := (f.X - cx) / lobeRadiusX
	dy := (f.Y - cy) / lobeRadiusY
	return dx*dx+dy*dy <= 1
}
