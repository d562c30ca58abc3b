// Package interaction translates pointer input into simulation
// perturbations, view-transform updates and navigation commands. Input
// arrives through the Press/Move/Release/Wheel methods so the controller
// is testable without a real input surface; any event source that can
// deliver those four capabilities can drive it.
package interaction

import "gonum.org/v1/gonum/spatial/r2"

// View is the global view transform applied to the whole rendered scene:
// a translation plus a uniform scale.
type View struct {
	Translate r2.Vec
	Scale     float64
}

// NewView returns the identity view.
func NewView() *View {
	return &View{Scale: 1}
}

// ToScreen maps a layout-space point to screen space.
func (v *View) ToScreen(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(v.Scale, p), v.Translate)
}

// ToLayout maps a screen-space point back to layout space.
func (v *View) ToLayout(p r2.Vec) r2.Vec {
	return r2.Scale(1/v.Scale, r2.Sub(p, v.Translate))
}
