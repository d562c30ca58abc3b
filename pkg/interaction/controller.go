package interaction

import (
	"math"
	"time"

	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/sim"

	"gonum.org/v1/gonum/spatial/r2"
)

// ClickThreshold is the press-release duration below which a drag gesture
// is reinterpreted as a click and triggers navigation.
const ClickThreshold = 500 * time.Millisecond

// moveEpsilon is the screen-space distance (in px) beyond which a press
// counts as movement and can no longer become a click.
const moveEpsilon = 3.0

// reheatAlpha is the temperature the simulation is raised to while a node
// is dragged, keeping the rest of the graph responsive.
const reheatAlpha = 0.5

// Options enables the interaction capabilities.
type Options struct {
	Drag    bool
	Zoom    bool
	ZoomMin float64
	ZoomMax float64
}

// Controller owns hover/drag/pan/zoom state. All methods run on the frame
// loop's logical thread.
type Controller struct {
	g    *graph.Graph
	sim  *sim.Simulation
	view *View
	opts Options

	width, height float64

	// Callbacks into the render state machine and the host.
	OnHover    func(idx int) // idx == -1 means no hover
	OnNavigate func(id string)

	// Now is the clock used for drag-vs-click disambiguation; tests
	// replace it.
	Now func() time.Time

	hovered int

	pressed   bool
	moved     bool
	pressPos  r2.Vec // screen space
	pressTime time.Time

	dragIdx   int // -1 when not dragging a node
	dragStart r2.Vec // node position at drag start, layout space

	panning  bool
	panStart r2.Vec // view translation at pan start
}

// NewController wires a controller over the simulation and view.
func NewController(g *graph.Graph, s *sim.Simulation, view *View, opts Options, width, height float64) *Controller {
	if opts.ZoomMin <= 0 {
		opts.ZoomMin = 0.25
	}
	if opts.ZoomMax <= 0 {
		opts.ZoomMax = 4
	}
	return &Controller{
		g:       g,
		sim:     s,
		view:    view,
		opts:    opts,
		width:   width,
		height:  height,
		Now:     time.Now,
		hovered: -1,
		dragIdx: -1,
	}
}

// Hovered returns the arena index under the pointer, or -1.
func (c *Controller) Hovered() int { return c.hovered }

// View returns the controller's view transform.
func (c *Controller) View() *View { return c.view }

// Move updates hover tracking and, while pressed, advances the active
// drag or pan gesture.
func (c *Controller) Move(p r2.Vec) {
	if c.pressed {
		delta := r2.Sub(p, c.pressPos)
		if r2.Norm(delta) > moveEpsilon {
			c.moved = true
		}
		switch {
		case c.dragIdx >= 0:
			// Drag motion is relative to the recorded start position and
			// divided by the zoom factor so dragging feels the same at
			// any zoom level.
			pos := r2.Add(c.dragStart, r2.Scale(1/c.view.Scale, delta))
			c.sim.Pin(c.dragIdx, pos)
			c.sim.Reheat(reheatAlpha)
		case c.panning:
			c.view.Translate = r2.Add(c.panStart, delta)
		}
		return
	}
	c.setHover(c.hitTest(p))
}

// Press begins a gesture: a node drag when drag is enabled and a node is
// hovered, an immediate navigation when drag is disabled, or a pan.
func (c *Controller) Press(p r2.Vec) {
	c.pressed = true
	c.moved = false
	c.pressPos = p
	c.pressTime = c.Now()

	if c.hovered >= 0 {
		if !c.opts.Drag {
			c.navigate(c.hovered)
			return
		}
		c.dragIdx = c.hovered
		c.dragStart = c.sim.Body(c.dragIdx).Pos
		c.sim.Pin(c.dragIdx, c.dragStart)
		c.sim.Reheat(reheatAlpha)
		return
	}
	if c.opts.Zoom {
		c.panning = true
		c.panStart = c.view.Translate
	}
}

// Release ends the gesture. A node drag released within ClickThreshold
// without prior movement is reinterpreted as a click and navigates.
func (c *Controller) Release(p r2.Vec) {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.panning = false

	if c.dragIdx < 0 {
		return
	}
	idx := c.dragIdx
	c.dragIdx = -1
	c.sim.Unpin(idx)
	if !c.moved && c.Now().Sub(c.pressTime) < ClickThreshold {
		c.navigate(idx)
	}
}

// Wheel applies a zoom step about the pointer position, clamped to the
// configured scale range.
func (c *Controller) Wheel(delta float64, p r2.Vec) {
	if !c.opts.Zoom {
		return
	}
	factor := math.Exp(delta * 0.1)
	scale := c.view.Scale * factor
	if scale < c.opts.ZoomMin {
		scale = c.opts.ZoomMin
	}
	if scale > c.opts.ZoomMax {
		scale = c.opts.ZoomMax
	}
	if scale == c.view.Scale {
		return
	}
	// Keep the point under the pointer fixed while scaling.
	ratio := scale / c.view.Scale
	c.view.Translate = r2.Sub(p, r2.Scale(ratio, r2.Sub(p, c.view.Translate)))
	c.view.Scale = scale
}

func (c *Controller) navigate(idx int) {
	if c.OnNavigate == nil || idx < 0 || idx >= len(c.g.Nodes) {
		return
	}
	c.OnNavigate(c.g.Nodes[idx].ID)
}

func (c *Controller) setHover(idx int) {
	if idx == c.hovered {
		return
	}
	c.hovered = idx
	if c.OnHover != nil {
		c.OnHover(idx)
	}
}

// hitTest returns the arena index of the nearest node whose circle covers
// the screen-space pointer, or -1.
func (c *Controller) hitTest(p r2.Vec) int {
	half := r2.Vec{X: c.width / 2, Y: c.height / 2}
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < c.sim.Len(); i++ {
		b := c.sim.Body(i)
		screen := c.view.ToScreen(r2.Add(b.Pos, half))
		dist := r2.Norm(r2.Sub(p, screen))
		hit := math.Max(b.Radius*c.view.Scale, 6)
		if dist <= hit && dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
