package render

import (
	"time"

	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/interaction"
	"github.com/vanderheijden86/cortex/pkg/sim"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Curvature of the cubic edge bow, capped so short edges do not loop.
	curveMax  = 18.0
	curveFrac = 0.15

	// Edges between nearly coincident endpoints are skipped; the perpendicular
	// is undefined there.
	minEdgeLen = 0.1

	edgeWidth     = 1.0
	tagOutlineW   = 1.5
	labelMaxWidth = 24
	labelOffset   = 10.0
	labelMinAlpha = 0.02
)

// Renderer draws one frame per tick from the simulation and the render
// state machine onto a surface.
type Renderer struct {
	g       *graph.Graph
	sim     *sim.Simulation
	st      *State
	view    *interaction.View
	surface Surface
	theme   Theme

	width, height int
	visited       func(string) bool
}

// NewRenderer wires a renderer over already-constructed parts. visited may
// be nil.
func NewRenderer(g *graph.Graph, s *sim.Simulation, st *State, view *interaction.View, surface Surface, theme Theme, width, height int, visited func(string) bool) *Renderer {
	return &Renderer{
		g:       g,
		sim:     s,
		st:      st,
		view:    view,
		surface: surface,
		theme:   theme,
		width:   width,
		height:  height,
		visited: visited,
	}
}

// Frame advances animations by dt and draws edges, nodes and labels in
// that order.
func (r *Renderer) Frame(dt time.Duration) error {
	r.st.Tick(dt)
	r.surface.Begin(r.width, r.height, r.theme.Background)
	r.drawEdges()
	r.drawNodes()
	r.drawLabels()
	return r.surface.Flush()
}

func (r *Renderer) drawEdges() {
	for i, l := range r.g.Links {
		src := r.screenPos(l.Source)
		dst := r.screenPos(l.Target)
		d := r2.Sub(dst, src)
		dist := r2.Norm(d)
		if dist < minEdgeLen {
			continue
		}
		// Asymmetric S-curve: the first control point bows one way, the
		// second bows back at half strength; the sign alternates per edge
		// so parallel edges fan apart.
		perp := r2.Vec{X: -d.Y / dist, Y: d.X / dist}
		mag := curveFrac * dist
		if mag > curveMax {
			mag = curveMax
		}
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		c1 := r2.Add(r2.Add(src, r2.Scale(1.0/3, d)), r2.Scale(mag*sign, perp))
		c2 := r2.Sub(r2.Add(src, r2.Scale(2.0/3, d)), r2.Scale(mag/2*sign, perp))

		c := withAlpha(r.theme.Edge, r.st.Links[i].Opacity)
		r.surface.StrokeCubic(src, c1, c2, dst, edgeWidth, c)
	}
}

func (r *Renderer) drawNodes() {
	for i, n := range r.g.Nodes {
		ns := r.st.Nodes[i]
		c := BaseColor(n, r.g.Focal, r.visited, r.theme)
		// Unclassified nodes take a position-derived tint instead of the
		// flat base color; for tag nodes it lands on the outline.
		if c == r.theme.Gray || (n.IsTag() && n.Region == "") {
			c = ProximityColor(r.sim.Body(i).Pos, float64(r.width), float64(r.height), r.theme)
		}
		pos := r.screenPos(i)
		radius := r.g.Radius(i) * r.view.Scale
		if n.IsTag() {
			r.surface.StrokeCircle(pos, radius, tagOutlineW, withAlpha(c, ns.Opacity))
			continue
		}
		r.surface.FillCircle(pos, radius, withAlpha(c, ns.Opacity))
	}
}

func (r *Renderer) drawLabels() {
	for i, n := range r.g.Nodes {
		ns := r.st.Nodes[i]
		if n.Title == "" || ns.LabelOpacity < labelMinAlpha {
			continue
		}
		pos := r.screenPos(i)
		pos.Y += r.g.Radius(i)*r.view.Scale + labelOffset
		text := TruncateLabel(n.Title, labelMaxWidth)
		r.surface.Label(text, pos, ns.LabelScale*r.view.Scale,
			withAlpha(r.theme.Text, ns.LabelOpacity*ns.Opacity))
	}
}

func (r *Renderer) screenPos(i int) r2.Vec {
	half := r2.Vec{X: float64(r.width) / 2, Y: float64(r.height) / 2}
	return r.view.ToScreen(r2.Add(r.sim.Body(i).Pos, half))
}
