// Package sim implements the force simulation that lays out the
// neighborhood graph inside the silhouette.
//
// Coordinates are centered: the origin is the middle of the viewport and
// the renderer offsets by half the viewport dimensions. Each step blends
// generic graph forces (charge repulsion, centering, link springs,
// collision, optional radial) with two silhouette-specific ones: an
// independent x/y pull toward each node's region-anchor target, and a
// soft containment nudge applied only to nodes currently outside the
// silhouette, scaled by the cooling temperature so motion stays organic
// instead of snapping.
package sim

import (
	"math"
	"math/rand"

	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/model"
	"github.com/vanderheijden86/cortex/pkg/region"

	"gonum.org/v1/gonum/spatial/r2"
)

// Config holds the force coefficients. Zero values are not useful;
// start from DefaultConfig.
type Config struct {
	RepelForce   float64 // charge repulsion strength
	CenterForce  float64 // pull of the whole layout toward the center
	LinkDistance float64 // spring rest length
	AnchorForce  float64 // per-axis pull toward the region-anchor target
	ContainForce float64 // containment nudge for nodes outside the silhouette
	EnableRadial bool
	RadialRadius float64 // target radius for the optional radial force

	AlphaStart    float64
	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64
}

// DefaultConfig mirrors the decay parameters of the d3 force family
// (alphaDecay 0.02, velocityDecay 0.25) with mild anchor/containment
// coefficients.
func DefaultConfig() Config {
	return Config{
		RepelForce:    0.5,
		CenterForce:   0.3,
		LinkDistance:  30,
		AnchorForce:   0.06,
		ContainForce:  0.35,
		RadialRadius:  120,
		AlphaStart:    1.0,
		AlphaMin:      0.001,
		AlphaDecay:    0.02,
		VelocityDecay: 0.25,
	}
}

// Body is one simulated node. Pinned is non-nil only while the node is
// dragged; a pinned body ignores free movement and sits exactly at the
// pinned position.
type Body struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Target r2.Vec // region-anchor screen target, centered coords
	Radius float64
	pinned *r2.Vec
}

// Pinned reports whether the body is currently pinned.
func (b *Body) Pinned() bool { return b.pinned != nil }

// Simulation steps node positions and velocities. It is not safe for
// concurrent use; the frame loop owns it.
type Simulation struct {
	bodies []Body
	links  []model.Link
	cfg    Config
	width  float64
	height float64
	sil    region.Silhouette
	alpha  float64
}

// jitterFrac bounds the random seeding offset around the anchor target.
const jitterFrac = 0.08

// New builds a simulation over the graph's arena. Nodes are seeded near
// their region-anchor target plus bounded random jitter from rng, so a
// fixed seed reproduces the layout exactly.
func New(g *graph.Graph, cfg Config, width, height float64, rng *rand.Rand) *Simulation {
	s := &Simulation{
		bodies: make([]Body, len(g.Nodes)),
		links:  g.Links,
		cfg:    cfg,
		width:  width,
		height: height,
		sil:    region.Silhouette{Width: width, Height: height},
		alpha:  cfg.AlphaStart,
	}
	half := r2.Vec{X: width / 2, Y: height / 2}
	jitter := jitterFrac * math.Min(width, height)
	for i := range g.Nodes {
		anchor := region.ForName(g.Nodes[i].Region)
		target := r2.Sub(region.Target(anchor, width, height), half)
		s.bodies[i] = Body{
			Pos: r2.Vec{
				X: target.X + (rng.Float64()*2-1)*jitter,
				Y: target.Y + (rng.Float64()*2-1)*jitter,
			},
			Target: target,
			Radius: g.Radius(i),
		}
	}
	return s
}

// Len returns the number of bodies.
func (s *Simulation) Len() int { return len(s.bodies) }

// Body returns the body at arena index i.
func (s *Simulation) Body(i int) *Body { return &s.bodies[i] }

// Alpha returns the current simulation temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Reheat raises the temperature back to a, keeping the graph responsive
// during interaction. Lower values than the current alpha are ignored.
func (s *Simulation) Reheat(a float64) {
	if a > s.alpha {
		s.alpha = a
	}
}

// Pin fixes the body at arena index i to pos, removing it from free
// simulation movement.
func (s *Simulation) Pin(i int, pos r2.Vec) {
	if i < 0 || i >= len(s.bodies) {
		return
	}
	p := pos
	s.bodies[i].pinned = &p
	s.bodies[i].Pos = p
	s.bodies[i].Vel = r2.Vec{}
}

// Unpin returns the body to free simulation movement.
func (s *Simulation) Unpin(i int) {
	if i < 0 || i >= len(s.bodies) {
		return
	}
	s.bodies[i].pinned = nil
}

// Inside reports whether p (centered coords) passes the silhouette test.
func (s *Simulation) Inside(p r2.Vec) bool {
	half := r2.Vec{X: s.width / 2, Y: s.height / 2}
	return s.sil.Contains(r2.Add(p, half))
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	if len(s.bodies) == 0 {
		return
	}
	s.applyForces()
	s.integrate()
	for pass := 0; pass < collisionPasses; pass++ {
		s.resolveCollisions()
	}
	s.alpha *= 1 - s.cfg.AlphaDecay
	if s.alpha < s.cfg.AlphaMin {
		s.alpha = s.cfg.AlphaMin
	}
}

func (s *Simulation) integrate() {
	damp := 1 - s.cfg.VelocityDecay
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.pinned != nil {
			b.Pos = *b.pinned
			b.Vel = r2.Vec{}
			continue
		}
		b.Vel = r2.Scale(damp, b.Vel)
		b.Pos = r2.Add(b.Pos, b.Vel)
	}
}
