package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	collisionPasses = 3
	minDistance     = 1e-3
)

func (s *Simulation) applyForces() {
	alpha := s.alpha
	cfg := s.cfg

	// Charge repulsion between every pair, inverse-distance falloff.
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			d := r2.Sub(s.bodies[i].Pos, s.bodies[j].Pos)
			dist := math.Max(r2.Norm(d), minDistance)
			push := r2.Scale(cfg.RepelForce*alpha/(dist*dist), d)
			s.bodies[i].Vel = r2.Add(s.bodies[i].Vel, push)
			s.bodies[j].Vel = r2.Sub(s.bodies[j].Vel, push)
		}
	}

	// Weak centering pull toward the origin.
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Vel = r2.Sub(b.Vel, r2.Scale(cfg.CenterForce*alpha*0.01, b.Pos))
	}

	// Link springs toward the rest length.
	for _, l := range s.links {
		src := &s.bodies[l.Source]
		dst := &s.bodies[l.Target]
		d := r2.Sub(dst.Pos, src.Pos)
		dist := math.Max(r2.Norm(d), minDistance)
		stretch := (dist - cfg.LinkDistance) / dist
		pull := r2.Scale(0.5*stretch*alpha, d)
		src.Vel = r2.Add(src.Vel, pull)
		dst.Vel = r2.Sub(dst.Vel, pull)
	}

	// Independent x/y anchoring toward the region-anchor target.
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Vel.X += (b.Target.X - b.Pos.X) * cfg.AnchorForce * alpha
		b.Vel.Y += (b.Target.Y - b.Pos.Y) * cfg.AnchorForce * alpha
	}

	// Optional radial force toward a fixed radius from center.
	if cfg.EnableRadial {
		for i := range s.bodies {
			b := &s.bodies[i]
			dist := math.Max(r2.Norm(b.Pos), minDistance)
			k := (cfg.RadialRadius - dist) / dist * alpha * 0.1
			b.Vel = r2.Add(b.Vel, r2.Scale(k, b.Pos))
		}
	}

	// Containment: nodes outside the silhouette are nudged toward their
	// anchor target, scaled by the current temperature so the penalty
	// softens as the layout cools. Nodes already inside are left to the
	// other forces.
	for i := range s.bodies {
		b := &s.bodies[i]
		if s.Inside(b.Pos) {
			continue
		}
		d := r2.Sub(b.Target, b.Pos)
		dist := r2.Norm(d)
		if dist < minDistance {
			continue
		}
		b.Vel = r2.Add(b.Vel, r2.Scale(cfg.ContainForce*alpha/dist, d))
	}
}

// resolveCollisions separates overlapping node circles with a single
// pairwise pass; Step runs several passes so chains of overlaps settle.
func (s *Simulation) resolveCollisions() {
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			a, b := &s.bodies[i], &s.bodies[j]
			d := r2.Sub(b.Pos, a.Pos)
			dist := r2.Norm(d)
			minSep := a.Radius + b.Radius
			if dist >= minSep {
				continue
			}
			var dir r2.Vec
			if dist < minDistance {
				// Coincident centers: separate along x.
				dir = r2.Vec{X: 1}
				dist = minDistance
			} else {
				dir = r2.Scale(1/dist, d)
			}
			overlap := minSep - dist
			switch {
			case a.pinned != nil && b.pinned != nil:
				// Both dragged; leave them.
			case a.pinned != nil:
				b.Pos = r2.Add(b.Pos, r2.Scale(overlap, dir))
			case b.pinned != nil:
				a.Pos = r2.Sub(a.Pos, r2.Scale(overlap, dir))
			default:
				half := r2.Scale(overlap/2, dir)
				a.Pos = r2.Sub(a.Pos, half)
				b.Pos = r2.Add(b.Pos, half)
			}
		}
	}
}
