// Package anim provides named animation channels for the render state
// machine. A channel holds at most one in-flight group; starting a new
// group cancels and replaces the previous one, so visual transitions never
// fight each other.
//
// No animation library appears in this project's dependency set on
// purpose: the model is a handful of float tweens advanced by the frame
// loop's elapsed time.
package anim

import "time"

// Easing maps normalized progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// EaseOutCubic is the default easing for visual transitions.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Linear easing, used by tests and scale transitions.
func Linear(t float64) float64 { return t }

// Tween interpolates one float property from From to To, writing each
// intermediate value through Apply.
type Tween struct {
	From, To float64
	Apply    func(v float64)
}

// Group animates a set of tweens over a shared duration.
type Group struct {
	duration time.Duration
	elapsed  time.Duration
	easing   Easing
	tweens   []Tween
	done     bool
}

// NewGroup builds a group over d with the default easing. A non-positive
// duration completes on the first advance.
func NewGroup(d time.Duration, tweens ...Tween) *Group {
	return &Group{duration: d, easing: EaseOutCubic, tweens: tweens}
}

// WithEasing overrides the group's easing and returns the group.
func (g *Group) WithEasing(e Easing) *Group {
	g.easing = e
	return g
}

// Advance moves the group forward by dt and applies all tweens. It
// returns true once the group has completed; completed groups snap every
// tween to its target and then become no-ops.
func (g *Group) Advance(dt time.Duration) bool {
	if g.done {
		return true
	}
	g.elapsed += dt
	t := 1.0
	if g.duration > 0 && g.elapsed < g.duration {
		t = float64(g.elapsed) / float64(g.duration)
	}
	if t >= 1 {
		for _, tw := range g.tweens {
			tw.Apply(tw.To)
		}
		g.done = true
		return g.done
	}
	eased := g.easing(t)
	for _, tw := range g.tweens {
		tw.Apply(tw.From + (tw.To-tw.From)*eased)
	}
	return g.done
}

// Done reports whether the group has completed.
func (g *Group) Done() bool { return g.done }

// Set owns the named channels. Channels are created on first use.
type Set struct {
	channels map[string]*Group
}

// NewSet returns an empty channel set.
func NewSet() *Set {
	return &Set{channels: make(map[string]*Group)}
}

// Start places g on the named channel, cancelling and replacing whatever
// group was in flight there.
func (s *Set) Start(channel string, g *Group) {
	s.channels[channel] = g
}

// Active returns the in-flight group on channel, or nil.
func (s *Set) Active(channel string) *Group {
	g := s.channels[channel]
	if g == nil || g.done {
		return nil
	}
	return g
}

// Advance moves every in-flight group forward by dt, dropping the ones
// that complete.
func (s *Set) Advance(dt time.Duration) {
	for name, g := range s.channels {
		if g.Advance(dt) {
			delete(s.channels, name)
		}
	}
}

// StopAll cancels every in-flight group without applying final values.
func (s *Set) StopAll() {
	for name := range s.channels {
		delete(s.channels, name)
	}
}
