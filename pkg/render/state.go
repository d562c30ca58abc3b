package render

import (
	"image/color"
	"time"

	"github.com/vanderheijden86/cortex/pkg/anim"
	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/interaction"
)

// Animation channels. Each holds at most one in-flight group; every hover
// transition restarts all three.
const (
	ChannelHover = "hover"
	ChannelLink  = "link"
	ChannelLabel = "label"
)

const (
	linkFadeDuration  = 200 * time.Millisecond
	nodeFadeDuration  = 200 * time.Millisecond
	labelFadeDuration = 100 * time.Millisecond

	dimmedOpacity   = 0.2
	hoverLabelScale = 1.25

	// Zoom-to-label-opacity ramp: opacity = (scale - rampStart) / rampSpan,
	// floor-clamped, then multiplied by the configured opacityScale.
	labelRampStart = 0.3
	labelRampSpan  = 1.4
)

// NodeState is the mutable visual state of one node, decoupled from
// simulation state so animation interpolates independently of physics.
type NodeState struct {
	Color        color.RGBA
	Opacity      float64
	LabelOpacity float64
	LabelScale   float64
	Active       bool
}

// LinkState is the mutable visual state of one link.
type LinkState struct {
	Opacity float64
	Active  bool
}

// StateOptions configures the state machine.
type StateOptions struct {
	FocusOnHover bool    // dim non-highlighted nodes on hover
	OpacityScale float64 // multiplier on the zoom-to-label-opacity ramp
	LabelScale   float64 // base label scale
}

// State is the render state machine: idle or hovering(node). Transitions
// mark active links/nodes and start the three animation channels.
type State struct {
	Nodes []NodeState
	Links []LinkState

	g       *graph.Graph
	view    *interaction.View
	opts    StateOptions
	anims   *anim.Set
	hovered int
}

// NewState builds wrappers for every node and link at their resting
// values.
func NewState(g *graph.Graph, view *interaction.View, opts StateOptions) *State {
	if opts.OpacityScale <= 0 {
		opts.OpacityScale = 1
	}
	if opts.LabelScale <= 0 {
		opts.LabelScale = 1
	}
	st := &State{
		Nodes:   make([]NodeState, len(g.Nodes)),
		Links:   make([]LinkState, len(g.Links)),
		g:       g,
		view:    view,
		opts:    opts,
		anims:   anim.NewSet(),
		hovered: -1,
	}
	resting := st.RestingLabelOpacity()
	for i := range st.Nodes {
		st.Nodes[i] = NodeState{
			Opacity:      1,
			LabelOpacity: resting,
			LabelScale:   opts.LabelScale,
		}
	}
	for i := range st.Links {
		st.Links[i] = LinkState{Opacity: 1}
	}
	return st
}

// Hovered returns the hovered arena index, or -1 when idle.
func (st *State) Hovered() int { return st.hovered }

// Highlighted reports whether node i belongs to the highlighted set (the
// endpoints of the hovered node's links).
func (st *State) Highlighted(i int) bool {
	return i >= 0 && i < len(st.Nodes) && st.Nodes[i].Active
}

// RestingLabelOpacity is the label opacity at rest: a floor-clamped
// linear ramp of the current zoom scale, so labels fade in as the user
// zooms in.
func (st *State) RestingLabelOpacity() float64 {
	o := (st.view.Scale - labelRampStart) / labelRampSpan * st.opts.OpacityScale
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// SetHover transitions the machine: idx >= 0 enters hovering(idx), idx < 0
// returns to idle. Links touching the hovered node become active; the
// highlighted set is the union of their endpoints.
func (st *State) SetHover(idx int) {
	if idx >= len(st.Nodes) {
		idx = -1
	}
	st.hovered = idx

	highlighted := make(map[int]bool)
	for i, l := range st.g.Links {
		active := idx >= 0 && (l.Source == idx || l.Target == idx)
		st.Links[i].Active = active
		if active {
			highlighted[l.Source] = true
			highlighted[l.Target] = true
		}
	}
	for i := range st.Nodes {
		st.Nodes[i].Active = highlighted[i]
	}

	st.startLinkFade()
	st.startNodeFade()
	st.startLabelFade()
}

func (st *State) startLinkFade() {
	tweens := make([]anim.Tween, 0, len(st.Links))
	for i := range st.Links {
		target := 1.0
		if st.hovered >= 0 && !st.Links[i].Active {
			target = dimmedOpacity
		}
		tweens = append(tweens, anim.Tween{
			From:  st.Links[i].Opacity,
			To:    target,
			Apply: func(v float64) { st.Links[i].Opacity = v },
		})
	}
	st.anims.Start(ChannelLink, anim.NewGroup(linkFadeDuration, tweens...))
}

func (st *State) startNodeFade() {
	tweens := make([]anim.Tween, 0, len(st.Nodes))
	for i := range st.Nodes {
		target := 1.0
		// Non-highlighted nodes dim only when focus-on-hover is set.
		if st.hovered >= 0 && st.opts.FocusOnHover && !st.Nodes[i].Active {
			target = dimmedOpacity
		}
		tweens = append(tweens, anim.Tween{
			From:  st.Nodes[i].Opacity,
			To:    target,
			Apply: func(v float64) { st.Nodes[i].Opacity = v },
		})
	}
	st.anims.Start(ChannelHover, anim.NewGroup(nodeFadeDuration, tweens...))
}

func (st *State) startLabelFade() {
	resting := st.RestingLabelOpacity()
	tweens := make([]anim.Tween, 0, 2*len(st.Nodes))
	for i := range st.Nodes {
		opacity, scale := resting, st.opts.LabelScale
		if i == st.hovered {
			opacity, scale = 1, st.opts.LabelScale*hoverLabelScale
		}
		tweens = append(tweens,
			anim.Tween{
				From:  st.Nodes[i].LabelOpacity,
				To:    opacity,
				Apply: func(v float64) { st.Nodes[i].LabelOpacity = v },
			},
			anim.Tween{
				From:  st.Nodes[i].LabelScale,
				To:    scale,
				Apply: func(v float64) { st.Nodes[i].LabelScale = v },
			})
	}
	st.anims.Start(ChannelLabel, anim.NewGroup(labelFadeDuration, tweens...))
}

// Tick advances in-flight animations by dt and then re-applies the
// zoom-derived resting opacity to labels that are neither highlighted nor
// mid-transition, so zooming moves resting labels immediately while the
// highlighted set keeps its hover-driven opacity.
func (st *State) Tick(dt time.Duration) {
	st.anims.Advance(dt)
	if st.anims.Active(ChannelLabel) != nil {
		return
	}
	resting := st.RestingLabelOpacity()
	for i := range st.Nodes {
		if st.Nodes[i].Active || i == st.hovered {
			continue
		}
		st.Nodes[i].LabelOpacity = resting
	}
}

// Stop cancels all in-flight animation groups; part of teardown.
func (st *State) Stop() {
	st.anims.StopAll()
}
