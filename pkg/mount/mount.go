// Package mount assembles the engine parts into a running instance and
// tracks which container each instance occupies, so remounting a
// container always tears the previous instance down first.
package mount

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vanderheijden86/cortex/pkg/config"
	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/interaction"
	"github.com/vanderheijden86/cortex/pkg/model"
	"github.com/vanderheijden86/cortex/pkg/region"
	"github.com/vanderheijden86/cortex/pkg/render"
	"github.com/vanderheijden86/cortex/pkg/sim"
	"github.com/vanderheijden86/cortex/pkg/visited"

	"gonum.org/v1/gonum/spatial/r2"
)

// EngineOptions bundles everything an instance needs.
type EngineOptions struct {
	Index   model.ContentIndex
	FocalID string
	Config  config.Config
	Surface render.Surface
	Width   int
	Height  int
	// Seed fixes the layout jitter; 0 derives a seed from the clock.
	Seed int64
	// Visited may be nil; navigation then leaves no trace.
	Visited *visited.Set
	// OnNavigate is called after the visited set is updated. The host
	// typically tears this instance down and mounts a new one around the
	// target node.
	OnNavigate func(id string)
}

// Engine is one mounted instance: graph, simulation, interaction and
// rendering wired together. All methods run on the frame loop's logical
// thread.
type Engine struct {
	Graph      *graph.Graph
	Sim        *sim.Simulation
	State      *render.State
	Controller *interaction.Controller
	Renderer   *render.Renderer
	View       *interaction.View

	surface  render.Surface
	released bool
}

// NewEngine builds an instance around the focal node. The graph may be
// empty (focal absent from the index); the instance then renders only the
// background.
func NewEngine(opts EngineOptions) *Engine {
	cfg := opts.Config
	g := graph.Build(opts.Index, opts.FocalID, graph.Options{
		Depth:      cfg.Depth,
		ShowTags:   cfg.ShowTags,
		RemoveTags: cfg.RemoveTags,
	})
	region.ResolveTags(g)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w, h := float64(opts.Width), float64(opts.Height)
	simCfg := sim.DefaultConfig()
	simCfg.RepelForce = cfg.RepelForce
	simCfg.CenterForce = cfg.CenterForce
	simCfg.LinkDistance = cfg.LinkDistance
	simCfg.EnableRadial = cfg.EnableRadial
	s := sim.New(g, simCfg, w, h, rng)

	// Initial zoom is applied about the viewport center so the layout
	// stays centered.
	view := interaction.NewView()
	view.Scale = cfg.Scale
	view.Translate = r2.Vec{X: w / 2 * (1 - cfg.Scale), Y: h / 2 * (1 - cfg.Scale)}
	theme := render.ThemeByName(cfg.Theme)

	st := render.NewState(g, view, render.StateOptions{
		FocusOnHover: cfg.FocusOnHover,
		OpacityScale: cfg.OpacityScale,
		LabelScale:   cfg.FontSize,
	})

	ctrl := interaction.NewController(g, s, view, interaction.Options{
		Drag:    cfg.Drag,
		Zoom:    cfg.Zoom,
		ZoomMin: cfg.ZoomMin,
		ZoomMax: cfg.ZoomMax,
	}, w, h)
	ctrl.OnHover = st.SetHover

	var isVisited func(string) bool
	if opts.Visited != nil {
		isVisited = opts.Visited.Contains
	}
	ctrl.OnNavigate = func(id string) {
		if opts.Visited != nil {
			opts.Visited.Add(id)
		}
		if opts.OnNavigate != nil {
			opts.OnNavigate(id)
		}
	}

	r := render.NewRenderer(g, s, st, view, opts.Surface, theme,
		opts.Width, opts.Height, isVisited)

	return &Engine{
		Graph:      g,
		Sim:        s,
		State:      st,
		Controller: ctrl,
		Renderer:   r,
		View:       view,
		surface:    opts.Surface,
	}
}

// Step advances physics and draws one frame.
func (e *Engine) Step(dt time.Duration) error {
	if e.released {
		return nil
	}
	e.Sim.Step()
	return e.Renderer.Frame(dt)
}

// Teardown stops animations and releases the surface. Idempotent.
func (e *Engine) Teardown() {
	if e.released {
		return
	}
	e.released = true
	e.State.Stop()
	e.surface.Release()
}

// Registry maps container names to their mounted instance.
type Registry struct {
	mu        sync.Mutex
	instances map[string]*Engine
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]*Engine)}
}

// Mount places an instance in a container. Teardown of whatever was
// mounted there is a precondition: the previous instance is fully torn
// down before the replacement is installed.
func (r *Registry) Mount(container string, e *Engine) {
	r.mu.Lock()
	prev := r.instances[container]
	r.mu.Unlock()
	if prev != nil {
		prev.Teardown()
	}
	r.mu.Lock()
	r.instances[container] = e
	r.mu.Unlock()
}

// Get returns the instance mounted in a container, or nil.
func (r *Registry) Get(container string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instances[container]
}

// Unmount tears down and removes the instance in a container.
func (r *Registry) Unmount(container string) {
	r.mu.Lock()
	e := r.instances[container]
	delete(r.instances, container)
	r.mu.Unlock()
	if e != nil {
		e.Teardown()
	}
}

// ThemeChange rebuilds the instance in every container. Theme colors are
// captured at construction, so switching themes needs a full re-mount
// rather than an in-place update. rebuild receives the container name and
// returns the replacement instance.
func (r *Registry) ThemeChange(rebuild func(container string) *Engine) {
	r.mu.Lock()
	containers := make([]string, 0, len(r.instances))
	for name := range r.instances {
		containers = append(containers, name)
	}
	r.mu.Unlock()
	for _, name := range containers {
		r.Mount(name, rebuild(name))
	}
}

// TeardownAll unmounts every container.
func (r *Registry) TeardownAll() {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[string]*Engine)
	r.mu.Unlock()
	for _, e := range instances {
		e.Teardown()
	}
}
