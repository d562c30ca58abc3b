package mount

import (
	"image/color"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vanderheijden86/cortex/pkg/config"
	"github.com/vanderheijden86/cortex/pkg/model"
	"github.com/vanderheijden86/cortex/pkg/render"
	"github.com/vanderheijden86/cortex/pkg/visited"

	"gonum.org/v1/gonum/spatial/r2"
)

// countSurface tracks lifecycle calls.
type countSurface struct {
	frames    int
	released  int
	onRelease func()
}

func (c *countSurface) Begin(w, h int, bg color.RGBA)                                 { c.frames++ }
func (c *countSurface) FillCircle(p r2.Vec, radius float64, col color.RGBA)           {}
func (c *countSurface) StrokeCircle(p r2.Vec, radius, lw float64, col color.RGBA)     {}
func (c *countSurface) StrokeCubic(p0, c1, c2, p1 r2.Vec, lw float64, col color.RGBA) {}
func (c *countSurface) Label(text string, p r2.Vec, scale float64, col color.RGBA)    {}
func (c *countSurface) Flush() error                                                  { return nil }
func (c *countSurface) Release() error {
	c.released++
	if c.onRelease != nil {
		c.onRelease()
	}
	return nil
}

func testIndex() model.ContentIndex {
	return model.ContentIndex{
		"focus": {Title: "Focus", Region: "logical", Links: []string{"next"}},
		"next":  {Title: "Next", Tags: []string{"go"}},
	}
}

func newEngine(surface render.Surface, onNavigate func(string)) *Engine {
	return NewEngine(EngineOptions{
		Index:      testIndex(),
		FocalID:    "focus",
		Config:     config.DefaultConfig(),
		Surface:    surface,
		Width:      1000,
		Height:     800,
		Seed:       11,
		OnNavigate: onNavigate,
	})
}

func TestEngineAssembly(t *testing.T) {
	e := newEngine(&countSurface{}, nil)
	if e.Graph.Focal != 0 {
		t.Fatalf("Focal = %d, want 0", e.Graph.Focal)
	}
	// Depth 1 around focus: focus, next, tags/go (via next at depth 2 is
	// excluded; the tag hangs off next).
	if e.Graph.NodeByID("next") < 0 {
		t.Fatal("neighbor missing")
	}
	if e.View.Scale != config.DefaultConfig().Scale {
		t.Fatalf("initial scale = %v, want %v", e.View.Scale, config.DefaultConfig().Scale)
	}
	if err := e.Step(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
}

func TestEngineTagRegionsResolved(t *testing.T) {
	index := model.ContentIndex{
		"focus": {Region: "creative", Tags: []string{"art"}},
	}
	e := NewEngine(EngineOptions{
		Index: index, FocalID: "focus", Config: config.DefaultConfig(),
		Surface: &countSurface{}, Width: 1000, Height: 800, Seed: 1,
	})
	tag := e.Graph.NodeByID(model.TagPrefix + "art")
	if tag < 0 {
		t.Fatal("tag node missing")
	}
	if got := e.Graph.Nodes[tag].Region; got != "creative" {
		t.Fatalf("tag region = %q, want inherited %q", got, "creative")
	}
}

func TestEngineStepDrawsFrames(t *testing.T) {
	sur := &countSurface{}
	e := newEngine(sur, nil)
	for i := 0; i < 3; i++ {
		if err := e.Step(16 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	if sur.frames != 3 {
		t.Fatalf("frames = %d, want 3", sur.frames)
	}
	e.Teardown()
	if err := e.Step(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if sur.frames != 3 {
		t.Fatal("torn-down engine still drew a frame")
	}
}

func TestTeardownIdempotent(t *testing.T) {
	sur := &countSurface{}
	e := newEngine(sur, nil)
	e.Teardown()
	e.Teardown()
	if sur.released != 1 {
		t.Fatalf("Release called %d times, want 1", sur.released)
	}
}

func TestRegistryTearsDownBeforeRemount(t *testing.T) {
	r := NewRegistry()
	first := &countSurface{}
	second := &countSurface{}

	r.Mount("main", newEngine(first, nil))
	if first.released != 0 {
		t.Fatal("fresh mount released its own surface")
	}
	r.Mount("main", newEngine(second, nil))
	if first.released != 1 {
		t.Fatal("remount did not tear down the previous instance")
	}
	if second.released != 0 {
		t.Fatal("remount released the new instance")
	}

	r.Unmount("main")
	if second.released != 1 {
		t.Fatal("unmount did not tear down")
	}
	if r.Get("main") != nil {
		t.Fatal("container still occupied after unmount")
	}
}

func TestMountTeardownPrecedesInstall(t *testing.T) {
	r := NewRegistry()
	first := &countSurface{}
	r.Mount("main", newEngine(first, nil))

	replacement := newEngine(&countSurface{}, nil)
	var visible *Engine
	first.onRelease = func() { visible = r.Get("main") }
	r.Mount("main", replacement)
	if visible == replacement {
		t.Fatal("replacement installed before the previous instance was torn down")
	}
	if r.Get("main") != replacement {
		t.Fatal("replacement not installed after teardown")
	}
}

func TestRegistryContainersIndependent(t *testing.T) {
	r := NewRegistry()
	a := &countSurface{}
	b := &countSurface{}
	r.Mount("a", newEngine(a, nil))
	r.Mount("b", newEngine(b, nil))
	r.Mount("a", newEngine(&countSurface{}, nil))
	if b.released != 0 {
		t.Fatal("remounting one container tore down another")
	}
	r.TeardownAll()
	if a.released != 1 || b.released != 1 {
		t.Fatal("TeardownAll missed an instance")
	}
	if r.Get("a") != nil || r.Get("b") != nil {
		t.Fatal("containers still occupied after TeardownAll")
	}
}

func TestThemeChangeRemountsEveryContainer(t *testing.T) {
	r := NewRegistry()
	a := &countSurface{}
	b := &countSurface{}
	r.Mount("a", newEngine(a, nil))
	r.Mount("b", newEngine(b, nil))

	fresh := map[string]*countSurface{}
	r.ThemeChange(func(container string) *Engine {
		sur := &countSurface{}
		fresh[container] = sur
		return newEngine(sur, nil)
	})

	if a.released != 1 || b.released != 1 {
		t.Fatal("theme change did not tear down the old instances")
	}
	for name, sur := range fresh {
		if sur.released != 0 {
			t.Fatalf("replacement in %q released prematurely", name)
		}
		if r.Get(name) == nil {
			t.Fatalf("container %q empty after theme change", name)
		}
	}
}

func TestNavigationRecordsVisitAndNotifiesHost(t *testing.T) {
	vis := visited.Load(filepath.Join(t.TempDir(), "visited.json"))
	var navigated []string
	e := NewEngine(EngineOptions{
		Index:      testIndex(),
		FocalID:    "focus",
		Config:     config.DefaultConfig(),
		Surface:    &countSurface{},
		Width:      1000,
		Height:     800,
		Seed:       11,
		Visited:    vis,
		OnNavigate: func(id string) { navigated = append(navigated, id) },
	})

	clock := time.Unix(1000, 0)
	e.Controller.Now = func() time.Time { return clock }

	idx := e.Graph.NodeByID("next")
	half := r2.Vec{X: 500, Y: 400}
	p := e.View.ToScreen(r2.Add(e.Sim.Body(idx).Pos, half))
	e.Controller.Move(p)
	e.Controller.Press(p)
	clock = clock.Add(50 * time.Millisecond)
	e.Controller.Release(p)

	if len(navigated) != 1 || navigated[0] != "next" {
		t.Fatalf("navigated = %v, want [next]", navigated)
	}
	if !vis.Contains("next") {
		t.Fatal("visited set not updated before host callback")
	}
}

func TestTickerRunsAndCancels(t *testing.T) {
	var steps atomic.Int64
	tk := NewTicker(time.Millisecond, func(dt time.Duration) error {
		steps.Add(1)
		return nil
	})
	tk.Start()
	deadline := time.Now().Add(2 * time.Second)
	for steps.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	tk.Cancel()
	if steps.Load() < 3 {
		t.Fatalf("only %d steps before deadline", steps.Load())
	}
	after := steps.Load()
	time.Sleep(20 * time.Millisecond)
	if steps.Load() != after {
		t.Fatal("ticker kept stepping after Cancel")
	}
	// Cancel is idempotent.
	tk.Cancel()
}

func TestTickerStopsOnError(t *testing.T) {
	wantErr := errSentinel{}
	var steps atomic.Int64
	tk := NewTicker(time.Millisecond, func(dt time.Duration) error {
		steps.Add(1)
		return wantErr
	})
	tk.Start()
	deadline := time.Now().Add(2 * time.Second)
	for tk.Err() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if tk.Err() != wantErr {
		t.Fatalf("Err = %v, want sentinel", tk.Err())
	}
	if steps.Load() != 1 {
		t.Fatalf("steps = %d after error, want 1", steps.Load())
	}
	tk.Cancel()
}

type errSentinel struct{}

func (errSentinel) Error() string { return "boom" }
