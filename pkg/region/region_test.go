package region

import (
	"testing"

	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/model"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestForNameFallsBack(t *testing.T) {
	if ForName("logical").Name != "logical" {
		t.Fatal("known region not resolved")
	}
	if ForName("").Name != "default" {
		t.Fatal("empty region should fall back to default")
	}
	if ForName("bogus").Name != "default" {
		t.Fatal("unknown region should fall back to default")
	}
}

func TestTargetHemisphereShift(t *testing.T) {
	w, h := 1000.0, 800.0
	left := Target(ForName("logical"), w, h)
	if left.X != ForName("logical").Pos.X*w-HemisphereShift {
		t.Fatalf("left anchor X = %v, shift not applied", left.X)
	}
	right := Target(ForName("creative"), w, h)
	if right.X != ForName("creative").Pos.X*w+HemisphereShift {
		t.Fatalf("right anchor X = %v, shift not applied", right.X)
	}
	center := Target(Default(), w, h)
	if center.X != Default().Pos.X*w {
		t.Fatalf("center anchor X = %v, must not shift", center.X)
	}
}

func TestSilhouetteContains(t *testing.T) {
	s := Silhouette{Width: 1000, Height: 800}
	frac := func(x, y float64) r2.Vec { return r2.Vec{X: x * 1000, Y: y * 800} }

	cases := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"left lobe center", frac(0.5-lobeOffsetX, lobeCenterY), true},
		{"right lobe center", frac(0.5+lobeOffsetX, lobeCenterY), true},
		{"midline between lobes", frac(0.5, lobeCenterY), true},
		{"stem", frac(0.5, 0.80), true},
		{"stem edge", frac(0.5 - stemHalfW, stemTop), true},
		{"top center notch", frac(0.5, 0.26), false},
		{"above everything", frac(0.5, 0.02), false},
		{"top left corner", frac(0.02, 0.02), false},
		{"bottom right corner", frac(0.98, 0.98), false},
		{"left of stem below lobes", frac(0.30, 0.85), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Contains(tc.p); got != tc.want {
				t.Fatalf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestSilhouetteDegenerate(t *testing.T) {
	if (Silhouette{}).Contains(r2.Vec{X: 1, Y: 1}) {
		t.Fatal("zero-sized silhouette contains nothing")
	}
}

// buildTagged assembles a graph where one tag connects to content nodes
// with the given regions.
func buildTagged(t *testing.T, regions ...string) *graph.Graph {
	t.Helper()
	index := model.ContentIndex{}
	for i, r := range regions {
		id := string(rune('a' + i))
		index[id] = model.IndexEntry{Region: r, Tags: []string{"shared"}}
	}
	g := graph.Build(index, "a", graph.Options{Depth: -1, ShowTags: true})
	if g.NodeByID(model.TagPrefix+"shared") < 0 {
		t.Fatal("tag node missing from fixture")
	}
	return g
}

func TestResolveTagsMajority(t *testing.T) {
	g := buildTagged(t, "logical", "logical", "creative")
	ResolveTags(g)
	tag := g.NodeByID(model.TagPrefix + "shared")
	if got := g.Nodes[tag].Region; got != "logical" {
		t.Fatalf("tag region = %q, want majority %q", got, "logical")
	}
}

func TestResolveTagsTieBreaksFirstEncounter(t *testing.T) {
	// One vote each; the region of the neighbor scanned first wins. Links
	// are emitted in sorted index order, so "a" (creative) comes first.
	g := buildTagged(t, "creative", "logical")
	ResolveTags(g)
	tag := g.NodeByID(model.TagPrefix + "shared")
	if got := g.Nodes[tag].Region; got != "creative" {
		t.Fatalf("tag region = %q, want first-encounter %q", got, "creative")
	}
}

func TestResolveTagsUnclassifiedNeighbors(t *testing.T) {
	g := buildTagged(t, "", "")
	ResolveTags(g)
	tag := g.NodeByID(model.TagPrefix + "shared")
	if got := g.Nodes[tag].Region; got != "" {
		t.Fatalf("tag region = %q, want unclassified", got)
	}
}

func TestResolveTagsLeavesContentAlone(t *testing.T) {
	g := buildTagged(t, "practical", "reflective")
	ResolveTags(g)
	if got := g.Nodes[g.NodeByID("a")].Region; got != "practical" {
		t.Fatalf("content region rewritten to %q", got)
	}
}
