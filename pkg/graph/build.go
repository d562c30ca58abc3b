// Package graph builds the bounded node/link graph around a focal node.
//
// The builder consumes the external content index, optionally synthesizes
// tag nodes, extracts a depth-bounded neighborhood with a sentinel-queue
// BFS, and exposes adjacency and degree through a gonum undirected graph
// so collision radii and traversal share one structure.
package graph

import (
	"math"
	"sort"

	"github.com/vanderheijden86/cortex/pkg/model"

	"gonum.org/v1/gonum/graph/simple"
)

// Options controls neighborhood extraction.
type Options struct {
	// Depth bounds the BFS around the focal node in undirected hops.
	// A negative depth means no limit: the whole graph is included.
	Depth int
	// ShowTags enables tag-node synthesis: one node per distinct tag
	// plus an edge from each content node to each of its tags.
	ShowTags bool
	// RemoveTags lists tags excluded from synthesis.
	RemoveTags []string
}

// Graph is the extracted neighborhood. Nodes are arena-indexed; Links
// reference nodes by arena index. Focal is -1 when the focal node was
// absent from the index (the graph is then empty).
type Graph struct {
	Nodes []model.Node
	Links []model.Link
	Focal int

	byID   map[string]int
	degree []int
}

// NodeByID returns the arena index for id, or -1.
func (g *Graph) NodeByID(id string) int {
	if i, ok := g.byID[id]; ok {
		return i
	}
	return -1
}

// Degree returns the undirected degree of the node at arena index i.
func (g *Graph) Degree(i int) int {
	if i < 0 || i >= len(g.degree) {
		return 0
	}
	return g.degree[i]
}

// Neighbors returns the arena indices adjacent to i, in link order.
func (g *Graph) Neighbors(i int) []int {
	var out []int
	for _, l := range g.Links {
		switch i {
		case l.Source:
			out = append(out, l.Target)
		case l.Target:
			out = append(out, l.Source)
		}
	}
	return out
}

// edge is an ID-level edge used before arena indices exist.
type edge struct {
	source, target string
}

// Build extracts the neighborhood of focalID from the index. A focal node
// missing from the index yields an empty graph rather than an error; the
// caller renders nothing instead of failing.
func Build(index model.ContentIndex, focalID string, opts Options) *Graph {
	removed := make(map[string]bool, len(opts.RemoveTags))
	for _, t := range opts.RemoveTags {
		removed[t] = true
	}

	// Deterministic iteration order over the index.
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Global edge list: outgoing links filtered to ids present in the
	// index (dangling links dropped silently), plus content->tag edges
	// when tag linking is on.
	var edges []edge
	tagSeen := make(map[string]bool)
	var tagIDs []string
	for _, id := range ids {
		entry := index[id]
		for _, dst := range entry.Links {
			if _, ok := index[dst]; !ok {
				continue
			}
			edges = append(edges, edge{source: id, target: dst})
		}
		if opts.ShowTags {
			for _, tag := range entry.Tags {
				if removed[tag] {
					continue
				}
				tagID := model.TagPrefix + tag
				if !tagSeen[tagID] {
					tagSeen[tagID] = true
					tagIDs = append(tagIDs, tagID)
				}
				edges = append(edges, edge{source: id, target: tagID})
			}
		}
	}

	g := &Graph{Focal: -1, byID: make(map[string]int)}

	_, focalExists := index[focalID]
	keep := extract(index, focalID, focalExists, ids, tagIDs, edges, opts.Depth)
	if len(keep) == 0 {
		return g
	}

	// Arena construction in discovery order.
	for _, id := range keep {
		n := model.Node{Idx: len(g.Nodes), ID: id}
		if entry, ok := index[id]; ok {
			n.Title = entry.Title
			n.Tags = entry.Tags
			n.Region = entry.Region
			n.Kind = model.KindContent
		} else {
			n.Title = id[len(model.TagPrefix):]
			n.Kind = model.KindTag
		}
		g.byID[id] = n.Idx
		g.Nodes = append(g.Nodes, n)
	}
	if i, ok := g.byID[focalID]; ok {
		g.Focal = i
	}

	// Final link set: both endpoints must have survived extraction.
	for _, e := range edges {
		si, ok := g.byID[e.source]
		if !ok {
			continue
		}
		ti, ok := g.byID[e.target]
		if !ok {
			continue
		}
		g.Links = append(g.Links, model.Link{
			Source: si, Target: ti,
			SourceID: e.source, TargetID: e.target,
		})
	}

	g.computeDegree()
	return g
}

// extract returns the surviving node IDs in discovery order. depth < 0
// means the full graph (plus every tag node).
func extract(index model.ContentIndex, focalID string, focalExists bool, ids, tagIDs []string, edges []edge, depth int) []string {
	if depth < 0 {
		out := make([]string, 0, len(ids)+len(tagIDs))
		out = append(out, ids...)
		out = append(out, tagIDs...)
		return out
	}
	if !focalExists {
		return nil
	}

	// Undirected adjacency at the ID level.
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.source] = append(adj[e.source], e.target)
		adj[e.target] = append(adj[e.target], e.source)
	}

	// BFS with a sentinel marking frontier boundaries: each time the
	// sentinel is dequeued, the remaining depth budget is decremented and
	// the sentinel is re-enqueued. Traversal stops when the frontier
	// empties or the budget drops below zero. Nodes join the neighborhood
	// when dequeued, so a frontier cut off by the budget is excluded even
	// though its members were already discovered.
	const sentinel = "__frontier__"
	enqueued := map[string]bool{focalID: true}
	var order []string
	queue := []string{focalID, sentinel}
	budget := depth
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == sentinel {
			budget--
			if budget < 0 || len(queue) == 0 {
				break
			}
			queue = append(queue, sentinel)
			continue
		}
		order = append(order, cur)
		for _, next := range adj[cur] {
			if enqueued[next] {
				continue
			}
			enqueued[next] = true
			queue = append(queue, next)
		}
	}
	return order
}

// computeDegree fills the degree arena via a gonum undirected graph.
// Self-links are counted directly since simple graphs reject them.
func (g *Graph) computeDegree() {
	g.degree = make([]int, len(g.Nodes))
	ug := simple.NewUndirectedGraph()
	for i := range g.Nodes {
		ug.AddNode(simple.Node(int64(i)))
	}
	for _, l := range g.Links {
		if l.Source == l.Target {
			g.degree[l.Source]++
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(int64(l.Source)), simple.Node(int64(l.Target))))
	}
	for i := range g.Nodes {
		g.degree[i] += ug.From(int64(i)).Len()
	}
}

// Radius returns the node circle radius at arena index i: a base radius
// growing with the square root of degree.
func (g *Graph) Radius(i int) float64 {
	return 4 + 2*math.Sqrt(float64(g.Degree(i)))
}
