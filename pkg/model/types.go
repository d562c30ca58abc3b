// Package model defines the graph data model shared by the builder,
// simulation and renderer.
package model

// IndexEntry is the per-node metadata supplied by the external content
// indexing step. Region is optional; an empty string means unclassified.
type IndexEntry struct {
	Title  string   `json:"title"`
	Tags   []string `json:"tags,omitempty"`
	Links  []string `json:"links,omitempty"`
	Region string   `json:"region,omitempty"`
}

// ContentIndex maps a node identifier to its metadata.
type ContentIndex map[string]IndexEntry

// NodeKind distinguishes content nodes from synthesized tag nodes.
type NodeKind int

const (
	KindContent NodeKind = iota
	KindTag
)

// TagPrefix namespaces synthesized tag-node identifiers so they can never
// collide with content identifiers.
const TagPrefix = "tags/"

// Node is one vertex of the rendered graph. Idx is the node's stable
// arena index; simulation bodies and render wrappers are addressed by the
// same index so no identity lookups happen per frame.
type Node struct {
	Idx    int      `json:"-"`
	ID     string   `json:"id"`
	Title  string   `json:"title,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Region string   `json:"region,omitempty"`
	Kind   NodeKind `json:"-"`
}

// IsTag reports whether the node was synthesized from a tag.
func (n Node) IsTag() bool { return n.Kind == KindTag }

// Link is an ordered pair of node references. Both endpoints are
// guaranteed to exist in the extracted neighborhood; the builder drops
// everything else before the simulation sees it.
type Link struct {
	Source   int    `json:"-"`
	Target   int    `json:"-"`
	SourceID string `json:"source"`
	TargetID string `json:"target"`
}
