package region

import (
	"sort"

	"github.com/vanderheijden86/cortex/pkg/graph"
	"github.com/vanderheijden86/cortex/pkg/model"
)

// ResolveTags assigns each tag node the region held by the majority of
// content nodes connected to it (by edge, either direction). Ties break
// toward the region encountered first while scanning the tag's neighbors;
// a tag with zero classified neighbors stays unclassified. Content nodes
// keep their externally supplied region unchanged.
func ResolveTags(g *graph.Graph) {
	for i := range g.Nodes {
		if g.Nodes[i].Kind != model.KindTag {
			continue
		}
		g.Nodes[i].Region = majorityRegion(g, i)
	}
}

func majorityRegion(g *graph.Graph, tag int) string {
	counts := make(map[string]int)
	var order []string
	for _, ni := range g.Neighbors(tag) {
		n := g.Nodes[ni]
		if n.Kind != model.KindContent || n.Region == "" {
			continue
		}
		if _, seen := counts[n.Region]; !seen {
			order = append(order, n.Region)
		}
		counts[n.Region]++
	}
	if len(order) == 0 {
		return ""
	}
	// Stable sort keeps first-encounter order among equal counts.
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	return order[0]
}
