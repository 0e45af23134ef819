package graph

// Memory is an in-memory Graph. Nodes and edges keep insertion order, which
// keeps enrichment output deterministic for a given input.
type Memory struct {
	nodes   []Node
	edges   []Edge
	nodeSet map[Node]struct{}
	edgeSet map[Edge]struct{}
}

// New creates an empty in-memory graph.
func New() *Memory {
	return &Memory{
		nodeSet: make(map[Node]struct{}),
		edgeSet: make(map[Edge]struct{}),
	}
}

// Nodes returns a copy of the node list in insertion order.
func (g *Memory) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Memory) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// HasNode reports whether the node is present.
func (g *Memory) HasNode(n Node) bool {
	_, ok := g.nodeSet[n]
	return ok
}

// AddNode inserts a node; adding an existing node is a no-op.
func (g *Memory) AddNode(n Node) {
	if _, ok := g.nodeSet[n]; ok {
		return
	}
	g.nodeSet[n] = struct{}{}
	g.nodes = append(g.nodes, n)
}

// HasEdge reports whether the edge is present.
func (g *Memory) HasEdge(e Edge) bool {
	_, ok := g.edgeSet[e]
	return ok
}

// AddEdge inserts an edge, adding its endpoints first if absent. Adding an
// existing edge is a no-op.
func (g *Memory) AddEdge(e Edge) {
	if _, ok := g.edgeSet[e]; ok {
		return
	}
	g.AddNode(e.Source)
	g.AddNode(e.Target)
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
}

// NumNodes returns the node count.
func (g *Memory) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count.
func (g *Memory) NumEdges() int { return len(g.edges) }
