// Package graph defines the heterogeneous graph contract consumed by the
// enrichment engine, plus an in-memory implementation. Nodes are identified
// by (type, namespace, name); edges carry a relation label. The enricher only
// ever adds to a graph, so the contract has no removal operations.
package graph

// NodeType classifies a node.
type NodeType string

// Node types understood by the enricher.
const (
	Protein NodeType = "protein"
	Gene    NodeType = "gene"
	Pathway NodeType = "pathway"
)

// Relation labels an edge.
type Relation string

// Edge relations.
const (
	Increases Relation = "increases"
	Decreases Relation = "decreases"
	PartOf    Relation = "partOf"
)

// Node is identified by its type, namespace, and name. Two nodes with equal
// fields are the same node.
type Node struct {
	Type      NodeType
	Namespace string
	Name      string
}

// Edge connects two nodes with a relation label. Edge identity includes the
// relation, so the same node pair may carry differently labeled edges.
type Edge struct {
	Source   Node
	Target   Node
	Relation Relation
}

// Graph is the caller-supplied heterogeneous graph. Implementations must make
// AddNode and AddEdge idempotent by node/edge identity; the enricher relies
// on that to stay idempotent itself.
type Graph interface {
	Nodes() []Node
	Edges() []Edge
	HasNode(n Node) bool
	AddNode(n Node)
	HasEdge(e Edge) bool
	AddEdge(e Edge)
}
