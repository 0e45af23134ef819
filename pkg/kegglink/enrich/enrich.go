// Package enrich extends caller-supplied heterogeneous graphs with known
// pathway-protein memberships. All operations are additive: nodes and edges
// are only ever inserted, and every insertion is checked against the graph
// first, so repeating an operation changes nothing.
package enrich

import (
	"fmt"

	"github.com/cognicore/kegglink/pkg/kegglink/graph"
	"github.com/cognicore/kegglink/pkg/kegglink/internalerr"
	"github.com/cognicore/kegglink/pkg/kegglink/relation"
)

// Default node namespaces. Protein and gene nodes are keyed by their external
// gene symbol; pathway nodes by their display name.
const (
	DefaultGeneNamespace    = "hgnc"
	DefaultPathwayNamespace = "kegg"
)

// ProteinRef ties a protein identifier to its external symbol. Proteins
// without a resolvable symbol are still usable: their node name falls back to
// the identifier itself.
type ProteinRef struct {
	KeggID string
	Symbol string
}

// PathwayRef ties a pathway identifier to its display name.
type PathwayRef struct {
	ID   string
	Name string
}

// Options configures an Enricher. The resolvers are injected as plain lists
// so enrichment stays a pure function of its inputs.
type Options struct {
	Index    *relation.Index
	Proteins []ProteinRef
	Pathways []PathwayRef

	// GeneNamespace and PathwayNamespace override the node namespaces the
	// enricher matches and emits; empty values select the defaults.
	GeneNamespace    string
	PathwayNamespace string
}

// Enricher resolves graph nodes against the membership index and adds the
// nodes and edges implied by the memberships. It never mutates the index.
type Enricher struct {
	idx       *relation.Index
	geneNS    string
	pathwayNS string

	symbolToProtein map[string]string // external symbol -> protein id
	proteinSymbol   map[string]string // protein id -> external symbol
	nameToPathway   map[string]string // display name -> pathway id
	pathwayName     map[string]string // pathway id -> display name
}

// New creates an Enricher over a built index and the identifier resolvers.
func New(opts Options) *Enricher {
	e := &Enricher{
		idx:             opts.Index,
		geneNS:          opts.GeneNamespace,
		pathwayNS:       opts.PathwayNamespace,
		symbolToProtein: make(map[string]string, len(opts.Proteins)),
		proteinSymbol:   make(map[string]string, len(opts.Proteins)),
		nameToPathway:   make(map[string]string, len(opts.Pathways)),
		pathwayName:     make(map[string]string, len(opts.Pathways)),
	}
	if e.geneNS == "" {
		e.geneNS = DefaultGeneNamespace
	}
	if e.pathwayNS == "" {
		e.pathwayNS = DefaultPathwayNamespace
	}
	for _, p := range opts.Proteins {
		if p.Symbol != "" {
			e.symbolToProtein[p.Symbol] = p.KeggID
			e.proteinSymbol[p.KeggID] = p.Symbol
		}
	}
	for _, pw := range opts.Pathways {
		id := relation.NormalizeID(pw.ID)
		if pw.Name != "" {
			e.nameToPathway[pw.Name] = id
			e.pathwayName[id] = pw.Name
		}
	}
	return e
}

// PathwaySubgraph builds a new graph holding one pathway node, one protein
// node per member, and one part-of edge per member. Asking for a pathway the
// index does not know is a caller error and returns ErrUnknownPathway.
func (e *Enricher) PathwaySubgraph(pathwayID string) (*graph.Memory, error) {
	id := relation.NormalizeID(pathwayID)
	if !e.idx.HasPathway(id) {
		return nil, fmt.Errorf("pathway %q: %w", pathwayID, internalerr.ErrUnknownPathway)
	}

	g := graph.New()
	pathwayNode := e.pathwayNode(id)
	g.AddNode(pathwayNode)
	for _, proteinID := range e.idx.Proteins(id) {
		proteinNode := e.proteinNode(proteinID)
		g.AddNode(proteinNode)
		g.AddEdge(graph.Edge{Source: proteinNode, Target: pathwayNode, Relation: graph.PartOf})
	}
	return g, nil
}

// Pathways adds, for every protein or gene node resolvable by external
// symbol, the pathway nodes it belongs to and a part-of edge per membership.
// Unresolvable nodes are skipped. Calling twice adds nothing the second time.
func (e *Enricher) Pathways(g graph.Graph) {
	for _, node := range g.Nodes() {
		if node.Type != graph.Protein && node.Type != graph.Gene {
			continue
		}
		if node.Namespace != e.geneNS {
			continue
		}
		proteinID, ok := e.symbolToProtein[node.Name]
		if !ok {
			continue
		}
		for _, pathwayID := range e.idx.Pathways(proteinID) {
			pathwayNode := e.pathwayNode(pathwayID)
			if !g.HasNode(pathwayNode) {
				g.AddNode(pathwayNode)
			}
			edge := graph.Edge{Source: node, Target: pathwayNode, Relation: graph.PartOf}
			if !g.HasEdge(edge) {
				g.AddEdge(edge)
			}
		}
	}
}

// Proteins adds, for every pathway node resolvable by display name, the
// member proteins missing from the graph, each with a part-of edge to the
// pathway node. Members already present are left untouched.
func (e *Enricher) Proteins(g graph.Graph) {
	for _, node := range g.Nodes() {
		if node.Type != graph.Pathway || node.Namespace != e.pathwayNS {
			continue
		}
		pathwayID, ok := e.nameToPathway[node.Name]
		if !ok {
			continue
		}
		for _, proteinID := range e.idx.Proteins(pathwayID) {
			proteinNode := e.proteinNode(proteinID)
			if g.HasNode(proteinNode) {
				continue
			}
			g.AddNode(proteinNode)
			g.AddEdge(graph.Edge{Source: proteinNode, Target: node, Relation: graph.PartOf})
		}
	}
}

// proteinNode keys a protein by its external symbol, falling back to the
// protein identifier when no symbol resolved.
func (e *Enricher) proteinNode(proteinID string) graph.Node {
	name := e.proteinSymbol[proteinID]
	if name == "" {
		name = proteinID
	}
	return graph.Node{Type: graph.Protein, Namespace: e.geneNS, Name: name}
}

// pathwayNode keys a pathway by its display name, falling back to the
// identifier when the name is unknown.
func (e *Enricher) pathwayNode(pathwayID string) graph.Node {
	name := e.pathwayName[pathwayID]
	if name == "" {
		name = pathwayID
	}
	return graph.Node{Type: graph.Pathway, Namespace: e.pathwayNS, Name: name}
}
