// Package relation builds the bidirectional pathway-protein membership index
// used by graph enrichment. The index is built once per population run and is
// read-only afterwards, so concurrent readers need no locking.
package relation

import (
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"
)

// pathPrefix is the optional namespace prefix carried by pathway identifiers
// in the membership table ("path:hsa00030").
const pathPrefix = "path:"

// MembershipPair associates one protein identifier with one pathway
// identifier, as read from the membership table.
type MembershipPair struct {
	ProteinID string
	PathwayID string
}

// Index is a symmetric bipartite index between pathway and protein
// identifiers. Every edge is present in both directions.
type Index struct {
	byPathway map[string]map[string]struct{}
	byProtein map[string]map[string]struct{}
}

// BuildReport summarizes one index build. Lookup misses are reported here,
// never raised as errors: membership rows referencing unknown pathways are
// expected in partial data.
type BuildReport struct {
	RunID           string
	Pairs           int
	Edges           int
	MissingPathways []string
}

// NormalizeID strips the optional "path:" prefix from a pathway identifier.
func NormalizeID(id string) string {
	return strings.TrimPrefix(id, pathPrefix)
}

// Build constructs the index from the set of known pathway identifiers and
// the membership pairs. Pairs naming a pathway outside pathwayIDs are skipped
// and recorded in the report; duplicate pairs collapse to a single edge.
func Build(pathwayIDs []string, pairs []MembershipPair) (*Index, BuildReport) {
	known := make(map[string]struct{}, len(pathwayIDs))
	for _, id := range pathwayIDs {
		known[NormalizeID(id)] = struct{}{}
	}

	idx := &Index{
		byPathway: make(map[string]map[string]struct{}),
		byProtein: make(map[string]map[string]struct{}),
	}
	report := BuildReport{
		RunID: ulid.Make().String(),
		Pairs: len(pairs),
	}

	missed := make(map[string]struct{})
	for _, pair := range pairs {
		pathwayID := NormalizeID(pair.PathwayID)
		if _, ok := known[pathwayID]; !ok {
			if _, seen := missed[pathwayID]; !seen {
				missed[pathwayID] = struct{}{}
				report.MissingPathways = append(report.MissingPathways, pathwayID)
			}
			continue
		}
		if idx.insert(pathwayID, pair.ProteinID) {
			report.Edges++
		}
	}

	return idx, report
}

// insert adds one edge in both directions; it reports whether the edge was new.
func (x *Index) insert(pathwayID, proteinID string) bool {
	members, ok := x.byPathway[pathwayID]
	if !ok {
		members = make(map[string]struct{})
		x.byPathway[pathwayID] = members
	}
	if _, dup := members[proteinID]; dup {
		return false
	}
	members[proteinID] = struct{}{}

	pathways, ok := x.byProtein[proteinID]
	if !ok {
		pathways = make(map[string]struct{})
		x.byProtein[proteinID] = pathways
	}
	pathways[pathwayID] = struct{}{}
	return true
}

// HasPathway reports whether the pathway identifier is known to the index.
// The id may carry the "path:" prefix.
func (x *Index) HasPathway(id string) bool {
	_, ok := x.byPathway[NormalizeID(id)]
	return ok
}

// Proteins returns the sorted member proteins of a pathway. Unknown pathways
// yield an empty slice, never an error.
func (x *Index) Proteins(pathwayID string) []string {
	return sortedKeys(x.byPathway[NormalizeID(pathwayID)])
}

// Pathways returns the sorted pathways a protein belongs to. Unknown proteins
// yield an empty slice, never an error.
func (x *Index) Pathways(proteinID string) []string {
	return sortedKeys(x.byProtein[proteinID])
}

// PathwayIDs returns all pathway identifiers with at least one member, sorted.
func (x *Index) PathwayIDs() []string {
	return sortedKeys(x.byPathway)
}

// ProteinIDs returns all protein identifiers with at least one membership,
// sorted.
func (x *Index) ProteinIDs() []string {
	return sortedKeys(x.byProtein)
}

func sortedKeys[V any](set map[string]V) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
