// Package store defines the persistence contract for populated KEGG entities.
// Population runs are full rebuilds: callers write pathways, proteins, and
// membership pairs once per run and read them back to build the relation
// index.
package store

import "context"

// Store is the persistence interface for pathways, proteins, and their
// membership pairs.
type Store interface {
	Close() error

	// Species
	UpsertSpecies(ctx context.Context, s Species) (int64, error)

	// Pathways
	UpsertPathway(ctx context.Context, p Pathway) error
	GetPathway(ctx context.Context, id string) (Pathway, bool, error)
	ListPathways(ctx context.Context) ([]Pathway, error)
	CountPathways(ctx context.Context) (int64, error)

	// Proteins
	UpsertProtein(ctx context.Context, p Protein) error
	GetProteinByKeggID(ctx context.Context, keggID string) (Protein, bool, error)
	GetProteinByHGNCSymbol(ctx context.Context, symbol string) (Protein, bool, error)
	ListProteins(ctx context.Context) ([]Protein, error)
	CountProteins(ctx context.Context) (int64, error)

	// Memberships
	AddMembership(ctx context.Context, proteinID, pathwayID string) error
	ListMemberships(ctx context.Context) ([]Membership, error)
}

// Species is the organism a set of pathways belongs to.
type Species struct {
	ID         int64
	Name       string
	TaxonomyID string
}

// Pathway is one stored pathway. ID is the canonical identifier without the
// "path:" prefix.
type Pathway struct {
	ID         string
	Name       string
	Definition string
	SpeciesID  int64
}

// Protein is one stored protein with its cross-reference identifiers. Any of
// the cross-references may be empty when the source data or the resolvers
// could not supply them.
type Protein struct {
	KeggID     string
	EntrezID   string
	HGNCID     string
	HGNCSymbol string
	UniProtID  string
}

// Membership is one stored protein-pathway association.
type Membership struct {
	ProteinID string
	PathwayID string
}
