// Package memstore is an in-memory implementation of store.Store for tests
// and small one-off runs.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/kegglink/pkg/kegglink/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu            sync.RWMutex
	nextSpeciesID int64
	species       map[int64]store.Species
	speciesByName map[string]int64
	pathways      map[string]store.Pathway
	proteins      map[string]store.Protein
	memberships   map[store.Membership]struct{}
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextSpeciesID: 1,
		species:       make(map[int64]store.Species),
		speciesByName: make(map[string]int64),
		pathways:      make(map[string]store.Pathway),
		proteins:      make(map[string]store.Protein),
		memberships:   make(map[store.Membership]struct{}),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertSpecies inserts or updates a species, keyed by name.
func (s *Store) UpsertSpecies(ctx context.Context, sp store.Species) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.speciesByName[sp.Name]
	if !ok {
		id = s.nextSpeciesID
		s.nextSpeciesID++
		s.speciesByName[sp.Name] = id
	}
	sp.ID = id
	s.species[id] = sp
	return id, nil
}

// UpsertPathway inserts or updates a pathway, keyed by identifier.
func (s *Store) UpsertPathway(ctx context.Context, p store.Pathway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		return nil
	}
	s.pathways[p.ID] = p
	return nil
}

// GetPathway returns a pathway by identifier.
func (s *Store) GetPathway(ctx context.Context, id string) (store.Pathway, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pathways[id]
	return p, ok, nil
}

// ListPathways returns all pathways sorted by identifier.
func (s *Store) ListPathways(ctx context.Context) ([]store.Pathway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Pathway, 0, len(s.pathways))
	for _, p := range s.pathways {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CountPathways returns the number of stored pathways.
func (s *Store) CountPathways(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.pathways)), nil
}

// UpsertProtein inserts or updates a protein, keyed by KEGG identifier.
func (s *Store) UpsertProtein(ctx context.Context, p store.Protein) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.KeggID == "" {
		return nil
	}
	s.proteins[p.KeggID] = p
	return nil
}

// GetProteinByKeggID returns a protein by KEGG identifier.
func (s *Store) GetProteinByKeggID(ctx context.Context, keggID string) (store.Protein, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proteins[keggID]
	return p, ok, nil
}

// GetProteinByHGNCSymbol returns the first protein carrying the symbol.
func (s *Store) GetProteinByHGNCSymbol(ctx context.Context, symbol string) (store.Protein, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if symbol == "" {
		return store.Protein{}, false, nil
	}
	// Deterministic: scan in sorted key order.
	keys := make([]string, 0, len(s.proteins))
	for key := range s.proteins {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if s.proteins[key].HGNCSymbol == symbol {
			return s.proteins[key], true, nil
		}
	}
	return store.Protein{}, false, nil
}

// ListProteins returns all proteins sorted by KEGG identifier.
func (s *Store) ListProteins(ctx context.Context) ([]store.Protein, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Protein, 0, len(s.proteins))
	for _, p := range s.proteins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KeggID < out[j].KeggID })
	return out, nil
}

// CountProteins returns the number of stored proteins.
func (s *Store) CountProteins(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.proteins)), nil
}

// AddMembership records a protein-pathway association; duplicates collapse.
func (s *Store) AddMembership(ctx context.Context, proteinID, pathwayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if proteinID == "" || pathwayID == "" {
		return nil
	}
	s.memberships[store.Membership{ProteinID: proteinID, PathwayID: pathwayID}] = struct{}{}
	return nil
}

// ListMemberships returns all memberships sorted by (protein, pathway).
func (s *Store) ListMemberships(ctx context.Context) ([]store.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Membership, 0, len(s.memberships))
	for m := range s.memberships {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProteinID != out[j].ProteinID {
			return out[i].ProteinID < out[j].ProteinID
		}
		return out[i].PathwayID < out[j].PathwayID
	})
	return out, nil
}
