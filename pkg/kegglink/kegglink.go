// Package kegglink ties the parsing, storage, and enrichment layers together.
// A Manager drives one population run: it pulls the pathway and membership
// tables plus the per-protein description blocks from a Source, persists the
// results through a store.Store, and builds the relation index that the
// enrichment operations consume.
package kegglink

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/cognicore/kegglink/pkg/kegglink/config"
	"github.com/cognicore/kegglink/pkg/kegglink/enrich"
	"github.com/cognicore/kegglink/pkg/kegglink/flatfile"
	"github.com/cognicore/kegglink/pkg/kegglink/internalerr"
	"github.com/cognicore/kegglink/pkg/kegglink/relation"
	"github.com/cognicore/kegglink/pkg/kegglink/store"
	"github.com/cognicore/kegglink/pkg/kegglink/tabfile"
)

// EntityResult is one fetched entity description block. Err is set when the
// fetch itself failed; Lines are the raw block lines otherwise.
type EntityResult struct {
	ID    string
	Lines []string
	Err   error
}

// Source supplies the raw tables and entity blocks for a population run. The
// Entities channel is closed after the last result; results may arrive in any
// order.
type Source interface {
	Pathways(ctx context.Context) ([]tabfile.PathwayRow, error)
	Memberships(ctx context.Context) ([]tabfile.MembershipRow, error)
	Entities(ctx context.Context, ids []string) <-chan EntityResult
}

// Options configures a Manager.
type Options struct {
	Store  store.Store
	Source Source

	Organism config.Organism

	// Resources is the DBLINKS allow-list applied when projecting entity
	// blocks into protein cross-references.
	Resources []string

	// EntrezToHGNC and HGNCToSymbol resolve cross-references the entity
	// blocks do not carry themselves. Either map may be nil.
	EntrezToHGNC map[string]string
	HGNCToSymbol map[string]string

	Logger *log.Logger
}

// Manager drives population runs and builds enrichers over the stored data.
type Manager struct {
	store        store.Store
	source       Source
	organism     config.Organism
	resources    []string
	entrezToHGNC map[string]string
	hgncToSymbol map[string]string
	logger       *log.Logger
}

// New creates a Manager. The store is required; the source may be nil when the
// Manager is only used to read back an already populated store.
func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store is required", internalerr.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:        opts.Store,
		source:       opts.Source,
		organism:     opts.Organism,
		resources:    opts.Resources,
		entrezToHGNC: opts.EntrezToHGNC,
		hgncToSymbol: opts.HGNCToSymbol,
		logger:       logger,
	}, nil
}

// PopulateReport summarizes one population run.
type PopulateReport struct {
	RunID           string
	Pathways        int
	Proteins        int
	Memberships     int
	FailedEntities  int
	MissingPathways []string
}

// Populate runs a full population: species, pathways, memberships, and the
// per-protein entity blocks. Entities that fail to download or parse are
// logged, counted, and skipped; they never abort the run. The returned index
// is built from the data that made it into the store.
func (m *Manager) Populate(ctx context.Context) (*relation.Index, PopulateReport, error) {
	var report PopulateReport

	if m.source == nil {
		return nil, report, fmt.Errorf("%w: source is required to populate", internalerr.ErrInvalidConfig)
	}

	speciesID, err := m.store.UpsertSpecies(ctx, store.Species{
		Name:       m.organism.Name,
		TaxonomyID: m.organism.TaxonomyID,
	})
	if err != nil {
		return nil, report, fmt.Errorf("upsert species: %w", err)
	}

	pathwayRows, err := m.source.Pathways(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("fetch pathways: %w", err)
	}
	pathwayIDs := make([]string, 0, len(pathwayRows))
	for _, row := range pathwayRows {
		id := relation.NormalizeID(row.ID)
		if err := m.store.UpsertPathway(ctx, store.Pathway{
			ID:        id,
			Name:      row.Name,
			SpeciesID: speciesID,
		}); err != nil {
			return nil, report, fmt.Errorf("upsert pathway %s: %w", id, err)
		}
		pathwayIDs = append(pathwayIDs, id)
	}
	report.Pathways = len(pathwayIDs)

	membershipRows, err := m.source.Memberships(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("fetch memberships: %w", err)
	}
	pairs := make([]relation.MembershipPair, 0, len(membershipRows))
	proteinSet := make(map[string]struct{})
	for _, row := range membershipRows {
		pairs = append(pairs, relation.MembershipPair{
			ProteinID: row.ProteinID,
			PathwayID: relation.NormalizeID(row.PathwayID),
		})
		proteinSet[row.ProteinID] = struct{}{}
	}

	proteinIDs := make([]string, 0, len(proteinSet))
	for id := range proteinSet {
		proteinIDs = append(proteinIDs, id)
	}
	sort.Strings(proteinIDs)

	stored := make(map[string]struct{}, len(proteinIDs))
	for res := range m.source.Entities(ctx, proteinIDs) {
		if res.Err != nil {
			m.logger.Printf("fetch entity %s: %v", res.ID, res.Err)
			report.FailedEntities++
			continue
		}
		rec, err := flatfile.Parse(res.Lines)
		if err != nil {
			m.logger.Printf("parse entity %s: %v", res.ID, err)
			report.FailedEntities++
			continue
		}
		if err := m.store.UpsertProtein(ctx, m.buildProtein(res.ID, rec)); err != nil {
			return nil, report, fmt.Errorf("upsert protein %s: %w", res.ID, err)
		}
		stored[res.ID] = struct{}{}
		report.Proteins++
	}

	known := make(map[string]struct{}, len(pathwayIDs))
	for _, id := range pathwayIDs {
		known[id] = struct{}{}
	}
	for _, pair := range pairs {
		if _, ok := known[pair.PathwayID]; !ok {
			continue
		}
		if _, ok := stored[pair.ProteinID]; !ok {
			continue
		}
		if err := m.store.AddMembership(ctx, pair.ProteinID, pair.PathwayID); err != nil {
			return nil, report, fmt.Errorf("add membership %s/%s: %w", pair.ProteinID, pair.PathwayID, err)
		}
		report.Memberships++
	}

	// The index only carries proteins that made it into the store, so reading
	// it back through Index gives the same answers.
	indexed := pairs[:0]
	for _, pair := range pairs {
		if _, ok := stored[pair.ProteinID]; ok {
			indexed = append(indexed, pair)
		}
	}
	idx, buildReport := relation.Build(pathwayIDs, indexed)
	report.RunID = buildReport.RunID
	report.MissingPathways = buildReport.MissingPathways
	for _, id := range report.MissingPathways {
		m.logger.Printf("membership references unknown pathway %s", id)
	}
	return idx, report, nil
}

// buildProtein derives the stored protein from one parsed entity block. The
// Entrez identifier is the entity's own number; HGNC and UniProt come from the
// projected DBLINKS, with the injected resolvers filling the gaps.
func (m *Manager) buildProtein(keggID string, rec flatfile.Record) store.Protein {
	p := store.Protein{KeggID: keggID}
	if len(rec.Entry) > 0 {
		p.EntrezID = rec.Entry[0]
	}

	attrs, err := flatfile.Project(rec, flatfile.SectionDBLinks, m.resources)
	if err == nil {
		p.HGNCID = attrs["hgnc_id"]
		p.UniProtID = attrs["uniprot_id"]
	} else if !errors.Is(err, internalerr.ErrMissingSection) {
		m.logger.Printf("project entity %s: %v", keggID, err)
	}

	if p.HGNCID == "" && p.EntrezID != "" {
		p.HGNCID = m.entrezToHGNC[p.EntrezID]
	}
	if p.HGNCID == "" {
		m.logger.Printf("no hgnc id resolved for %s", keggID)
	} else {
		p.HGNCSymbol = m.hgncToSymbol[p.HGNCID]
	}
	return p
}

// Index rebuilds the relation index from the stored pathways and memberships.
func (m *Manager) Index(ctx context.Context) (*relation.Index, relation.BuildReport, error) {
	pathways, err := m.store.ListPathways(ctx)
	if err != nil {
		return nil, relation.BuildReport{}, fmt.Errorf("list pathways: %w", err)
	}
	memberships, err := m.store.ListMemberships(ctx)
	if err != nil {
		return nil, relation.BuildReport{}, fmt.Errorf("list memberships: %w", err)
	}

	pathwayIDs := make([]string, 0, len(pathways))
	for _, p := range pathways {
		pathwayIDs = append(pathwayIDs, p.ID)
	}
	pairs := make([]relation.MembershipPair, 0, len(memberships))
	for _, mb := range memberships {
		pairs = append(pairs, relation.MembershipPair{ProteinID: mb.ProteinID, PathwayID: mb.PathwayID})
	}

	idx, buildReport := relation.Build(pathwayIDs, pairs)
	return idx, buildReport, nil
}

// Enricher builds an enrich.Enricher over the stored data.
func (m *Manager) Enricher(ctx context.Context) (*enrich.Enricher, error) {
	idx, _, err := m.Index(ctx)
	if err != nil {
		return nil, err
	}

	proteins, err := m.store.ListProteins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list proteins: %w", err)
	}
	pathways, err := m.store.ListPathways(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pathways: %w", err)
	}

	proteinRefs := make([]enrich.ProteinRef, 0, len(proteins))
	for _, p := range proteins {
		proteinRefs = append(proteinRefs, enrich.ProteinRef{KeggID: p.KeggID, Symbol: p.HGNCSymbol})
	}
	pathwayRefs := make([]enrich.PathwayRef, 0, len(pathways))
	for _, p := range pathways {
		pathwayRefs = append(pathwayRefs, enrich.PathwayRef{ID: p.ID, Name: p.Name})
	}

	return enrich.New(enrich.Options{
		Index:    idx,
		Proteins: proteinRefs,
		Pathways: pathwayRefs,
	}), nil
}

// Summary holds the row counts of a populated store.
type Summary struct {
	Pathways    int64
	Proteins    int64
	Memberships int64
}

// Summarize returns the row counts of the store.
func (m *Manager) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	var err error
	if s.Pathways, err = m.store.CountPathways(ctx); err != nil {
		return s, err
	}
	if s.Proteins, err = m.store.CountProteins(ctx); err != nil {
		return s, err
	}
	memberships, err := m.store.ListMemberships(ctx)
	if err != nil {
		return s, err
	}
	s.Memberships = int64(len(memberships))
	return s, nil
}

// PathwaySizes returns the member count per stored pathway.
func (m *Manager) PathwaySizes(ctx context.Context) (map[string]int, error) {
	memberships, err := m.store.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]int)
	for _, mb := range memberships {
		sizes[mb.PathwayID]++
	}
	return sizes, nil
}

// AllHGNCSymbols returns the sorted distinct gene symbols of stored proteins.
func (m *Manager) AllHGNCSymbols(ctx context.Context) ([]string, error) {
	proteins, err := m.store.ListProteins(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range proteins {
		if p.HGNCSymbol == "" {
			continue
		}
		if _, dup := seen[p.HGNCSymbol]; dup {
			continue
		}
		seen[p.HGNCSymbol] = struct{}{}
		out = append(out, p.HGNCSymbol)
	}
	sort.Strings(out)
	return out, nil
}
