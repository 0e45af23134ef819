// Package sqlite is the SQLite-backed implementation of store.Store.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/cognicore/kegglink/pkg/kegglink/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS species (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE NOT NULL,
	taxonomy_id TEXT
);

CREATE TABLE IF NOT EXISTS pathways (
	id TEXT PRIMARY KEY,
	name TEXT,
	definition TEXT,
	species_id INTEGER,
	FOREIGN KEY(species_id) REFERENCES species(id)
);

CREATE TABLE IF NOT EXISTS proteins (
	kegg_id TEXT PRIMARY KEY,
	entrez_id TEXT,
	hgnc_id TEXT,
	hgnc_symbol TEXT,
	uniprot_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_proteins_hgnc_symbol ON proteins(hgnc_symbol);

CREATE TABLE IF NOT EXISTS memberships (
	protein_id TEXT NOT NULL,
	pathway_id TEXT NOT NULL,
	PRIMARY KEY(protein_id, pathway_id),
	FOREIGN KEY(protein_id) REFERENCES proteins(kegg_id) ON DELETE CASCADE,
	FOREIGN KEY(pathway_id) REFERENCES pathways(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertSpecies inserts or updates a species, keyed by name.
func (s *sqliteStore) UpsertSpecies(ctx context.Context, sp store.Species) (int64, error) {
	const stmt = `
INSERT INTO species (name, taxonomy_id)
VALUES (?, ?)
ON CONFLICT(name) DO UPDATE SET taxonomy_id=excluded.taxonomy_id
RETURNING id;
`
	var id int64
	if err := s.db.QueryRowContext(ctx, stmt, sp.Name, sp.TaxonomyID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertPathway inserts or updates a pathway, keyed by identifier.
func (s *sqliteStore) UpsertPathway(ctx context.Context, p store.Pathway) error {
	const stmt = `
INSERT INTO pathways (id, name, definition, species_id)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name=excluded.name,
	definition=excluded.definition,
	species_id=excluded.species_id;
`
	_, err := s.db.ExecContext(ctx, stmt, p.ID, p.Name, p.Definition, p.SpeciesID)
	return err
}

// GetPathway returns a pathway by identifier.
func (s *sqliteStore) GetPathway(ctx context.Context, id string) (store.Pathway, bool, error) {
	const stmt = `SELECT id, name, definition, species_id FROM pathways WHERE id=?`

	var p store.Pathway
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&p.ID, &p.Name, &p.Definition, &p.SpeciesID)
	if err == sql.ErrNoRows {
		return store.Pathway{}, false, nil
	}
	if err != nil {
		return store.Pathway{}, false, err
	}
	return p, true, nil
}

// ListPathways returns all pathways ordered by identifier.
func (s *sqliteStore) ListPathways(ctx context.Context) ([]store.Pathway, error) {
	const stmt = `SELECT id, name, definition, species_id FROM pathways ORDER BY id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Pathway
	for rows.Next() {
		var p store.Pathway
		if err := rows.Scan(&p.ID, &p.Name, &p.Definition, &p.SpeciesID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPathways returns the number of stored pathways.
func (s *sqliteStore) CountPathways(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pathways`).Scan(&n)
	return n, err
}

// UpsertProtein inserts or updates a protein, keyed by KEGG identifier.
func (s *sqliteStore) UpsertProtein(ctx context.Context, p store.Protein) error {
	const stmt = `
INSERT INTO proteins (kegg_id, entrez_id, hgnc_id, hgnc_symbol, uniprot_id)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(kegg_id) DO UPDATE SET
	entrez_id=excluded.entrez_id,
	hgnc_id=excluded.hgnc_id,
	hgnc_symbol=excluded.hgnc_symbol,
	uniprot_id=excluded.uniprot_id;
`
	_, err := s.db.ExecContext(ctx, stmt, p.KeggID, p.EntrezID, p.HGNCID, p.HGNCSymbol, p.UniProtID)
	return err
}

// GetProteinByKeggID returns a protein by KEGG identifier.
func (s *sqliteStore) GetProteinByKeggID(ctx context.Context, keggID string) (store.Protein, bool, error) {
	const stmt = `
SELECT kegg_id, entrez_id, hgnc_id, hgnc_symbol, uniprot_id
FROM proteins WHERE kegg_id=?`
	return s.scanProtein(s.db.QueryRowContext(ctx, stmt, keggID))
}

// GetProteinByHGNCSymbol returns the first protein carrying the symbol.
func (s *sqliteStore) GetProteinByHGNCSymbol(ctx context.Context, symbol string) (store.Protein, bool, error) {
	const stmt = `
SELECT kegg_id, entrez_id, hgnc_id, hgnc_symbol, uniprot_id
FROM proteins WHERE hgnc_symbol=? ORDER BY kegg_id LIMIT 1`
	return s.scanProtein(s.db.QueryRowContext(ctx, stmt, symbol))
}

func (s *sqliteStore) scanProtein(row *sql.Row) (store.Protein, bool, error) {
	var p store.Protein
	err := row.Scan(&p.KeggID, &p.EntrezID, &p.HGNCID, &p.HGNCSymbol, &p.UniProtID)
	if err == sql.ErrNoRows {
		return store.Protein{}, false, nil
	}
	if err != nil {
		return store.Protein{}, false, err
	}
	return p, true, nil
}

// ListProteins returns all proteins ordered by KEGG identifier.
func (s *sqliteStore) ListProteins(ctx context.Context) ([]store.Protein, error) {
	const stmt = `
SELECT kegg_id, entrez_id, hgnc_id, hgnc_symbol, uniprot_id
FROM proteins ORDER BY kegg_id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Protein
	for rows.Next() {
		var p store.Protein
		if err := rows.Scan(&p.KeggID, &p.EntrezID, &p.HGNCID, &p.HGNCSymbol, &p.UniProtID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountProteins returns the number of stored proteins.
func (s *sqliteStore) CountProteins(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM proteins`).Scan(&n)
	return n, err
}

// AddMembership records a protein-pathway association; duplicates collapse.
func (s *sqliteStore) AddMembership(ctx context.Context, proteinID, pathwayID string) error {
	const stmt = `INSERT OR IGNORE INTO memberships (protein_id, pathway_id) VALUES (?, ?)`
	_, err := s.db.ExecContext(ctx, stmt, proteinID, pathwayID)
	return err
}

// ListMemberships returns all memberships ordered by (protein, pathway).
func (s *sqliteStore) ListMemberships(ctx context.Context) ([]store.Membership, error) {
	const stmt = `SELECT protein_id, pathway_id FROM memberships ORDER BY protein_id, pathway_id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Membership
	for rows.Next() {
		var m store.Membership
		if err := rows.Scan(&m.ProteinID, &m.PathwayID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
