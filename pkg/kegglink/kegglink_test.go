package kegglink

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/cognicore/kegglink/pkg/kegglink/config"
	"github.com/cognicore/kegglink/pkg/kegglink/graph"
	"github.com/cognicore/kegglink/pkg/kegglink/store/memstore"
	"github.com/cognicore/kegglink/pkg/kegglink/tabfile"
)

// fakeSource serves canned tables and entity blocks.
type fakeSource struct {
	pathways    []tabfile.PathwayRow
	memberships []tabfile.MembershipRow
	entities    map[string][]string
}

func (f *fakeSource) Pathways(ctx context.Context) ([]tabfile.PathwayRow, error) {
	return f.pathways, nil
}

func (f *fakeSource) Memberships(ctx context.Context) ([]tabfile.MembershipRow, error) {
	return f.memberships, nil
}

func (f *fakeSource) Entities(ctx context.Context, ids []string) <-chan EntityResult {
	out := make(chan EntityResult)
	go func() {
		defer close(out)
		for _, id := range ids {
			lines, ok := f.entities[id]
			if !ok {
				out <- EntityResult{ID: id, Err: io.ErrUnexpectedEOF}
				continue
			}
			out <- EntityResult{ID: id, Lines: lines}
		}
	}()
	return out
}

func testSource() *fakeSource {
	return &fakeSource{
		pathways: []tabfile.PathwayRow{
			{ID: "path:hsa00010", Name: "Glycolysis / Gluconeogenesis - Homo sapiens (human)"},
			{ID: "path:hsa00030", Name: "Pentose phosphate pathway - Homo sapiens (human)"},
		},
		memberships: []tabfile.MembershipRow{
			{ProteinID: "hsa:5214", PathwayID: "path:hsa00010"},
			{ProteinID: "hsa:5214", PathwayID: "path:hsa00030"},
			{ProteinID: "hsa:2821", PathwayID: "path:hsa00010"},
			{ProteinID: "hsa:2821", PathwayID: "path:hsa99999"},
		},
		entities: map[string][]string{
			"hsa:5214": {
				"ENTRY       5214              CDS       T01001",
				"NAME        PFKP, ATP-PFK, PFK-C, PFKF",
				"PATHWAY     hsa00010  Glycolysis / Gluconeogenesis",
				"            hsa00030  Pentose phosphate pathway",
				"DBLINKS     NCBI-GeneID: 5214",
				"            HGNC: 8878",
				"            UniProt: Q01813",
			},
			"hsa:2821": {
				"ENTRY       2821              CDS       T01001",
				"NAME        GPI, AMF, GNPI, NLK, PGI, PHI, SA-36, SA36",
				"PATHWAY     hsa00010  Glycolysis / Gluconeogenesis",
				"DBLINKS     HGNC: 4458",
				"            UniProt: P06744",
			},
		},
	}
}

func testManager(t *testing.T, src Source) *Manager {
	t.Helper()
	m, err := New(Options{
		Store:  memstore.New(),
		Source: src,
		Organism: config.Organism{
			Code:       "hsa",
			Name:       "Homo sapiens",
			TaxonomyID: "9606",
		},
		Resources:    []string{"HGNC", "UniProt"},
		HGNCToSymbol: map[string]string{"8878": "PFKP", "4458": "GPI"},
		Logger:       log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestPopulate(t *testing.T) {
	m := testManager(t, testSource())
	ctx := context.Background()

	idx, report, err := m.Populate(ctx)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if report.RunID == "" {
		t.Error("report should carry a run id")
	}
	if report.Pathways != 2 {
		t.Errorf("Pathways = %d, want 2", report.Pathways)
	}
	if report.Proteins != 2 {
		t.Errorf("Proteins = %d, want 2", report.Proteins)
	}
	if report.Memberships != 3 {
		t.Errorf("Memberships = %d, want 3", report.Memberships)
	}
	if report.FailedEntities != 0 {
		t.Errorf("FailedEntities = %d, want 0", report.FailedEntities)
	}
	if len(report.MissingPathways) != 1 || report.MissingPathways[0] != "hsa99999" {
		t.Errorf("MissingPathways = %v", report.MissingPathways)
	}

	members := idx.Proteins("hsa00010")
	if len(members) != 2 {
		t.Fatalf("hsa00010 members = %v", members)
	}
	pathways := idx.Pathways("hsa:5214")
	if len(pathways) != 2 || pathways[0] != "hsa00010" || pathways[1] != "hsa00030" {
		t.Errorf("hsa:5214 pathways = %v", pathways)
	}
}

func TestPopulateResolvesCrossReferences(t *testing.T) {
	m := testManager(t, testSource())
	ctx := context.Background()

	if _, _, err := m.Populate(ctx); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	p, ok, err := m.store.GetProteinByKeggID(ctx, "hsa:5214")
	if err != nil || !ok {
		t.Fatalf("GetProteinByKeggID = (%v, %v)", ok, err)
	}
	if p.EntrezID != "5214" {
		t.Errorf("EntrezID = %q", p.EntrezID)
	}
	if p.HGNCID != "8878" || p.HGNCSymbol != "PFKP" {
		t.Errorf("hgnc = %q/%q", p.HGNCID, p.HGNCSymbol)
	}
	if p.UniProtID != "Q01813" {
		t.Errorf("UniProtID = %q", p.UniProtID)
	}
}

func TestPopulateEntrezResolverFallback(t *testing.T) {
	src := testSource()
	// Strip the HGNC DBLINKS row so resolution must go through Entrez.
	src.entities["hsa:5214"] = []string{
		"ENTRY       5214              CDS       T01001",
		"NAME        PFKP",
		"DBLINKS     UniProt: Q01813",
	}

	m, err := New(Options{
		Store:        memstore.New(),
		Source:       src,
		Organism:     config.Organism{Code: "hsa", Name: "Homo sapiens"},
		Resources:    []string{"HGNC", "UniProt"},
		EntrezToHGNC: map[string]string{"5214": "8878"},
		HGNCToSymbol: map[string]string{"8878": "PFKP"},
		Logger:       log.New(io.Discard, "", 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	if _, _, err := m.Populate(ctx); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	p, ok, _ := m.store.GetProteinByKeggID(ctx, "hsa:5214")
	if !ok {
		t.Fatal("protein should exist")
	}
	if p.HGNCID != "8878" || p.HGNCSymbol != "PFKP" {
		t.Errorf("hgnc = %q/%q", p.HGNCID, p.HGNCSymbol)
	}
}

func TestPopulateSkipsBrokenEntities(t *testing.T) {
	src := testSource()
	// A fetch failure and an unparseable block both skip the entity.
	delete(src.entities, "hsa:2821")
	src.memberships = append(src.memberships, tabfile.MembershipRow{
		ProteinID: "hsa:9999", PathwayID: "path:hsa00010",
	})
	src.entities["hsa:9999"] = []string{
		"ENTRY       9999              CDS       T01001",
		"DBLINKS     no colon here",
	}

	m := testManager(t, src)
	_, report, err := m.Populate(context.Background())
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if report.FailedEntities != 2 {
		t.Errorf("FailedEntities = %d, want 2", report.FailedEntities)
	}
	if report.Proteins != 1 {
		t.Errorf("Proteins = %d, want 1", report.Proteins)
	}
}

func TestSummarizeAndPathwaySizes(t *testing.T) {
	m := testManager(t, testSource())
	ctx := context.Background()

	if _, _, err := m.Populate(ctx); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	s, err := m.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Pathways != 2 || s.Proteins != 2 || s.Memberships != 3 {
		t.Errorf("summary = %+v", s)
	}

	sizes, err := m.PathwaySizes(ctx)
	if err != nil {
		t.Fatalf("PathwaySizes: %v", err)
	}
	if sizes["hsa00010"] != 2 || sizes["hsa00030"] != 1 {
		t.Errorf("sizes = %v", sizes)
	}
}

func TestAllHGNCSymbols(t *testing.T) {
	m := testManager(t, testSource())
	ctx := context.Background()

	if _, _, err := m.Populate(ctx); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	symbols, err := m.AllHGNCSymbols(ctx)
	if err != nil {
		t.Fatalf("AllHGNCSymbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "GPI" || symbols[1] != "PFKP" {
		t.Errorf("symbols = %v", symbols)
	}
}

func TestEnricherFromStore(t *testing.T) {
	m := testManager(t, testSource())
	ctx := context.Background()

	if _, _, err := m.Populate(ctx); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	e, err := m.Enricher(ctx)
	if err != nil {
		t.Fatalf("Enricher: %v", err)
	}

	sub, err := e.PathwaySubgraph("hsa00010")
	if err != nil {
		t.Fatalf("PathwaySubgraph: %v", err)
	}
	if sub.NumNodes() != 3 || sub.NumEdges() != 2 {
		t.Errorf("subgraph = %d nodes / %d edges, want 3/2", sub.NumNodes(), sub.NumEdges())
	}

	g := graph.New()
	g.AddNode(graph.Node{Type: graph.Protein, Namespace: "hgnc", Name: "PFKP"})
	e.Pathways(g)
	if g.NumNodes() != 3 || g.NumEdges() != 2 {
		t.Errorf("enriched = %d nodes / %d edges, want 3/2", g.NumNodes(), g.NumEdges())
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestPopulateRequiresSource(t *testing.T) {
	m, err := New(Options{Store: memstore.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := m.Populate(context.Background()); err == nil {
		t.Fatal("expected error for missing source")
	}
}
