package relation

import (
	"testing"
)

var testPathways = []string{"path:hsa00010", "hsa00030"}

var testPairs = []MembershipPair{
	{"hsa:5214", "path:hsa00010"},
	{"hsa:5214", "path:hsa00030"},
	{"hsa:2821", "path:hsa00010"},
	{"hsa:25796", "path:hsa00030"},
}

func TestBuildSymmetry(t *testing.T) {
	idx, _ := Build(testPathways, testPairs)

	for _, pathwayID := range idx.PathwayIDs() {
		for _, proteinID := range idx.Proteins(pathwayID) {
			if !contains(idx.Pathways(proteinID), pathwayID) {
				t.Errorf("edge %s--%s missing in protein direction", pathwayID, proteinID)
			}
		}
	}
	for _, proteinID := range idx.ProteinIDs() {
		for _, pathwayID := range idx.Pathways(proteinID) {
			if !contains(idx.Proteins(pathwayID), proteinID) {
				t.Errorf("edge %s--%s missing in pathway direction", proteinID, pathwayID)
			}
		}
	}
}

func TestBuildNormalizesPathPrefix(t *testing.T) {
	idx, _ := Build(testPathways, testPairs)

	if !idx.HasPathway("hsa00010") {
		t.Error("hsa00010 should be known without the path: prefix")
	}
	if !idx.HasPathway("path:hsa00010") {
		t.Error("lookups with the path: prefix should also resolve")
	}

	pathways := idx.Pathways("hsa:5214")
	want := []string{"hsa00010", "hsa00030"}
	if len(pathways) != len(want) {
		t.Fatalf("Pathways(hsa:5214) = %v, want %v", pathways, want)
	}
	for i := range want {
		if pathways[i] != want[i] {
			t.Errorf("Pathways(hsa:5214)[%d] = %q, want %q", i, pathways[i], want[i])
		}
	}
}

func TestBuildSkipsUnknownPathways(t *testing.T) {
	pairs := append([]MembershipPair{
		{"hsa:1111", "path:hsa99999"},
		{"hsa:2222", "path:hsa99999"},
	}, testPairs...)

	idx, report := Build(testPathways, pairs)

	if idx.HasPathway("hsa99999") {
		t.Error("unknown pathway must not be linked")
	}
	if len(report.MissingPathways) != 1 || report.MissingPathways[0] != "hsa99999" {
		t.Errorf("MissingPathways = %v, want [hsa99999] (deduplicated)", report.MissingPathways)
	}
	if report.Pairs != len(pairs) {
		t.Errorf("Pairs = %d, want %d", report.Pairs, len(pairs))
	}
	if report.Edges != 4 {
		t.Errorf("Edges = %d, want 4", report.Edges)
	}
}

func TestBuildDeduplicatesPairs(t *testing.T) {
	pairs := append(testPairs, testPairs...)
	idx, report := Build(testPathways, pairs)

	if report.Edges != 4 {
		t.Errorf("Edges = %d, want 4 after deduplication", report.Edges)
	}
	if got := len(idx.Proteins("hsa00010")); got != 2 {
		t.Errorf("Proteins(hsa00010) has %d members, want 2", got)
	}
}

func TestUnknownLookupsReturnEmpty(t *testing.T) {
	idx, _ := Build(testPathways, testPairs)

	if got := idx.Proteins("hsa77777"); len(got) != 0 {
		t.Errorf("Proteins(unknown) = %v, want empty", got)
	}
	if got := idx.Pathways("hsa:0"); len(got) != 0 {
		t.Errorf("Pathways(unknown) = %v, want empty", got)
	}
}

func TestBuildReportRunID(t *testing.T) {
	_, first := Build(testPathways, testPairs)
	_, second := Build(testPathways, testPairs)

	if first.RunID == "" {
		t.Fatal("RunID should be set")
	}
	if first.RunID == second.RunID {
		t.Error("each build should get a distinct run id")
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	idx, report := Build(nil, nil)
	if len(idx.PathwayIDs()) != 0 || len(idx.ProteinIDs()) != 0 {
		t.Error("empty build should yield an empty index")
	}
	if report.Edges != 0 || report.Pairs != 0 {
		t.Errorf("report = %+v, want zero counts", report)
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
