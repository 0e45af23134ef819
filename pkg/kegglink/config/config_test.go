package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/kegglink/pkg/kegglink/internalerr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
organism:
  code: mmu
  name: Mus musculus
  taxonomy_id: "10090"
base_url: http://localhost:8080
protein_resources:
  - HGNC
fetch_workers: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Organism.Code != "mmu" || cfg.Organism.TaxonomyID != "10090" {
		t.Errorf("organism = %+v", cfg.Organism)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if len(cfg.ProteinResources) != 1 || cfg.ProteinResources[0] != "HGNC" {
		t.Errorf("ProteinResources = %v", cfg.ProteinResources)
	}
	if cfg.FetchWorkers != 8 {
		t.Errorf("FetchWorkers = %d", cfg.FetchWorkers)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
organism:
  code: hsa
  name: Homo sapiens
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://rest.kegg.jp" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.FetchWorkers != 4 {
		t.Errorf("FetchWorkers = %d", cfg.FetchWorkers)
	}
	if len(cfg.ProteinResources) != 2 {
		t.Errorf("ProteinResources = %v", cfg.ProteinResources)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Organism != def.Organism {
		t.Errorf("organism = %+v, want %+v", cfg.Organism, def.Organism)
	}
}

func TestLoadRejectsBadWorkerCount(t *testing.T) {
	path := writeConfig(t, `
organism:
  code: hsa
  name: Homo sapiens
fetch_workers: -2
`)

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadRejectsMissingOrganismName(t *testing.T) {
	path := writeConfig(t, `
organism:
  code: eco
`)

	_, err := Load(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "organism: [unclosed")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}
