// Package config loads population settings from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/kegglink/pkg/kegglink/internalerr"
)

// Organism identifies the species to populate.
type Organism struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	TaxonomyID string `yaml:"taxonomy_id"`
}

// Config holds all population settings.
type Config struct {
	Organism Organism `yaml:"organism"`

	// BaseURL is the KEGG REST endpoint. Defaults to the public service.
	BaseURL string `yaml:"base_url"`

	// ProteinResources is the DBLINKS allow-list. Databases not listed are
	// dropped during projection.
	ProteinResources []string `yaml:"protein_resources"`

	// FetchWorkers bounds concurrent entity downloads.
	FetchWorkers int `yaml:"fetch_workers"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Organism: Organism{
			Code:       "hsa",
			Name:       "Homo sapiens",
			TaxonomyID: "9606",
		},
		BaseURL:          "https://rest.kegg.jp",
		ProteinResources: []string{"HGNC", "UniProt"},
		FetchWorkers:     4,
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Organism.Code == "" {
		cfg.Organism = def.Organism
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if len(cfg.ProteinResources) == 0 {
		cfg.ProteinResources = def.ProteinResources
	}
	if cfg.FetchWorkers == 0 {
		cfg.FetchWorkers = def.FetchWorkers
	}
}

// Validate checks the configuration for values that cannot drive a run.
func (c *Config) Validate() error {
	if c.Organism.Code == "" {
		return fmt.Errorf("%w: organism code is required", internalerr.ErrInvalidConfig)
	}
	if c.Organism.Name == "" {
		return fmt.Errorf("%w: organism name is required", internalerr.ErrInvalidConfig)
	}
	if c.FetchWorkers < 1 {
		return fmt.Errorf("%w: fetch_workers must be at least 1", internalerr.ErrInvalidConfig)
	}
	return nil
}
