// Command kegg-populate runs a full population: it downloads the pathway and
// membership tables plus the per-protein description blocks, stores them in a
// SQLite database, and prints a run summary.
//
// The -pathways, -memberships, and -entities flags swap the remote service for
// local files, which is useful for offline runs and for replaying a fixed
// snapshot.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/kegglink/internal/keggclient"
	"github.com/cognicore/kegglink/pkg/kegglink"
	"github.com/cognicore/kegglink/pkg/kegglink/config"
	"github.com/cognicore/kegglink/pkg/kegglink/store/sqlite"
	"github.com/cognicore/kegglink/pkg/kegglink/tabfile"
)

func main() {
	dbPath := flag.String("db", "kegglink.db", "path to the SQLite database")
	configPath := flag.String("config", "", "path to a YAML config file")
	pathwaysPath := flag.String("pathways", "", "local pathway table instead of the remote service")
	membershipsPath := flag.String("memberships", "", "local membership table instead of the remote service")
	entitiesPath := flag.String("entities", "", "local file of concatenated entity blocks instead of the remote service")
	entrezHGNCPath := flag.String("entrez-hgnc", "", "optional entrez-to-hgnc lookup table")
	hgncSymbolsPath := flag.String("hgnc-symbols", "", "optional hgnc-to-symbol lookup table")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer st.Close()

	var source kegglink.Source
	if *pathwaysPath != "" || *membershipsPath != "" || *entitiesPath != "" {
		source, err = newFileSource(cfg.Organism.Code, *pathwaysPath, *membershipsPath, *entitiesPath)
		if err != nil {
			log.Fatalf("load local files: %v", err)
		}
	} else {
		source = keggclient.New(keggclient.Options{
			BaseURL:  cfg.BaseURL,
			Organism: cfg.Organism.Code,
			Workers:  cfg.FetchWorkers,
		})
	}

	entrezToHGNC, err := loadLookup(*entrezHGNCPath)
	if err != nil {
		log.Fatalf("load entrez-hgnc lookup: %v", err)
	}
	hgncToSymbol, err := loadLookup(*hgncSymbolsPath)
	if err != nil {
		log.Fatalf("load hgnc-symbol lookup: %v", err)
	}

	manager, err := kegglink.New(kegglink.Options{
		Store:        st,
		Source:       source,
		Organism:     cfg.Organism,
		Resources:    cfg.ProteinResources,
		EntrezToHGNC: entrezToHGNC,
		HGNCToSymbol: hgncToSymbol,
	})
	if err != nil {
		log.Fatalf("create manager: %v", err)
	}

	_, report, err := manager.Populate(ctx)
	if err != nil {
		log.Fatalf("populate: %v", err)
	}

	fmt.Printf("run %s\n", report.RunID)
	fmt.Printf("  pathways:    %d\n", report.Pathways)
	fmt.Printf("  proteins:    %d\n", report.Proteins)
	fmt.Printf("  memberships: %d\n", report.Memberships)
	if report.FailedEntities > 0 {
		fmt.Printf("  failed:      %d\n", report.FailedEntities)
	}
	if len(report.MissingPathways) > 0 {
		fmt.Printf("  unknown pathways referenced: %s\n", strings.Join(report.MissingPathways, ", "))
	}
}

func loadLookup(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tabfile.ParseLookup(f)
}

// fileSource serves a population run from local snapshot files.
type fileSource struct {
	pathways    []tabfile.PathwayRow
	memberships []tabfile.MembershipRow
	entities    map[string][]string
}

func newFileSource(organism, pathwaysPath, membershipsPath, entitiesPath string) (*fileSource, error) {
	src := &fileSource{entities: make(map[string][]string)}

	if pathwaysPath != "" {
		f, err := os.Open(pathwaysPath)
		if err != nil {
			return nil, err
		}
		src.pathways, err = tabfile.ParsePathways(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", pathwaysPath, err)
		}
	}

	if membershipsPath != "" {
		f, err := os.Open(membershipsPath)
		if err != nil {
			return nil, err
		}
		src.memberships, err = tabfile.ParseMemberships(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", membershipsPath, err)
		}
	}

	if entitiesPath != "" {
		if err := src.loadEntities(organism, entitiesPath); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entitiesPath, err)
		}
	}

	return src, nil
}

// loadEntities splits a file of concatenated description blocks on the "///"
// terminator and keys each block by its ENTRY number prefixed with the
// organism code.
func (s *fileSource) loadEntities(organism, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var block []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "///" {
			s.addBlock(organism, block)
			block = nil
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	s.addBlock(organism, block)
	return nil
}

func (s *fileSource) addBlock(organism string, block []string) {
	for _, line := range block {
		if !strings.HasPrefix(line, "ENTRY") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "ENTRY"))
		if len(fields) > 0 {
			s.entities[organism+":"+fields[0]] = block
		}
		return
	}
}

func (s *fileSource) Pathways(ctx context.Context) ([]tabfile.PathwayRow, error) {
	return s.pathways, nil
}

func (s *fileSource) Memberships(ctx context.Context) ([]tabfile.MembershipRow, error) {
	return s.memberships, nil
}

func (s *fileSource) Entities(ctx context.Context, ids []string) <-chan kegglink.EntityResult {
	out := make(chan kegglink.EntityResult)
	go func() {
		defer close(out)
		for _, id := range ids {
			block, ok := s.entities[id]
			if !ok {
				out <- kegglink.EntityResult{ID: id, Err: fmt.Errorf("entity %s not in snapshot", id)}
				continue
			}
			out <- kegglink.EntityResult{ID: id, Lines: block}
		}
	}()
	return out
}
