// Command kegg-subgraph prints the membership subgraph of one pathway from a
// populated database as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cognicore/kegglink/pkg/kegglink"
	"github.com/cognicore/kegglink/pkg/kegglink/graph"
	"github.com/cognicore/kegglink/pkg/kegglink/store/sqlite"
)

type jsonNode struct {
	Type      string `json:"type"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

type jsonEdge struct {
	Source   jsonNode `json:"source"`
	Target   jsonNode `json:"target"`
	Relation string   `json:"relation"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

func main() {
	dbPath := flag.String("db", "kegglink.db", "path to the SQLite database")
	pathwayID := flag.String("pathway", "", "pathway identifier (e.g. hsa00030)")
	flag.Parse()

	if *pathwayID == "" {
		log.Fatal("the -pathway flag is required")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer st.Close()

	manager, err := kegglink.New(kegglink.Options{Store: st})
	if err != nil {
		log.Fatalf("create manager: %v", err)
	}

	enricher, err := manager.Enricher(ctx)
	if err != nil {
		log.Fatalf("build enricher: %v", err)
	}

	sub, err := enricher.PathwaySubgraph(*pathwayID)
	if err != nil {
		log.Fatalf("build subgraph: %v", err)
	}

	out := jsonGraph{}
	for _, n := range sub.Nodes() {
		out.Nodes = append(out.Nodes, toJSONNode(n))
	}
	for _, e := range sub.Edges() {
		out.Edges = append(out.Edges, jsonEdge{
			Source:   toJSONNode(e.Source),
			Target:   toJSONNode(e.Target),
			Relation: string(e.Relation),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func toJSONNode(n graph.Node) jsonNode {
	return jsonNode{
		Type:      string(n.Type),
		Namespace: n.Namespace,
		Name:      n.Name,
	}
}
