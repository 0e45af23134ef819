// Package keggclient fetches pathway tables and entity description blocks
// from the KEGG REST service.
package keggclient

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cognicore/kegglink/pkg/kegglink"
	"github.com/cognicore/kegglink/pkg/kegglink/tabfile"
)

// DefaultBaseURL is the public KEGG REST endpoint.
const DefaultBaseURL = "https://rest.kegg.jp"

// endOfEntry terminates an entity description block in a /get response.
const endOfEntry = "///"

// Options configures a Client.
type Options struct {
	// BaseURL overrides the REST endpoint; empty selects DefaultBaseURL.
	BaseURL string

	// Organism is the KEGG organism code ("hsa").
	Organism string

	// Workers bounds concurrent entity downloads. Values below 1 become 1.
	Workers int

	HTTPClient *http.Client
}

// Client talks to the KEGG REST service. It implements kegglink.Source.
type Client struct {
	baseURL  string
	organism string
	workers  int
	httpc    *http.Client
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:  opts.BaseURL,
		organism: opts.Organism,
		workers:  opts.Workers,
		httpc:    opts.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.workers < 1 {
		c.workers = 1
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return c
}

// Pathways lists the organism's pathways.
func (c *Client) Pathways(ctx context.Context) ([]tabfile.PathwayRow, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/list/pathway/%s", c.baseURL, c.organism))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return tabfile.ParsePathways(resp.Body)
}

// Memberships lists the organism's protein-pathway associations.
func (c *Client) Memberships(ctx context.Context) ([]tabfile.MembershipRow, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/link/pathway/%s", c.baseURL, c.organism))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return tabfile.ParseMemberships(resp.Body)
}

// Organisms lists every organism the service knows.
func (c *Client) Organisms(ctx context.Context) ([]tabfile.Organism, error) {
	resp, err := c.get(ctx, c.baseURL+"/list/organism")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return tabfile.ParseOrganisms(resp.Body)
}

// Entity fetches one entity description block and returns its lines, without
// the terminator.
func (c *Client) Entity(ctx context.Context, id string) ([]string, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/get/%s", c.baseURL, id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == endOfEntry {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read entity %s: %w", id, err)
	}
	return lines, nil
}

// Entities fetches the given entity blocks with a bounded worker pool. The
// returned channel is closed after the last result; results arrive in
// completion order.
func (c *Client) Entities(ctx context.Context, ids []string) <-chan kegglink.EntityResult {
	jobs := make(chan string)
	out := make(chan kegglink.EntityResult)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				lines, err := c.Entity(ctx, id)
				select {
				case out <- kegglink.EntityResult{ID: id, Lines: lines, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}
