package evidence

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/trustwire/sourcecheck/src/search"
)

const (
	defaultMaxItems       = 10
	defaultResultsPerCall = 5
)

// Retriever is the slice of the search service the builder consumes;
// *search.Service satisfies it.
type Retriever interface {
	Enabled() bool
	ProvidersUsed() []string
	Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]search.Result, error)
}

// Builder assembles evidence packs from the retrieval service. Queries run in
// three phases: standard reliability queries, entity-focus queries, then
// negative-signal queries. The negative phase always runs while the pack is
// under its item cap, however many results the earlier phases produced.
type Builder struct {
	svc      Retriever
	maxItems int
	perQuery int
}

func NewBuilder(svc Retriever, maxItems int) *Builder {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	return &Builder{svc: svc, maxItems: maxItems, perQuery: defaultResultsPerCall}
}

// Build runs the phased queries for a domain and returns the finished pack.
// Queries run in a fixed order so item IDs are deterministic for a given set
// of retrieval responses. A disabled retrieval service yields
// Pack{Enabled:false}, which downstream forces to an insufficient-data
// outcome.
func (b *Builder) Build(ctx context.Context, domain string) *Pack {
	if b.svc == nil || !b.svc.Enabled() {
		return &Pack{Enabled: false, Items: []Item{}}
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	brand := BrandToken(domain)
	variants := BrandVariants(brand)

	pack := &Pack{
		Enabled:       true,
		ProvidersUsed: b.svc.ProvidersUsed(),
		Items:         []Item{},
	}
	seen := map[string]bool{}

	for _, phase := range [][]string{
		standardQueries(brand, domain),
		entityQueries(brand),
		negativeQueries(brand, domain),
	} {
		for _, q := range phase {
			if len(pack.Items) >= b.maxItems {
				return pack
			}
			pack.Queries = append(pack.Queries, q)

			results, err := b.svc.Search(ctx, q, b.perQuery, "")
			if err != nil {
				log.Printf("evidence: query %q failed: %v", q, err)
				continue
			}
			for _, r := range results {
				if len(pack.Items) >= b.maxItems {
					break
				}
				key := strings.ToLower(strings.TrimSpace(r.URL))
				if key == "" || seen[key] {
					continue
				}
				if !relevant(domain, variants, r) {
					continue
				}
				seen[key] = true
				pack.Items = append(pack.Items, Item{
					ID:       fmt.Sprintf("E%d", len(pack.Items)+1),
					URL:      r.URL,
					Title:    r.Title,
					Snippet:  r.Snippet,
					Query:    q,
					Provider: r.Provider,
				})
			}
		}
	}
	return pack
}

func standardQueries(brand, domain string) []string {
	return []string{
		fmt.Sprintf("%s %s factual reporting reliability", brand, domain),
		fmt.Sprintf("%s %s media bias rating", brand, domain),
		fmt.Sprintf("%s %s editorial standards corrections policy", brand, domain),
	}
}

func entityQueries(brand string) []string {
	return []string{
		fmt.Sprintf("\"%s\" news organization", brand),
		fmt.Sprintf("who owns %s", brand),
	}
}

func negativeQueries(brand, domain string) []string {
	return []string{
		fmt.Sprintf("%s %s propaganda disinformation", brand, domain),
		fmt.Sprintf("%s fabricated stories misinformation", brand),
	}
}

// relevant keeps a result when the domain literally appears in its text, the
// result is hosted on the domain itself, or a sufficiently long brand variant
// appears in the text.
func relevant(domain string, variants []string, r search.Result) bool {
	blob := strings.ToLower(r.Title + " " + r.Snippet + " " + r.URL)

	if strings.Contains(blob, domain) || strings.Contains(blob, "www."+domain) {
		return true
	}

	if u, err := url.Parse(r.URL); err == nil {
		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	for _, v := range variants {
		if len(v) >= 4 && strings.Contains(blob, v) {
			return true
		}
	}
	return false
}
