package evidence

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustwire/sourcecheck/src/search"
)

type stubRetriever struct {
	enabled        bool
	results        map[string][]search.Result
	defaultResults []search.Result
	queries        []string
}

func (s *stubRetriever) Enabled() bool           { return s.enabled }
func (s *stubRetriever) ProvidersUsed() []string { return []string{"stub"} }
func (s *stubRetriever) Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	if r, ok := s.results[query]; ok {
		return r, nil
	}
	return s.defaultResults, nil
}

func result(host, title string) search.Result {
	return search.Result{
		Title:    title,
		Snippet:  "about " + host,
		URL:      "https://" + host + "/page",
		Provider: "stub",
	}
}

func TestBuild_DisabledRetrieval(t *testing.T) {
	b := NewBuilder(&stubRetriever{enabled: false}, 10)
	pack := b.Build(context.Background(), "example.com")

	assert.False(t, pack.Enabled)
	assert.Empty(t, pack.Items)
}

func TestBuild_AssignsSequentialIDs(t *testing.T) {
	stub := &stubRetriever{
		enabled: true,
		defaultResults: []search.Result{
			result("mediareview.org", "example.com reliability analysis"),
			result("factwatch.net", "example.com bias rating"),
		},
	}
	b := NewBuilder(stub, 10)
	pack := b.Build(context.Background(), "example.com")

	require.True(t, pack.Enabled)
	require.Len(t, pack.Items, 2)
	assert.Equal(t, "E1", pack.Items[0].ID)
	assert.Equal(t, "E2", pack.Items[1].ID)
	assert.Equal(t, []string{"stub"}, pack.ProvidersUsed)
}

func TestBuild_DeduplicatesByURL(t *testing.T) {
	dup := result("mediareview.org", "example.com reliability analysis")
	stub := &stubRetriever{enabled: true, defaultResults: []search.Result{dup, dup}}
	b := NewBuilder(stub, 10)

	pack := b.Build(context.Background(), "example.com")
	assert.Len(t, pack.Items, 1)
}

func TestBuild_FiltersIrrelevantResults(t *testing.T) {
	stub := &stubRetriever{
		enabled: true,
		defaultResults: []search.Result{
			result("unrelated.org", "something about other topics entirely"),
		},
	}
	b := NewBuilder(stub, 10)

	pack := b.Build(context.Background(), "example.com")
	assert.Empty(t, pack.Items)
}

func TestBuild_AcceptsSubdomainHosts(t *testing.T) {
	stub := &stubRetriever{
		enabled: true,
		defaultResults: []search.Result{
			{Title: "About us", Snippet: "our newsroom", URL: "https://blog.example.com/about", Provider: "stub"},
		},
	}
	b := NewBuilder(stub, 10)

	pack := b.Build(context.Background(), "example.com")
	assert.Len(t, pack.Items, 1)
}

func TestBuild_StopsAtItemCap(t *testing.T) {
	var many []search.Result
	for i := 0; i < 10; i++ {
		many = append(many, result(fmt.Sprintf("site%d.org", i), fmt.Sprintf("example.com review %d", i)))
	}
	stub := &stubRetriever{enabled: true, defaultResults: many}
	b := NewBuilder(stub, 3)

	pack := b.Build(context.Background(), "example.com")
	assert.Len(t, pack.Items, 3)
	assert.Equal(t, "E3", pack.Items[2].ID)
}

func TestBuild_NegativePhaseRunsWhenUnderCap(t *testing.T) {
	stub := &stubRetriever{enabled: true}
	b := NewBuilder(stub, 10)
	b.Build(context.Background(), "example.com")

	var sawNegative bool
	for _, q := range stub.queries {
		if q == "example example.com propaganda disinformation" {
			sawNegative = true
		}
	}
	assert.True(t, sawNegative, "negative-signal phase must run while under cap; queries: %v", stub.queries)
}
