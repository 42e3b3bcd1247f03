package search

import (
	"context"
	"html"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Result holds a single web search result. Provider records which backend
// produced it.
type Result struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	URL      string `json:"url"`
	Provider string `json:"provider,omitempty"`
}

// Searcher is a single retrieval backend.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]Result, error)
}

// Config holds retrieval parameters. Reads come from env via the api config
// loader; zero keys means retrieval is disabled.
type Config struct {
	GoogleKey string
	GoogleCX  string
	BraveKey  string

	MaxResults int
	Timeout    time.Duration
}

// Service fronts the configured retrieval backends. The first backend that
// returns results wins; later backends are only consulted on failure.
type Service struct {
	backends []Searcher
	cache    *Cache
	strip    *bluemonday.Policy
}

func New(cfg Config, cache *Cache) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	var backends []Searcher
	if cfg.GoogleKey != "" && cfg.GoogleCX != "" {
		backends = append(backends, newGoogle(cfg))
	}
	if cfg.BraveKey != "" {
		backends = append(backends, newBrave(cfg))
	}

	return &Service{
		backends: backends,
		cache:    cache,
		strip:    bluemonday.StrictPolicy(),
	}
}

// Enabled reports whether at least one retrieval backend is configured.
func (s *Service) Enabled() bool {
	return len(s.backends) > 0
}

// ProvidersUsed lists the configured backend names.
func (s *Service) ProvidersUsed() []string {
	names := make([]string, 0, len(s.backends))
	for _, b := range s.backends {
		names = append(names, b.Name())
	}
	return names
}

// Search runs a query against the configured backends, consulting the cache
// first when one is attached. Results are HTML-stripped before they leave
// this package; downstream code embeds them into model prompts verbatim.
func (s *Service) Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]Result, error) {
	if len(s.backends) == 0 {
		return nil, nil
	}

	if s.cache != nil {
		if hit, ok := s.cache.Get(ctx, query, maxResults); ok {
			return hit, nil
		}
	}

	var lastErr error
	for _, b := range s.backends {
		results, err := b.Search(ctx, query, maxResults, dateRestrict)
		if err != nil {
			log.Printf("search: backend %s failed: %v", b.Name(), err)
			lastErr = err
			continue
		}
		cleaned := s.sanitize(results)
		for i := range cleaned {
			cleaned[i].Provider = b.Name()
		}
		if s.cache != nil {
			s.cache.Set(ctx, query, maxResults, cleaned)
		}
		return cleaned, nil
	}
	return nil, lastErr
}

func (s *Service) sanitize(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		r.Title = s.clean(r.Title)
		r.Snippet = s.clean(r.Snippet)
		r.URL = strings.TrimSpace(r.URL)
		if r.URL == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Service) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(text)))
}
