package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trustwire/sourcecheck/src/webclient"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

type braveSearcher struct {
	key        string
	httpClient *http.Client
}

func newBrave(cfg Config) *braveSearcher {
	return &braveSearcher{
		key:        cfg.BraveKey,
		httpClient: webclient.NewDefault(cfg.Timeout),
	}
}

func (b *braveSearcher) Name() string { return "brave" }

func (b *braveSearcher) Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]Result, error) {
	if maxResults <= 0 || maxResults > 20 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))
	if freshness := braveFreshness(dateRestrict); freshness != "" {
		params.Set("freshness", freshness)
	}

	_, body, err := webclient.DoWithRetry(ctx, 2, time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveEndpoint+"?"+params.Encode(), nil)
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Subscription-Token", b.key)
		resp, err := b.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, raw, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp.StatusCode, raw, nil
	})
	if err != nil {
		return nil, fmt.Errorf("brave search error: %w", err)
	}

	var parsed struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				URL         string `json:"url"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(parsed.Web.Results))
	for _, item := range parsed.Web.Results {
		results = append(results, Result{Title: item.Title, Snippet: item.Description, URL: item.URL})
	}
	return results, nil
}

// braveFreshness maps Google-style dateRestrict values (d30, m6, y1) onto
// Brave's freshness parameter.
func braveFreshness(dateRestrict string) string {
	if len(dateRestrict) < 2 {
		return ""
	}
	switch dateRestrict[0] {
	case 'd':
		return "pd"
	case 'w':
		return "pw"
	case 'm':
		return "pm"
	case 'y':
		return "py"
	}
	return ""
}
