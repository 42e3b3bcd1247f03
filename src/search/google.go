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

const googleEndpoint = "https://www.googleapis.com/customsearch/v1"

type googleSearcher struct {
	key        string
	cx         string
	httpClient *http.Client
}

func newGoogle(cfg Config) *googleSearcher {
	return &googleSearcher{
		key:        cfg.GoogleKey,
		cx:         cfg.GoogleCX,
		httpClient: webclient.NewDefault(cfg.Timeout),
	}
}

func (g *googleSearcher) Name() string { return "google" }

func (g *googleSearcher) Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]Result, error) {
	if maxResults <= 0 || maxResults > 10 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("key", g.key)
	params.Set("cx", g.cx)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))
	if dateRestrict != "" {
		params.Set("dateRestrict", dateRestrict)
	}

	_, body, err := webclient.DoWithRetry(ctx, 2, time.Second, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleEndpoint+"?"+params.Encode(), nil)
		if err != nil {
			return 0, nil, err
		}
		resp, err := g.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, b, fmt.Errorf("status %d", resp.StatusCode)
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("google search error: %w", err)
	}

	var parsed struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{Title: item.Title, Snippet: item.Snippet, URL: item.Link})
	}
	return results, nil
}
