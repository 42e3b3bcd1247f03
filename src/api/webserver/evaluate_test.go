package webserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustwire/sourcecheck/src/ai/core"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/evidence"
	"github.com/trustwire/sourcecheck/src/ratelimit"
	"github.com/trustwire/sourcecheck/src/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubModel struct {
	response string
}

func (s stubModel) Complete(ctx context.Context, prompt string, opts core.Options) (string, error) {
	return s.response, nil
}

type stubRetriever struct{}

func (stubRetriever) Enabled() bool           { return true }
func (stubRetriever) ProvidersUsed() []string { return []string{"stub"} }
func (stubRetriever) Search(ctx context.Context, query string, maxResults int, dateRestrict string) ([]search.Result, error) {
	return []search.Result{
		{Title: "example.com reliability review", Snippet: "assessment", URL: "https://reviews.org/example", Provider: "stub"},
	}, nil
}

const scoredResponse = `{
	"score": 0.80,
	"confidence": 0.9,
	"sourceType": "news_organization",
	"factualRating": "reliable",
	"bias": {"politicalBias": "center_left"},
	"reasoning": "well sourced reporting",
	"evidenceCited": [{"claim": "c", "basis": "b", "recency": "2025", "evidenceId": "E1"}]
}`

func testConfig() config.Config {
	return config.Config{
		PrimaryProvider:     "openai",
		SecondaryProvider:   "anthropic",
		MultiModel:          false,
		ConsensusThreshold:  0.20,
		ConfidenceThreshold: 0.8,
	}
}

func newRouter(t *testing.T, primary core.Client, limiter *ratelimit.Limiter) *gin.Engine {
	t.Helper()
	if limiter == nil {
		limiter = ratelimit.New(100, time.Minute, time.Minute)
	}
	resolver := evaluation.NewResolver(
		evidence.NewBuilder(stubRetriever{}, 4),
		evaluation.NewEvaluator(),
		evaluation.Provider{Name: "gpt-4o", Client: primary},
		evaluation.Provider{Name: "claude", Client: nil},
		0)
	return New(testConfig(), limiter, resolver, search.New(search.Config{}, nil))
}

func postEvaluate(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEvaluate_Success(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	w := postEvaluate(r, `{"domain": "Example.COM"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"score":0.8`)
	assert.Contains(t, body, `"category":"reliable"`)
	assert.Contains(t, body, `"modelPrimary":"gpt-4o"`)
	assert.Contains(t, body, `"consensusAchieved":true`)
	assert.Contains(t, body, `"biasIndicator":"center-left"`)
	assert.Contains(t, body, `"providersUsed":["stub"]`)
}

func TestEvaluate_MissingDomain(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	w := postEvaluate(r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluate_MalformedDomain(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	for _, domain := range []string{"https://example.com", "example.com/path", "nodot", "example.com:8080"} {
		w := postEvaluate(r, `{"domain": "`+domain+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "domain %q", domain)
		assert.Contains(t, w.Body.String(), "invalid domain")
	}
}

func TestEvaluate_InvalidThreshold(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	w := postEvaluate(r, `{"domain": "example.com", "confidenceThreshold": 1.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluate_IPRateLimited(t *testing.T) {
	limiter := ratelimit.New(1, time.Minute, time.Minute)
	r := newRouter(t, stubModel{response: scoredResponse}, limiter)

	w := postEvaluate(r, `{"domain": "first.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Different domain, same client IP: the per-IP window rejects it.
	w = postEvaluate(r, `{"domain": "second.org"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), ratelimit.ReasonRateLimited)
}

func TestEvaluate_DomainCooldown(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	w := postEvaluate(r, `{"domain": "example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postEvaluate(r, `{"domain": "example.com"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), ratelimit.ReasonDomainCooldown)
}

func TestEvaluate_ProviderUnavailable(t *testing.T) {
	r := newRouter(t, nil, nil)

	w := postEvaluate(r, `{"domain": "example.com"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), evaluation.ReasonPrimaryModelFailed)
}

func TestHealth(t *testing.T) {
	r := newRouter(t, stubModel{response: scoredResponse}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"searchEnabled":false`)
}

func TestNormalizeDomain(t *testing.T) {
	cases := map[string]string{
		"Example.COM":        "example.com",
		"www.example.com":    "example.com",
		" example.com ":      "example.com",
		"https://exmpl.com":  "",
		"example.com/path":   "",
		"example.com:8080":   "",
		"user@example.com":   "",
		"example.com?q=1":    "",
		"nodot":              "",
		"":                   "",
		"news.example.co.uk": "news.example.co.uk",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeDomain(in), "input %q", in)
	}
}

func TestBiasIndicator(t *testing.T) {
	assert.Nil(t, biasIndicator(""))
	assert.Nil(t, biasIndicator("not_applicable"))

	v := biasIndicator("center_left")
	require.NotNil(t, v)
	assert.Equal(t, "center-left", *v)

	v = biasIndicator("center")
	require.NotNil(t, v)
	assert.Equal(t, "center", *v)
}

func TestAssembleResponse_NilPackStillSerializesItems(t *testing.T) {
	out := &evaluation.Outcome{
		Category:   evaluation.RatingInsufficientData,
		Confidence: 0.3,
	}
	resp := assembleResponse(out)
	assert.NotNil(t, resp.EvidencePack.Items)
	assert.Nil(t, resp.Score)
	assert.Nil(t, resp.BiasIndicator)
	assert.Nil(t, resp.Bias)
}
