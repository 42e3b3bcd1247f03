// Minimal end-to-end integration test for the SourceCheck API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	baseURL = getenv("API_URL", "http://localhost:8080/v1")
	domain  = getenv("TEST_DOMAIN", "reuters.com")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	flushSearchCache(ctx)

	health()
	outcome := evaluate(ctx)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, outcome, "", "  "); err != nil {
		log.Fatalf("evaluate returned malformed JSON: %v", err)
	}
	fmt.Println(pretty.String())
	log.Println("API smoke test passed")
}

// flushSearchCache clears cached search results so the run exercises live
// retrieval. Skipped when REDIS_URL is unset.
func flushSearchCache(ctx context.Context) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	iter := rdb.Scan(ctx, 0, "search:*", 0).Iterator()
	cleared := 0
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Fatalf("redis del: %v", err)
		}
		cleared++
	}
	if err := iter.Err(); err != nil {
		log.Fatalf("redis scan: %v", err)
	}
	log.Printf("cleared %d cached search entries", cleared)
}

func health() {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		log.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("health: status %d", resp.StatusCode)
	}
	log.Println("health ok")
}

func evaluate(ctx context.Context) []byte {
	payload, _ := json.Marshal(map[string]any{"domain": domain})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/evaluate", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		log.Fatalf("evaluate: read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		log.Fatalf("evaluate: status %d: %s", resp.StatusCode, body.String())
	}
	log.Printf("evaluate %s: status %d", domain, resp.StatusCode)
	return body.Bytes()
}
