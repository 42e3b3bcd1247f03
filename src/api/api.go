package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	aicore "github.com/trustwire/sourcecheck/src/ai/core"
	_ "github.com/trustwire/sourcecheck/src/ai/providers"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/api/webserver"
	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/evidence"
	"github.com/trustwire/sourcecheck/src/ratelimit"
	"github.com/trustwire/sourcecheck/src/search"
)

func buildProvider(cfg config.Config, provider, model string) evaluation.Provider {
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:  provider,
		Model:     model,
		OpenAIKey: cfg.OpenAIKey,
		ClaudeKey: cfg.ClaudeKey,
	})
	if err != nil {
		log.Printf("provider %s unavailable: %v", provider, err)
		client = nil
	}
	return evaluation.Provider{
		Name:   aicore.ResolveModelName(provider, model),
		Client: client,
	}
}

func buildSearch(cfg config.Config) *search.Service {
	var cache *search.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("redis: bad REDIS_URL, search cache disabled: %v", err)
		} else {
			cache = search.NewCache(redis.NewClient(opts), 0)
		}
	}
	return search.New(search.Config{
		GoogleKey: cfg.GoogleSearchKey,
		GoogleCX:  cfg.GoogleSearchCX,
		BraveKey:  cfg.BraveSearchKey,
	}, cache)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	searchSvc := buildSearch(cfg)
	if !searchSvc.Enabled() {
		log.Printf("no search provider configured; evaluations will return insufficient_data")
	}

	resolver := evaluation.NewResolver(
		evidence.NewBuilder(searchSvc, cfg.EvidenceMaxItems),
		evaluation.NewEvaluator(),
		buildProvider(cfg, cfg.PrimaryProvider, cfg.PrimaryModel),
		buildProvider(cfg, cfg.SecondaryProvider, cfg.SecondaryModel),
		cfg.MixedBandCeiling,
	)

	limiter := ratelimit.New(
		cfg.RateLimitPerIP,
		time.Duration(cfg.RateWindowSec)*time.Second,
		time.Duration(cfg.DomainCooldownSec)*time.Second,
	)

	router := webserver.New(cfg, limiter, resolver, searchSvc)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("sourcecheck API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
