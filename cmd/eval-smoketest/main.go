package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	aicore "github.com/trustwire/sourcecheck/src/ai/core"
	_ "github.com/trustwire/sourcecheck/src/ai/providers"
	"github.com/trustwire/sourcecheck/src/api/config"
	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/evidence"
	"github.com/trustwire/sourcecheck/src/search"
)

var (
	domainFlag     = flag.String("domain", "", "Domain to evaluate (required)")
	multiFlag      = flag.Bool("multi", true, "Run both evaluators")
	consensusFlag  = flag.Float64("consensus", 0.20, "Consensus threshold (max score diff)")
	confidenceFlag = flag.Float64("confidence", 0.8, "Legacy confidence threshold")
	timeoutFlag    = flag.Duration("timeout", 120*time.Second, "Overall evaluation timeout")
)

func main() {
	flag.Parse()
	if *domainFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: eval-smoketest -domain example.com [-multi=false]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	searchSvc := search.New(search.Config{
		GoogleKey: cfg.GoogleSearchKey,
		GoogleCX:  cfg.GoogleSearchCX,
		BraveKey:  cfg.BraveSearchKey,
	}, nil)
	if !searchSvc.Enabled() {
		log.Printf("warning: no search provider configured; expect insufficient_data")
	}

	resolver := evaluation.NewResolver(
		evidence.NewBuilder(searchSvc, cfg.EvidenceMaxItems),
		evaluation.NewEvaluator(),
		buildProvider(cfg, cfg.PrimaryProvider, cfg.PrimaryModel),
		buildProvider(cfg, cfg.SecondaryProvider, cfg.SecondaryModel),
		cfg.MixedBandCeiling,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	outcome, err := resolver.Resolve(ctx, evaluation.Request{
		Domain:              *domainFlag,
		MultiModel:          *multiFlag,
		ConfidenceThreshold: *confidenceFlag,
		ConsensusThreshold:  *consensusFlag,
	})
	if err != nil {
		var re *evaluation.ResolveError
		if errors.As(err, &re) {
			log.Fatalf("evaluation failed (%s): %s", re.Reason, re.Details)
		}
		log.Fatalf("evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(outcome, "", "  ")
	fmt.Println(string(out))
}

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
