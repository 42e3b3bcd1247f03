package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	PrimaryProvider   string
	PrimaryModel      string
	SecondaryProvider string
	SecondaryModel    string
	MultiModel        bool

	OpenAIKey string
	ClaudeKey string

	GoogleSearchKey string
	GoogleSearchCX  string
	BraveSearchKey  string
	RedisURL        string

	RateLimitPerIP    int
	RateWindowSec     int
	DomainCooldownSec int

	EvidenceMaxItems    int
	ConsensusThreshold  float64
	ConfidenceThreshold float64
	MixedBandCeiling    float64
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getfloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		PrimaryProvider:   getenv("PRIMARY_PROVIDER", "openai"),
		PrimaryModel:      os.Getenv("PRIMARY_MODEL"),
		SecondaryProvider: getenv("SECONDARY_PROVIDER", "anthropic"),
		SecondaryModel:    os.Getenv("SECONDARY_MODEL"),
		MultiModel:        getenv("MULTI_MODEL", "1") == "1",

		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		ClaudeKey: os.Getenv("CLAUDE_API_KEY"),

		GoogleSearchKey: os.Getenv("GOOGLE_SEARCH_KEY"),
		GoogleSearchCX:  os.Getenv("GOOGLE_SEARCH_CX"),
		BraveSearchKey:  os.Getenv("BRAVE_SEARCH_KEY"),
		RedisURL:        os.Getenv("REDIS_URL"),

		RateLimitPerIP:    getint("RATE_LIMIT_PER_IP", 10),
		RateWindowSec:     getint("RATE_WINDOW_SEC", 60),
		DomainCooldownSec: getint("DOMAIN_COOLDOWN_SEC", 60),

		EvidenceMaxItems:    getint("EVIDENCE_MAX_ITEMS", 10),
		ConsensusThreshold:  getfloat("CONSENSUS_THRESHOLD", 0.20),
		ConfidenceThreshold: getfloat("CONFIDENCE_THRESHOLD", 0.8),
		MixedBandCeiling:    getfloat("MIXED_BAND_CEILING", 0.57),
	}
}
