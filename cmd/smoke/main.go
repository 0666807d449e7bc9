// README: Smoke runner against a live voyage-api; executes HTTP, Postgres and Redis checks and prints PASS/FAIL/SKIP lines.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		case StatusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	DSN         string
	RedisAddr   string
	PlanID      string
	Strict      bool
	Timeout     time.Duration
	CallTimeout time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("VOYAGE_SMOKE_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("VOYAGE_DB_DSN"), "Postgres DSN; empty skips DB checks")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("VOYAGE_REDIS_ADDR"), "Redis address; empty skips Redis checks")
	flag.StringVar(&cfg.PlanID, "plan", envOrDefault("VOYAGE_SMOKE_PLAN_ID", fmt.Sprintf("smoke-%d", time.Now().Unix())), "Plan id used for expense checks")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("VOYAGE_SMOKE_STRICT", false), "Fail when any check is skipped")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("VOYAGE_SMOKE_TIMEOUT", 5*time.Minute), "Total timeout")
	flag.DurationVar(&cfg.CallTimeout, "call-timeout", envOrDefaultDuration("VOYAGE_SMOKE_CALL_TIMEOUT", 120*time.Second), "Per-request timeout")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
