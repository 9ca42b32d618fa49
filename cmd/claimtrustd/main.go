package main

import (
	"context"
	"log"

	"claimtrust/internal/config"
	"claimtrust/internal/domain"
	"claimtrust/internal/infra/confidence"
	"claimtrust/internal/infra/db"
	"claimtrust/internal/infra/deepfake"
	httpinfra "claimtrust/internal/infra/http"
	"claimtrust/internal/infra/linkage"
	"claimtrust/internal/infra/policyamount"
	"claimtrust/internal/infra/ratelimit"
	"claimtrust/internal/infra/storemem"
	"claimtrust/internal/usecase"
)

func main() {
	cfg := config.FromEnv()
	ctx := context.Background()

	scorer := confidence.NewScorer(confidence.Config{
		Providers: []confidence.Provider{
			{Name: domain.ConfidenceProviderOpenAI, APIKey: cfg.OpenAIAPIKey, URL: cfg.OpenAIBaseURL, Model: cfg.OpenAIModel},
			{Name: domain.ConfidenceProviderDeepSeek, APIKey: cfg.DeepSeekAPIKey, URL: cfg.DeepSeekBaseURL, Model: cfg.DeepSeekModel},
			{Name: domain.ConfidenceProviderGrok, APIKey: cfg.GrokAPIKey, URL: cfg.GrokBaseURL, Model: cfg.GrokModel},
		},
		Timeout: cfg.ConfidenceTimeout(),
		Retries: cfg.ConfidenceRetries,
	})

	detector := deepfake.NewDetector(deepfake.Config{
		Endpoint: cfg.DeepfakeEndpoint,
		APIKey:   cfg.DeepfakeAPIKey,
		Timeout:  cfg.DeepfakeTimeout(),
		Retries:  cfg.DeepfakeRetries,
	})

	amountPolicy, err := policyamount.New(ctx, cfg.AmountPolicyBundle)
	if err != nil {
		log.Fatalf("load amount policy bundle: %v", err)
	}

	engine := usecase.NewEngine(usecase.EngineDeps{
		Confidence:      scorer,
		Deepfake:        detector,
		Amount:          amountPolicy,
		Linker:          linkage.BuildEvidenceLinkage,
		DeepfakeWorkers: cfg.DeepfakeWorkers,
	})

	var store usecase.ClaimStore
	pgStore, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("init claim store: %v", err)
	}
	if pgStore.Available() {
		store = db.NewClaimRepository(pgStore)
	} else {
		store = storemem.New()
	}

	var gate *ratelimit.Gate
	if cfg.RateLimitRequests > 0 {
		var limiter domain.RateLimiter
		if cfg.RedisAddr != "" {
			limiter, err = ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
				Limit:    cfg.RateLimitRequests,
				Window:   cfg.RateLimitWindow(),
			})
			if err != nil {
				log.Fatalf("init redis rate limiter: %v", err)
			}
		} else {
			limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryConfig{
				Limit:   cfg.RateLimitRequests,
				Window:  cfg.RateLimitWindow(),
				MaxKeys: cfg.RateLimitMaxKeys,
			})
		}
		gate = ratelimit.NewGate(limiter, cfg.RateLimitFailClosed)
	}

	srv := httpinfra.NewServer(cfg, httpinfra.ServerDeps{
		Claims:    usecase.NewClaimsService(engine, store, nil),
		RateLimit: gate,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
