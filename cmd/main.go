package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lexwatch/collector-service/internal/classify"
	"lexwatch/collector-service/internal/config"
	"lexwatch/collector-service/internal/db"
	"lexwatch/collector-service/internal/dedup"
	"lexwatch/collector-service/internal/keywords"
	"lexwatch/collector-service/internal/model"
	"lexwatch/collector-service/internal/pipeline"
	"lexwatch/collector-service/internal/scheduler"
)

type healthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	ConfigHash string `json:"configHash"`
	CacheHits  int64  `json:"cacheHits"`
	CacheRate  string `json:"cacheHitRate"`
}

type ingestResponse struct {
	Outcome string   `json:"outcome"`
	Intent  string   `json:"intent,omitempty"`
	Score   float64  `json:"score"`
	Matched []string `json:"matchedTerms,omitempty"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[collector-service] Config error: %v", err)
	}

	// Relevance filter: tuned defaults, optionally overlaid from YAML.
	filterCfg := classify.DefaultConfig()
	if cfg.FilterConfigPath != "" {
		filterCfg, err = classify.LoadConfigFile(cfg.FilterConfigPath)
		if err != nil {
			log.Fatalf("[collector-service] Filter config error: %v", err)
		}
	}
	filter, err := classify.NewFilter(filterCfg)
	if err != nil {
		log.Fatalf("[collector-service] Filter error: %v", err)
	}
	log.Printf("[collector-service] Filter ready — config hash %s", filter.ConfigHash()[:12])

	// Durable dedup tier: Redis when configured, local SQLite otherwise.
	var store dedup.Store
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[collector-service] Redis error: %v", err)
		}
		defer rdb.Close()
		store = dedup.NewRedisStore(rdb)
		log.Println("[collector-service] Dedup durable tier: redis")
	} else {
		handle, err := db.OpenSQLite(cfg.CacheDBPath)
		if err != nil {
			log.Fatalf("[collector-service] SQLite error: %v", err)
		}
		defer handle.Close()
		store, err = dedup.NewSQLiteStore(handle)
		if err != nil {
			log.Fatalf("[collector-service] SQLite store error: %v", err)
		}
		log.Printf("[collector-service] Dedup durable tier: sqlite (%s)", cfg.CacheDBPath)
	}
	cache := dedup.New(cfg.CacheCapacity, store, time.Duration(cfg.CacheTTLDays)*24*time.Hour, cfg.Source)

	// Postgres is optional: without it accepted posts are classified but not
	// persisted, and keyword stats live in memory only.
	var sink pipeline.Sink
	var kwStore keywords.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("[collector-service] Postgres error: %v", err)
		}
		defer pool.Close()

		pgSink, err := pipeline.NewPostgresSink(ctx, pool)
		if err != nil {
			log.Fatalf("[collector-service] Sink error: %v", err)
		}
		sink = pgSink

		kwStore, err = keywords.NewPostgresStore(ctx, pool)
		if err != nil {
			log.Fatalf("[collector-service] Keyword store error: %v", err)
		}
		log.Println("[collector-service] Postgres connected")
	} else {
		log.Println("[collector-service] DATABASE_URL not set — running without persistence")
	}

	tracker := keywords.NewTracker(kwStore, 5, 0.2)
	if kwStore != nil {
		if err := tracker.Load(ctx); err != nil {
			log.Fatalf("[collector-service] Keyword load error: %v", err)
		}
	}
	tracker.Seed(cfg.Keywords)

	pipe := pipeline.New(cache, filter, sink)

	// No collector is wired in-process; collection runs when one is attached.
	// Maintenance (cache purge, tracker flush) still runs on the interval.
	sched := scheduler.New(cache, tracker, nil, cfg.MaintenanceIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[collector-service] Scheduler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := cache.Stats()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{
			Status:     "ok",
			Service:    "collector-service",
			ConfigHash: pipe.ConfigHash(),
			CacheHits:  stats.Hits,
			CacheRate:  fmt.Sprintf("%.2f", stats.HitRate()),
		})
	})
	mux.HandleFunc("/ingest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var raw model.RawPost
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		outcome, res, err := pipe.Process(r.Context(), "ingest-"+time.Now().UTC().Format("20060102"), raw)
		if err != nil {
			log.Printf("[collector-service] Ingest store error: %v", err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ingestResponse{
			Outcome: string(outcome),
			Intent:  string(res.Intent),
			Score:   res.Score,
			Matched: res.MatchedTerms,
		})
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux}
	go func() {
		log.Printf("[collector-service] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[collector-service] Fatal: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[collector-service] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[collector-service] HTTP shutdown error: %v", err)
	}
}
