package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"schoolscout-engine/internal/config"
	"schoolscout-engine/internal/events"
	"schoolscout-engine/internal/httpapi"
	"schoolscout-engine/internal/identity"
	"schoolscout-engine/internal/profile"
	"schoolscout-engine/internal/refresh"
	"schoolscout-engine/internal/saved"
	"schoolscout-engine/internal/scheduler"
	"schoolscout-engine/internal/schools"
	"schoolscout-engine/internal/secrets"
	"schoolscout-engine/internal/source"
	"schoolscout-engine/internal/store"
)

func main() {
	_ = godotenv.Load()

	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("SCHOOLSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running against %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		applyEnvOverrides(&cfg)
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "schoolscout.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote tier is optional: the engine is fully usable offline.
	var pool *pgxpool.Pool
	if cfg.Remote.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.Remote.DatabaseURL)
		if err != nil {
			log.Printf("[main] remote store unavailable: %v", err)
			pool = nil
		}
	}

	var rdb *redis.Client
	if cfg.Remote.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Remote.RedisURL)
		if err != nil {
			log.Printf("[main] bad redis url: %v", err)
		} else {
			rdb = redis.NewClient(opts)
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Printf("[main] redis unavailable: %v", err)
				rdb = nil
			}
		}
	}

	ident := identity.Load(ctx, db.Pool)

	// A restored session is only good if its token is still in the keychain.
	if userID, ok := ident.Session(); ok {
		if _, err := secrets.GetSessionToken(secrets.SessionAccount(userID)); err != nil {
			log.Printf("[main] stored session has no keychain token, clearing: %v", err)
			ident.ClearSession()
		} else {
			log.Printf("[main] restored session for user=%s", userID)
		}
	}

	var remote saved.Remote
	if pool != nil {
		remote = saved.PostgresRemote{Pool: pool}
	}
	savedStore := saved.New(saved.SQLiteLocal{DB: db.Pool}, remote, ident.Session)

	hub := events.NewHub()

	// Source chain: remote (cached) -> imported catalog -> embedded seed.
	var sources []source.Source
	if pool != nil {
		var remoteSrc source.Source = source.PostgresSource{Pool: pool}
		if rdb != nil {
			ttl := time.Duration(cfg.Remote.CacheTTLSeconds) * time.Second
			if ttl <= 0 {
				ttl = 15 * time.Minute
			}
			remoteSrc = source.Cached{Next: remoteSrc, RDB: rdb, TTL: ttl}
		}
		sources = append(sources, remoteSrc)
	}
	sources = append(sources, source.CatalogSource{DB: db.Pool}, source.StaticSource{})

	svc := &schools.Service{
		CfgVal:   &cfgVal,
		Source:   source.Composite{Sources: sources},
		Saved:    savedStore,
		Profiles: profile.Store{DB: db.Pool},
		Hub:      hub,
	}

	refresher := refresh.New(svc, db.Pool, &cfgVal, cfg.Remote.RefreshHours)
	if err := refresher.Start(ctx); err != nil {
		log.Fatalf("refresh start failed: %v", err)
	}
	defer refresher.Stop()

	// Imported catalog entries not re-seen within the retention window age
	// out once a day.
	go scheduler.Every(ctx, 24*time.Hour, "catalog-prune", func(context.Context) error {
		days := cfgVal.Load().(config.Config).Retention.CatalogDays
		if days <= 0 {
			days = 90
		}
		n, err := store.PruneCatalog(db.Pool, time.Duration(days)*24*time.Hour)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[catalog-prune] deleted=%d", n)
		}
		return nil
	})

	mux := httpapi.NewMux(httpapi.Deps{
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Svc:         svc,
		Saved:       savedStore,
		Profiles:    profile.Store{DB: db.Pool},
		Identity:    ident,
		Hub:         hub,
		RunOnce:     func() { refresher.RunOnce(ctx) },
	})

	port := cfg.App.Port
	if port == 0 {
		port = 38561
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	// The desktop shell reads this to shut the engine down cleanly.
	if err := os.WriteFile(filepath.Join(dataDir, "shutdown.token"), []byte(token), 0o600); err != nil {
		log.Printf("[main] token write failed: %v", err)
	}

	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)
	log.Fatal(srv.Serve(ln))
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Remote.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Remote.RedisURL = v
	}
}
