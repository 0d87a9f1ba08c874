package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/jokehub/jokehub/internal/auth/http"
	authservice "github.com/jokehub/jokehub/internal/auth/service"
	"github.com/jokehub/jokehub/internal/common/clock"
	"github.com/jokehub/jokehub/internal/common/config"
	"github.com/jokehub/jokehub/internal/common/constants"
	commoncrypto "github.com/jokehub/jokehub/internal/common/crypto"
	"github.com/jokehub/jokehub/internal/common/db"
	commonhttp "github.com/jokehub/jokehub/internal/common/http"
	"github.com/jokehub/jokehub/internal/common/logger"
	srv "github.com/jokehub/jokehub/internal/common/server"
	jokehttp "github.com/jokehub/jokehub/internal/joke/http"
	jokerepo "github.com/jokehub/jokehub/internal/joke/repository"
	jokeservice "github.com/jokehub/jokehub/internal/joke/service"
	"github.com/jokehub/jokehub/internal/session"
	userrepo "github.com/jokehub/jokehub/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "jokehub", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	users := userrepo.NewPgRepository(pool)
	jokes := jokerepo.NewPgRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()

	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL, clk)
	auth := authservice.NewAuthService(users, hasher, idGenerator, codec, log)
	jokeSvc := jokeservice.NewJokeService(jokes, idGenerator, log)

	authHandler := authhttp.NewHandler(auth, log)
	jokeHandler := jokehttp.NewHandler(jokeSvc, auth, users, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/login", authHandler)
	mux.Handle("/logout", authHandler)
	mux.Handle("/api/auth/", authHandler)
	mux.Handle("/jokes", jokeHandler)
	mux.Handle("/jokes/", jokeHandler)

	base := commonhttp.BuildBaseHandler(log, cfg.RequestTimeout, mux)

	loginLimiter := commonhttp.NewRateLimiter(constants.LoginRateLimitPerSecond, constants.LoginRateLimitBurst)
	limitedBase := loginLimiter.Middleware()(base)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			limitedBase.ServeHTTP(w, r)
			return
		}
		base.ServeHTTP(w, r)
	})

	server := srv.New(cfg.HTTPPort, handler)
	srv.StartWithGracefulShutdown(server, log)
}
