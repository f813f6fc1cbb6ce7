package main

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"coffee_finder/internal/adapters/foursquare"
	server "coffee_finder/internal/adapters/http_server"
	"coffee_finder/internal/adapters/iplocate"
	"coffee_finder/internal/adapters/observability"
	redisad "coffee_finder/internal/adapters/redis"
	"coffee_finder/internal/adapters/unsplash"
	"coffee_finder/internal/app"
	"coffee_finder/internal/geo"
	"coffee_finder/internal/shared"
	mysqlrepo "coffee_finder/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	places, err := foursquare.New(cfg.FsqBase, cfg.FsqKey, cfg.FsqRPS, cfg.SearchQuery, cfg.DefaultLatLng, cfg.DefaultLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	images := unsplash.New(cfg.UnsplashBase, cfg.UnsplashKey)
	tracker := geo.NewTracker(iplocate.New(cfg.GeoIPBase), 10*time.Second)

	directory := app.NewDirectoryService(places, images, cache, cfg.CacheTTL, tracker)
	stores := app.NewStoreService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{D: directory, S: stores, NearRadius: cfg.NearRadius, NearLimit: cfg.NearLimit})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
