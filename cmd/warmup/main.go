// warmup discovers the default-area stores, enriches them, and persists each
// one idempotently, so the initial page's detail views and votes have targets
// before any user opens a store.
package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"coffee_finder/internal/adapters/foursquare"
	"coffee_finder/internal/adapters/observability"
	"coffee_finder/internal/adapters/unsplash"
	"coffee_finder/internal/app"
	"coffee_finder/internal/shared"
	mysqlrepo "coffee_finder/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("area", cfg.DefaultLatLng).
		Int("limit", cfg.DefaultLimit).
		Int("workers", cfg.Workers).
		Msg("warmup starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	places, err := foursquare.New(cfg.FsqBase, cfg.FsqKey, cfg.FsqRPS, cfg.SearchQuery, cfg.DefaultLatLng, cfg.DefaultLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	images := unsplash.New(cfg.UnsplashBase, cfg.UnsplashKey)

	cands, err := places.Search(ctx, nil, 0, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("default-area discovery failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, cand := range cands {
		cand := cand

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			store := app.NormalizeStore(cand, images.ResolveImage(ctx, cand))
			out, created, err := repo.Create(ctx, store)
			if err != nil {
				log.Warn().Str("id", store.ID).Err(err).Msg("persist failed")
				return
			}
			log.Info().Str("id", out.ID).Bool("created", created).Msg("persist ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("warmup completed")
}
