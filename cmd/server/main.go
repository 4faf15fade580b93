package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/internal/adapters/http/client/page"
	"github.com/standingsfeed/standings-service/internal/adapters/http/server/handler"
	"github.com/standingsfeed/standings-service/internal/app/cache"
	"github.com/standingsfeed/standings-service/internal/app/extract"
	"github.com/standingsfeed/standings-service/internal/app/fetch"
	"github.com/standingsfeed/standings-service/internal/app/league"
	"github.com/standingsfeed/standings-service/internal/app/names"
	"github.com/standingsfeed/standings-service/internal/infra/http/server"
	loggerinternal "github.com/standingsfeed/standings-service/internal/infra/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "run",
		Short: "Server starts running the server",
		Run:   startServer,
	}

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func startServer(_ *cobra.Command, _ []string) {
	cfg := config.Server{}
	cfg.Parse()

	logger := loggerinternal.SetupLogger()

	store, err := cache.NewFileStore(cfg.Cache.Directory)
	if err != nil {
		panic(err)
	}

	resultCache := cache.NewResultCache(cfg.Cache, store, logger)

	httpClient := http.Client{}
	pageClient := page.NewClient(&httpClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coordinator := fetch.NewCoordinator(cfg.Fetch, pageClient, logger)
	coordinator.Start(ctx)
	defer coordinator.Stop()

	nameResolver := names.NewResolver(names.DefaultCanonical(), names.DefaultAliases(), logger)
	engine := extract.NewEngine(cfg.Extraction, extract.DefaultBracketFormat(), extract.DefaultCanonicalNames(), nameResolver, logger)

	leagueService := league.NewService(resultCache, coordinator, engine, logger)

	go sweepCache(ctx, resultCache, cfg.Cache.CleanupInterval, logger)

	handlers := server.Handlers{
		LeagueHandler: handler.NewLeagueHandler(leagueService, cfg.Extraction.Sources),
		CacheHandler:  handler.NewCacheHandler(resultCache),
	}

	r, err := server.NewServer(cfg, handlers)
	if err != nil {
		panic(err)
	}

	_ = r.Run(fmt.Sprintf(":%s", cfg.App.Port))
}

// sweepCache purges entries past the retention age on a fixed period.
func sweepCache(ctx context.Context, resultCache *cache.ResultCache, interval time.Duration, logger *zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := resultCache.CleanupExpired()
			if err != nil {
				logger.Error().Err(err).Msg("cache cleanup failed")
				continue
			}

			logger.Info().Int("removed", removed).Msg("cache cleanup finished")
		}
	}
}
