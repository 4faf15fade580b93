package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/internal/app/cache"
	loggerinternal "github.com/standingsfeed/standings-service/internal/infra/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cache-admin",
		Short: "cache-admin inspects and maintains the snapshot cache",
	}

	cmdStats := &cobra.Command{
		Use:   "stats",
		Short: "list cached entries with age, remaining ttl and size",
		RunE: func(_ *cobra.Command, _ []string) error {
			return stats()
		},
	}

	cmdCleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "remove entries past the retention age",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cleanup()
		},
	}

	cmdClear := &cobra.Command{
		Use:   "clear",
		Short: "remove every cached entry",
		RunE: func(_ *cobra.Command, _ []string) error {
			return clear()
		},
	}

	rootCmd.AddCommand(cmdStats)
	rootCmd.AddCommand(cmdCleanup)
	rootCmd.AddCommand(cmdClear)

	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func stats() error {
	resultCache, l := run()

	entries, err := resultCache.Stats()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		l.Info().
			Str("key", entry.Key).
			Dur("age", entry.Age).
			Dur("remaining_ttl", entry.RemainingTTL).
			Int64("size_bytes", entry.SizeBytes).
			Msg("cache entry")
	}

	l.Info().Int("entries", len(entries)).Msg("cache stats done")

	return nil
}

func cleanup() error {
	resultCache, l := run()

	removed, err := resultCache.CleanupExpired()
	if err != nil {
		return err
	}

	l.Info().Int("removed", removed).Msg("cache cleanup done")

	return nil
}

func clear() error {
	resultCache, l := run()

	if err := resultCache.ClearAll(); err != nil {
		return err
	}

	l.Info().Msg("cache cleared")

	return nil
}

func run() (*cache.ResultCache, *zerolog.Logger) {
	cfg := config.CacheAdmin{}
	cfg.Parse()

	l := loggerinternal.SetupLogger()

	store, err := cache.NewFileStore(cfg.Cache.Directory)
	if err != nil {
		panic(err)
	}

	return cache.NewResultCache(cfg.Cache, store, l), l
}
