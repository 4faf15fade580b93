package league

import (
	"context"
	"fmt"
	"time"

	"github.com/standingsfeed/standings-service/errs"
	"github.com/standingsfeed/standings-service/internal/app/fetch"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// Service orchestrates one league-data request end to end: fresh cache hit,
// otherwise a coordinated fetch, extraction and a write-through cache
// update. A failed refresh falls back to the most recent stored snapshot
// when one exists, flagged so the caller can tell.
type Service struct {
	cache     ResultCache
	fetcher   Fetcher
	extractor Extractor
	logger    Logger
}

func NewService(cache ResultCache, fetcher Fetcher, extractor Extractor, logger Logger) *Service {
	return &Service{cache: cache, fetcher: fetcher, extractor: extractor, logger: logger}
}

func (s *Service) RequestLeagueData(ctx context.Context, req models.LeagueDataRequest) (*models.LeagueSnapshot, error) {
	key := string(req.LeagueType)

	if req.Debug {
		s.logger.Info().Str("league_type", key).Str("source_url", req.SourceURL).Msg("league data requested")
	}

	if snapshot, ok := s.cache.Get(key); ok {
		snapshot.FromCache = true
		s.logger.Debug().Str("league_type", key).Msg("serving fresh cached snapshot")
		return snapshot, nil
	}

	// Held before the fetch so a stale entry is still available afterwards
	// even if a concurrent cleanup removes it.
	fallback, hasFallback := s.cache.Fallback(key)

	result, err := s.fetcher.Do(ctx, req.SourceURL, fetch.Options{CallerID: key})
	if err != nil {
		if hasFallback {
			s.logger.Warn().Err(err).Str("league_type", key).Msg("fetch failed, serving stale snapshot")
			return flaggedFallback(fallback), nil
		}

		return nil, fmt.Errorf("failed to fetch league %s: %w", key, err)
	}

	snapshot, err := s.extractor.Extract(req.LeagueType, result.URL, result.Body)
	if err != nil {
		if hasFallback {
			s.logger.Warn().Err(err).Str("league_type", key).Msg("extraction failed, serving stale snapshot")
			return flaggedFallback(fallback), nil
		}

		return nil, fmt.Errorf("failed to extract league %s: %w", key, err)
	}

	if len(snapshot.Teams) == 0 && len(snapshot.Fixtures) == 0 {
		if hasFallback {
			s.logger.Warn().Str("league_type", key).Msg("extraction produced no data, serving stale snapshot")
			return flaggedFallback(fallback), nil
		}

		return nil, errs.NewNoDataError(fmt.Sprintf("no standings or fixtures found for league %s", key), key)
	}

	var ttl time.Duration
	if req.TTLOverride != nil {
		ttl = *req.TTLOverride
	}
	s.cache.Set(key, *snapshot, ttl)

	s.logger.Info().
		Str("league_type", key).
		Int("teams", len(snapshot.Teams)).
		Int("fixtures", len(snapshot.Fixtures)).
		Uint("retries", result.Retries).
		Msg("refreshed league snapshot")

	return snapshot, nil
}

func flaggedFallback(snapshot *models.LeagueSnapshot) *models.LeagueSnapshot {
	snapshot.FromCache = true
	snapshot.CacheFallback = true

	return snapshot
}
