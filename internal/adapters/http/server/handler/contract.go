package handler

import (
	"context"

	"github.com/standingsfeed/standings-service/internal/app/cache"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

type LeagueService interface {
	RequestLeagueData(ctx context.Context, request models.LeagueDataRequest) (*models.LeagueSnapshot, error)
}

type CacheService interface {
	Stats() ([]cache.EntryStats, error)
	CleanupExpired() (int, error)
	ClearAll() error
}
