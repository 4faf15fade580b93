package league

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/internal/app/fetch"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

type ResultCache interface {
	Get(key string) (*models.LeagueSnapshot, bool)
	Fallback(key string) (*models.LeagueSnapshot, bool)
	Set(key string, snapshot models.LeagueSnapshot, ttl time.Duration)
}

type Fetcher interface {
	Do(ctx context.Context, url string, opts fetch.Options) (*models.FetchResult, error)
}

type Extractor interface {
	Extract(leagueType models.LeagueType, source string, markup string) (*models.LeagueSnapshot, error)
}

type Logger interface {
	Error() *zerolog.Event
	Warn() *zerolog.Event
	Info() *zerolog.Event
	Debug() *zerolog.Event
}
