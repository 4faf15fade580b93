package fetch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// PageClient performs a single page retrieval. A non-2xx response is
// returned as a result with its status code, not as an error; errors are
// reserved for transport-level failures.
type PageClient interface {
	Fetch(ctx context.Context, url string) (*models.FetchResult, error)
}

type Logger interface {
	Error() *zerolog.Event
	Warn() *zerolog.Event
	Debug() *zerolog.Event
}
