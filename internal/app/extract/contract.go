package extract

import (
	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/internal/app/names"
)

type Logger interface {
	Warn() *zerolog.Event
	Debug() *zerolog.Event
}

type NameResolver interface {
	Resolve(name string) (names.Match, bool)
}
