package cache

import "github.com/rs/zerolog"

type Logger interface {
	Error() *zerolog.Event
	Debug() *zerolog.Event
}
