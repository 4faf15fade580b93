package names

import "github.com/rs/zerolog"

type Logger interface {
	Debug() *zerolog.Event
}
