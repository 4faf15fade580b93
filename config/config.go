package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Server struct {
	App        App
	Fetch      Fetch
	Cache      Cache
	Extraction Extraction
}

type CacheAdmin struct {
	Cache Cache
}

type App struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	HashedAPIKeys []string      `env:"HASHED_API_KEYS" envSeparator:","`
	SecretKey     string        `env:"SECRET_KEY,required"`
	Timeout       time.Duration `env:"HANDLER_TIMEOUT" envDefault:"45s"`
}

type Fetch struct {
	GlobalMinInterval    time.Duration `env:"FETCH_GLOBAL_MIN_INTERVAL" envDefault:"500ms"`
	PerOriginMinInterval time.Duration `env:"FETCH_PER_ORIGIN_MIN_INTERVAL" envDefault:"2s"`
	MaxRetries           uint          `env:"FETCH_MAX_RETRIES" envDefault:"3"`
	RetryBaseDelay       time.Duration `env:"FETCH_RETRY_BASE_DELAY" envDefault:"1s"`
	RequestTimeout       time.Duration `env:"FETCH_REQUEST_TIMEOUT" envDefault:"15s"`
}

type Cache struct {
	Directory       string        `env:"CACHE_DIRECTORY" envDefault:"./cache"`
	DefaultTTL      time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"1h"`
	MaxAge          time.Duration `env:"CACHE_MAX_AGE" envDefault:"168h"`
	MemoryEntries   int           `env:"CACHE_MEMORY_ENTRIES" envDefault:"32"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"6h"`
}

type Extraction struct {
	FormMaxResults int `env:"FORM_MAX_RESULTS" envDefault:"5"`

	// Sources maps a league type to its default results page, e.g.
	// "bundesliga:https://host/bundesliga,em:https://host/em".
	Sources map[string]string `env:"LEAGUE_SOURCES" envSeparator:","`
}

func (s *Server) Parse() {
	if err := env.Parse(s); err != nil {
		panic(err)
	}
}

func (s *CacheAdmin) Parse() {
	if err := env.Parse(s); err != nil {
		panic(err)
	}
}
