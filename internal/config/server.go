package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	WinScore        int           `env:"WIN_SCORE" envDefault:"21"`
	GameSeconds     int           `env:"GAME_SECONDS" envDefault:"300"`
	QueueTTL        time.Duration `env:"QUEUE_TTL" envDefault:"5m"`
	LobbyTTL        time.Duration `env:"LOBBY_TTL" envDefault:"2m"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"15s"`

	WSSendBuffer int   `env:"WS_SEND_BUFFER" envDefault:"64"`
	WSReadLimit  int64 `env:"WS_READ_LIMIT" envDefault:"16384"`
}

// HistoryEnabled reports whether finished matches are persisted.
func (c ServerConfig) HistoryEnabled() bool {
	return c.PostgresDSN != ""
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
