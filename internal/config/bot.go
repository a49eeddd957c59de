package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	WSURL     string `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	Codec     string `env:"BOT_CODEC" envDefault:"json"`
	TickHz    int    `env:"BOT_TICK_HZ" envDefault:"60"`
	AutoReady bool   `env:"BOT_AUTO_READY" envDefault:"true"`
	Matches   int    `env:"BOT_MATCHES" envDefault:"1"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
