package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	UpstreamURI string `envconfig:"BE_URI" default:"http://localhost:3001"`
	StateDir    string `envconfig:"STATE_DIR" default:"./state"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:""`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"./static/uploads"`
	PollEvery   int    `envconfig:"POLL_SECONDS" default:"3"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
