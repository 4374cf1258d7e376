package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

type Config struct {

	// Destination directory; when empty the converter writes to a
	// directory named after the input file, next to it
	OutputDir string `env:"WXR_OUTPUT_DIR"`

	// Fail the run on a taxonomy parent reference that does not
	// resolve, instead of rendering the raw slug
	Strict bool `env:"WXR_STRICT" envDefault:"false"`
}

// New creates new config object
func New() *Config {

	// Parse the config from the environment
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}

	return &cfg
}
