package config

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogger applies the configured level and output format to the
// standard logrus logger
func ConfigureLogger(cfg *Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
