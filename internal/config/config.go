package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultWeatherBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultWeatherBaseURL = "http://api.openweathermap.org/data/2.5/weather"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather provider configuration. A missing or placeholder key is not a
	// load error; the Risk Tool reports it per call.
	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherTimeout time.Duration // 0 disables the client timeout

	// Decision event publishing.
	DecisionsEnabled   bool
	KafkaBrokers       []string
	KafkaDecisionTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseWeatherTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL: sharedcfg.EnvOrDefault("WEATHER_BASE_URL", DefaultWeatherBaseURL),
		WeatherTimeout: weatherTimeout,

		DecisionsEnabled:   os.Getenv("DECISIONS_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaDecisionTopic: sharedcfg.EnvOrDefault("KAFKA_DECISION_TOPIC", "underwriting-decisions"),
	}

	if cfg.DecisionsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("DECISIONS_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaDecisionTopic == "" {
			return nil, errors.New("KAFKA_DECISION_TOPIC is required")
		}
	}

	return cfg, nil
}

func parseWeatherTimeout() (time.Duration, error) {
	s := os.Getenv("WEATHER_TIMEOUT")
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid WEATHER_TIMEOUT")
	}
	return d, nil
}
