package config

import (
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/chipstore/go/internal/publisher"
)

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)

	c.Clients.CountryCodesURL = getEnv("COUNTRY_CODES_URL", c.Clients.CountryCodesURL)
	c.Clients.NominatimURL = getEnv("NOMINATIM_URL", c.Clients.NominatimURL)
	c.Clients.UserAgent = getEnv("NOMINATIM_USER_AGENT", c.Clients.UserAgent)
	c.Clients.Timeout = getEnvAsSeconds("CLIENT_TIMEOUT_SEC", c.Clients.Timeout)

	c.Publisher.Kind = publisher.Kind(getEnv("PUBLISHER_KIND", string(c.Publisher.Kind)))
	c.Publisher.BufferSize = getEnvAsInt("EVENT_BUFFER_SIZE", c.Publisher.BufferSize)
	c.Publisher.NATS.URL = getEnv("NATS_URL", c.Publisher.NATS.URL)
	c.Publisher.RabbitMQ.URL = getEnv("RABBITMQ_URI", c.Publisher.RabbitMQ.URL)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultValue time.Duration) time.Duration {
	if seconds := getEnvAsInt(key, -1); seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
