// Package config loads the screen host configuration: defaults, then an
// optional YAML file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mcdev12/chipstore/go/clients/country_codes_client"
	"github.com/mcdev12/chipstore/go/clients/nominatim_client"
	"github.com/mcdev12/chipstore/go/internal/publisher"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Clients   ClientsConfig   `yaml:"clients"`
	Publisher PublisherConfig `yaml:"publisher"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type WebSocketConfig struct {
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	PingInterval    time.Duration `yaml:"ping_interval"`
	MaxMessageSize  int64         `yaml:"max_message_size"`
	ReadBufferSize  int           `yaml:"read_buffer_size"`
	WriteBufferSize int           `yaml:"write_buffer_size"`
	SendBufferSize  int           `yaml:"send_buffer_size"`
}

type ClientsConfig struct {
	CountryCodesURL      string        `yaml:"country_codes_url"`
	CountryCodesEndpoint string        `yaml:"country_codes_endpoint"`
	NominatimURL         string        `yaml:"nominatim_url"`
	UserAgent            string        `yaml:"user_agent"`
	Timeout              time.Duration `yaml:"timeout"`
}

type PublisherConfig struct {
	Kind           publisher.Kind `yaml:"kind"`
	BufferSize     int            `yaml:"buffer_size"`
	PublishTimeout time.Duration  `yaml:"publish_timeout"`
	NATS           NATSConfig     `yaml:"nats"`
	RabbitMQ       RabbitMQConfig `yaml:"rabbitmq"`
}

type NATSConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

func Default() *Config {
	natsDefaults := publisher.DefaultNATSConfig()
	rabbitDefaults := publisher.DefaultRabbitMQConfig()
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		WebSocket: WebSocketConfig{
			WriteTimeout:    10 * time.Second,
			ReadTimeout:     60 * time.Second,
			PingInterval:    30 * time.Second,
			MaxMessageSize:  4096,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			SendBufferSize:  256,
		},
		Clients: ClientsConfig{
			CountryCodesURL:      country_codes_client.BaseURL,
			CountryCodesEndpoint: country_codes_client.CountryCodesEndpoint,
			NominatimURL:         nominatim_client.BaseURL,
			UserAgent:            nominatim_client.DefaultUserAgent,
			Timeout:              10 * time.Second,
		},
		Publisher: PublisherConfig{
			Kind:           publisher.KindLog,
			BufferSize:     publisher.DefaultBufferSize,
			PublishTimeout: publisher.DefaultPublishTimeout,
			NATS: NATSConfig{
				URL:           natsDefaults.URL,
				SubjectPrefix: natsDefaults.SubjectPrefix,
				MaxReconnects: natsDefaults.MaxReconnects,
				ReconnectWait: natsDefaults.ReconnectWait,
			},
			RabbitMQ: RabbitMQConfig{
				URL:      rabbitDefaults.URL,
				Exchange: rabbitDefaults.Exchange,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	switch c.Publisher.Kind {
	case publisher.KindLog, publisher.KindNATS, publisher.KindRabbitMQ:
	default:
		return fmt.Errorf("unknown publisher kind %q", c.Publisher.Kind)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// ZerologLevel returns the parsed level, falling back to info.
func (c LogConfig) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// PublisherConfig converts to the publisher package's options.
func (c PublisherConfig) PublisherConfig() publisher.Config {
	return publisher.Config{
		Kind: c.Kind,
		NATS: publisher.NATSConfig{
			URL:           c.NATS.URL,
			SubjectPrefix: c.NATS.SubjectPrefix,
			MaxReconnects: c.NATS.MaxReconnects,
			ReconnectWait: c.NATS.ReconnectWait,
		},
		RabbitMQ: publisher.RabbitMQConfig{
			URL:      c.RabbitMQ.URL,
			Exchange: c.RabbitMQ.Exchange,
		},
	}
}
