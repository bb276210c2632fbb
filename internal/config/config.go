package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"

	"github.com/MikhailRaia/shortlink/internal/generator"
)

// Config holds the service settings. Values are resolved in the order
// defaults, JSON file, flags, environment; later sources win.
type Config struct {
	ServerAddress string `json:"server_address" env:"SERVER_ADDRESS"`
	BaseURL       string `json:"base_url" env:"BASE_URL"`
	GRPCAddress   string `json:"grpc_address" env:"GRPC_ADDRESS"`
	IDLength      int    `json:"id_length" env:"ID_LENGTH"`
	IDAlphabet    string `json:"id_alphabet" env:"ID_ALPHABET"`
	MaxAttempts   int    `json:"max_attempts" env:"MAX_ATTEMPTS"`
	GrowAfter     int    `json:"grow_after" env:"GROW_AFTER"`
	LogLevel      string `json:"log_level" env:"LOG_LEVEL"`
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress: "localhost:7878",
		BaseURL:       "http://localhost:7878",
		IDLength:      generator.DefaultLength,
		IDAlphabet:    generator.DefaultAlphabet,
		MaxAttempts:   10,
		GrowAfter:     5,
		LogLevel:      "debug",
	}
}

// NewConfig reads the configuration from the command line, an optional
// JSON file and the environment.
func NewConfig() (*Config, error) {
	cfg := defaultConfig()
	var configPath string

	flag.StringVar(&configPath, "c", "", "Path to JSON config file")
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "HTTP server address (e.g. localhost:8888)")
	flag.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Base URL for shortened URLs (e.g. http://localhost:8000)")
	flag.StringVar(&cfg.GRPCAddress, "g", cfg.GRPCAddress, "gRPC server address, empty disables gRPC")
	flag.IntVar(&cfg.IDLength, "l", cfg.IDLength, "Length of generated identifiers")
	flag.StringVar(&cfg.IDAlphabet, "alphabet", cfg.IDAlphabet, "Characters used in generated identifiers")
	flag.IntVar(&cfg.MaxAttempts, "m", cfg.MaxAttempts, "Identifier attempts before giving up")
	flag.IntVar(&cfg.GrowAfter, "grow-after", cfg.GrowAfter, "Collisions before identifiers get longer, 0 disables")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	flag.Parse()

	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		configPath = envConfig
	}

	if configPath != "" {
		explicit := make(map[string]string)
		flag.Visit(func(f *flag.Flag) {
			explicit[f.Name] = f.Value.String()
		})

		if err := loadFile(configPath, cfg); err != nil {
			return nil, err
		}

		for name, value := range explicit {
			if err := flag.Set(name, value); err != nil {
				return nil, fmt.Errorf("reapplying flag -%s: %w", name, err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerAddress == "" {
		errs = append(errs, errors.New("server address is empty"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base URL is empty"))
	}
	if c.IDLength <= 0 {
		errs = append(errs, fmt.Errorf("id length must be positive, got %d", c.IDLength))
	}
	if err := generator.ValidateAlphabet(c.IDAlphabet); err != nil {
		errs = append(errs, fmt.Errorf("id alphabet: %w", err))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max attempts must be positive, got %d", c.MaxAttempts))
	}
	if c.GrowAfter < 0 {
		errs = append(errs, fmt.Errorf("grow-after must not be negative, got %d", c.GrowAfter))
	}

	return errors.Join(errs...)
}
