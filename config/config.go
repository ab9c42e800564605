package config

import (
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type Config struct {
	Poloniex struct {
		BaseURL        string
		TimeoutSeconds int
		APIKey         string
		SecretKey      string
	}
	Store struct {
		DataDir  string
		Filename string
	}
	Logging struct {
		Mode string
	}
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Poloniex.BaseURL = "https://poloniex.com/public"
	cfg.Poloniex.TimeoutSeconds = 10
	cfg.Store.DataDir = "."
	cfg.Store.Filename = "currency.lst"
	cfg.Logging.Mode = "development"
	return cfg
}

// Load reads settings from an ini file. Missing keys fall back to the
// same defaults Default uses.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}

	cfg := &Config{}
	cfg.Poloniex.BaseURL = file.Section("poloniex").Key("base_url").MustString("https://poloniex.com/public")
	cfg.Poloniex.TimeoutSeconds = file.Section("poloniex").Key("timeout_seconds").MustInt(10)
	cfg.Poloniex.APIKey = file.Section("poloniex").Key("api_key").String()
	cfg.Poloniex.SecretKey = file.Section("poloniex").Key("secret_key").String()

	cfg.Store.DataDir = file.Section("store").Key("data_dir").MustString(".")
	cfg.Store.Filename = file.Section("store").Key("filename").MustString("currency.lst")

	cfg.Logging.Mode = file.Section("logging").Key("mode").MustString("development")

	return cfg, nil
}

// Validate checks the fields every caller needs.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Poloniex.BaseURL == "" {
		return errors.New("poloniex.base_url is required")
	}
	if cfg.Poloniex.TimeoutSeconds <= 0 {
		return errors.New("poloniex.timeout_seconds must be > 0")
	}
	if cfg.Store.DataDir == "" {
		return errors.New("store.data_dir is required")
	}
	if cfg.Store.Filename == "" {
		return errors.New("store.filename is required")
	}
	return nil
}

// ForLogging returns a copy of cfg with credentials masked.
func ForLogging(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	masked := *cfg
	if masked.Poloniex.APIKey != "" {
		masked.Poloniex.APIKey = "*****"
	}
	if masked.Poloniex.SecretKey != "" {
		masked.Poloniex.SecretKey = "*****"
	}
	return &masked
}
