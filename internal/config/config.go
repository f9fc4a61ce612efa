// Package config loads the application configuration from defaults, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is the prefix of all environment variables. Nested keys are
// separated by two underscores, e.g. PESAPOTS_BACKEND__URL.
const EnvPrefix = "PESAPOTS_"

type Config struct {
	Server  Server  `koanf:"server"`
	Log     Log     `koanf:"log"`
	Backend Backend `koanf:"backend"`
	Cache   Cache   `koanf:"cache"`
	Events  Events  `koanf:"events"`
}

type Server struct {
	Port             int    `koanf:"port"`
	GinMode          string `koanf:"ginmode"`
	APIURL           string `koanf:"apiurl"`           // External URL of the API, used for links
	CorsAllowOrigins string `koanf:"corsalloworigins"` // Space separated
	EnablePprof      bool   `koanf:"enablepprof"`
}

type Log struct {
	Format string `koanf:"format"` // json or human. Empty selects human in gin debug mode
	Level  string `koanf:"level"`  // Empty selects info, or debug in gin debug mode
}

type Backend struct {
	URL         string        `koanf:"url"`
	Timeout     time.Duration `koanf:"timeout"`
	AccessToken string        `koanf:"accesstoken"`
}

type Cache struct {
	Path string `koanf:"path"` // sqlite database file
	Key  string `koanf:"key"`
}

type Events struct {
	AMQPURL  string `koanf:"amqpurl"` // Publishing is disabled when empty
	Exchange string `koanf:"exchange"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:    8080,
			GinMode: "release",
			APIURL:  "http://localhost:8080",
		},
		Backend: Backend{
			URL:     "http://localhost:8000/api",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			Path: "data/pesapots.db",
			Key:  "personal-finance-app-data",
		},
		Events: Events{
			Exchange: "pesapots.changes",
		},
	}
}

// Load reads the configuration. Values from the YAML file at path override
// the defaults, environment variables override both. A .env file in the
// working directory is loaded into the environment first. Neither file has
// to exist.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("error loading default configuration: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("error loading configuration from %s: %w", path, err)
			}
			log.Info().Str("path", path).Msg("config file not found, using defaults and environment variables")
		} else {
			log.Debug().Str("path", path).Msg("loaded configuration file")
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "__", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("error loading configuration from environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("error reading configuration: %w", err)
	}

	return c, c.validate()
}

// URL returns the parsed external API URL.
func (s Server) URL() (*url.URL, error) {
	u, err := url.Parse(strings.TrimSuffix(s.APIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("server.apiurl must be a valid URL: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server.apiurl must be an absolute URL, got %q", s.APIURL)
	}
	return u, nil
}

func (c Config) validate() error {
	if _, err := c.Server.URL(); err != nil {
		return err
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Log.Format {
	case "", "json", "human":
	default:
		return fmt.Errorf("log.format must be json or human, got %q", c.Log.Format)
	}

	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}

	if c.Cache.Key == "" {
		return errors.New("cache.key must not be empty")
	}

	return nil
}
