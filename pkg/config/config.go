package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "STORYQ_"

var errInvalidDuration = errors.New("invalid duration")

type Duration struct {
	time.Duration
}

func (d *Duration) set(v interface{}) error {
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case int:
		d.Duration = time.Duration(value)
	case string:
		var err error

		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
	default:
		return errInvalidDuration
	}

	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return d.set(v)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}

	return d.set(v)
}

type Config struct {
	Address            string   `yaml:"address"              validate:"required"`
	StoreURL           string   `yaml:"store_url"            validate:"required"`
	Username           string   `yaml:"username"`
	LogLevel           string   `yaml:"log_level"            validate:"oneof=panic fatal error warn warning info debug trace"`
	DefaultMaxResults  int      `yaml:"default_max_results"  validate:"gte=1,lte=10000"`
	SlowQueryThreshold Duration `yaml:"slow_query_threshold"`
	ShutdownTimeout    Duration `yaml:"shutdown_timeout"`
	Version            string   `yaml:"version"`
}

func Default() *Config {
	return &Config{
		Address:            "localhost:8080",
		StoreURL:           "sqlite://storyq.db",
		LogLevel:           "info",
		DefaultMaxResults:  100,
		SlowQueryThreshold: Duration{200 * time.Millisecond},
		ShutdownTimeout:    Duration{time.Minute},
		Version:            "dev",
	}
}

// Load reads the YAML file at path over the defaults, applies STORYQ_*
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}

		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnvName is the environment variable overriding the named Config field,
// e.g. STORYQ_STORE_URL for StoreURL.
func EnvName(field string) string {
	return EnvPrefix + strcase.ToScreamingSnake(field)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	value := reflect.ValueOf(c).Elem()
	typ := value.Type()

	for i := 0; i < typ.NumField(); i++ {
		name := EnvName(typ.Field(i).Name)

		raw, ok := lookup(name)
		if !ok {
			continue
		}

		switch field := value.Field(i).Addr().Interface().(type) {
		case *string:
			*field = raw
		case *int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: %w", raw, name, err)
			}

			*field = n
		case *Duration:
			if err := field.set(raw); err != nil {
				return fmt.Errorf("invalid value %q for %s: %w", raw, name, err)
			}
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
