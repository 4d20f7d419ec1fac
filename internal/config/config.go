package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Format is the encoding of exported snapshots.
type Format string

type LogConfig struct {
	Level slog.Level `mapstructure:"level"`
}

type OutputConfig struct {
	Path     string `mapstructure:"path" validate:"required"`
	Format   Format `mapstructure:"format" validate:"oneof=json yaml"`
	Compress bool   `mapstructure:"compress"`
}

type DocsConfig struct {
	// Suffix is appended to the metadata file's base name to find its
	// documentation file when none is given explicitly.
	Suffix string `mapstructure:"suffix" validate:"required,startswith=."`
}

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
	Docs   DocsConfig   `mapstructure:"docs"`
}

// configDir returns the per-user config directory for clrdoc.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "clrdoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "clrdoc")
	}
	return ""
}

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("clrdoc")
		v.AddConfigPath(".")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("log.level", "warn")
	v.SetDefault("output.path", "./clrdoc")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.compress", true)
	v.SetDefault("docs.suffix", ".xml")

	v.SetEnvPrefix("CLRDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

func stringToLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(slog.Level(0)) || f.Kind() != reflect.String {
			return data, nil
		}
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(data.(string)))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", data, err)
		}
		return l, nil
	}
}

func normalizeFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Format("")) || f.Kind() != reflect.String {
			return data, nil
		}
		return Format(strings.ToLower(strings.TrimSpace(data.(string)))), nil
	}
}

// Load reads the configuration from configFile, or from clrdoc.* in the
// working directory or the user config directory when configFile is empty.
// CLRDOC_* environment variables override file values.
func Load(configFile string) (*Config, error) {
	v, err := newViper(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToLevelHookFunc(),
			normalizeFormatHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

var validate = validator.New()

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
