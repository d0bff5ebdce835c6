package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	prefix      string
	file        string
	dotenv      []string
	environment map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "APP_" turns
// `env:"PORT"` into APP_PORT.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithFile reads a YAML document into the struct before the environment is
// applied. Environment variables win over file values.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithDotenv loads the given .env files into the process environment.
// Unlike the default .env lookup, a missing file is an error.
func WithDotenv(files ...string) Option {
	return func(o *loadOptions) {
		o.dotenv = append(o.dotenv, files...)
	}
}

// WithEnvironment parses from env instead of the process environment.
// Handy in tests.
func WithEnvironment(env map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = env
	}
}

// Load fills v from, in order: the YAML file given with WithFile, the .env
// files, and environment variables matched by `env` struct tags.
//
// Example:
//
//	type PolicyConfig struct {
//		OnError string `env:"ON_ERROR" yaml:"on_error" envDefault:"log"`
//	}
//
//	var cfg PolicyConfig
//	err := config.Load(&cfg, config.WithPrefix("APP_"), config.WithFile("app.yaml"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return errors.Join(ErrReadingFile, err)
		}
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.Join(ErrParsingFile, err)
		}
	}

	if len(o.dotenv) > 0 {
		if err := godotenv.Load(o.dotenv...); err != nil {
			return errors.Join(ErrLoadingDotenv, err)
		}
	} else {
		defaultEnvLoaded.Do(func() {
			// Ignore errors - the .env file might not exist and that's ok
			_ = godotenv.Load()
		})
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
