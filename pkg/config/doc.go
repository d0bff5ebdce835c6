// Package config loads configuration structs from a YAML file, .env files and
// environment variables, in that order of increasing precedence.
//
// It wraps `gopkg.in/yaml.v3`, `github.com/joho/godotenv` and
// `github.com/caarlos0/env/v11`:
//
//   - WithFile decodes a YAML document using the `yaml` field tags.
//   - WithDotenv loads explicit .env files; without it the default `.env`
//     in the working directory is loaded once per process, if present.
//   - Environment variables are matched through `env` field tags, optionally
//     namespaced with WithPrefix. Unset variables leave file values alone.
//
// # Usage
//
//	type PolicyConfig struct {
//	    OnValidationError string `env:"ON_VALIDATION_ERROR" yaml:"on_validation_error"`
//	}
//
//	var cfg PolicyConfig
//	if err := config.Load(&cfg,
//	    config.WithPrefix("LISTENABLE_"),
//	    config.WithFile("listenable.yaml"),
//	); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// Fields implementing encoding.TextUnmarshaler are decoded through it by both
// the YAML and the environment source.
//
// # Error Handling
//
// Errors wrap one of the sentinels below and can be matched with errors.Is:
//
//   - ErrNilPointer     – nil pointer passed to Load/MustLoad.
//   - ErrReadingFile    – the WithFile path could not be read.
//   - ErrParsingFile    – the file is not valid YAML for the struct.
//   - ErrLoadingDotenv  – an explicit .env file could not be loaded.
//   - ErrParsingConfig  – environment variables could not be parsed.
package config
