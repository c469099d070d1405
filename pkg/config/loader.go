package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	files  []string
	prefix string
}

// WithEnvFiles loads the given dotenv files before parsing. Variables already
// present in the process environment win. Missing files are an error.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, paths...) }
}

// WithPrefix only reads variables starting with prefix, e.g. "PLATFORMD_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// Load parses environment variables into v based on its `env` struct tags.
// Without WithEnvFiles it tries ./.env and ignores its absence.
//
// Example:
//
//	type Config struct {
//		BotToken string        `env:"BOT_TOKEN,required"`
//		MaxAge   time.Duration `env:"INIT_DATA_MAX_AGE" envDefault:"10m"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(o.files) == 0 {
		// the default .env file is optional
		_ = godotenv.Load()
	} else if err := godotenv.Load(o.files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
