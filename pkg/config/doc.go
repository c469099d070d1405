// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// dotenv files are merged into the process environment first, then the
// environment is parsed into a struct using field tags.
//
//	type Config struct {
//		AppEnv   string `env:"APP_ENV" envDefault:"development"`
//		BotToken string `env:"BOT_TOKEN,required"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg, config.WithEnvFiles(".env.local"))
//
// Variables set in the process environment always take precedence over
// values from dotenv files. Errors wrap ErrParsingConfig or ErrLoadingEnvFile
// and can be matched with errors.Is.
package config
