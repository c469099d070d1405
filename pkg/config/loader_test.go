package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/platformkit/pkg/config"
)

type serviceConfig struct {
	AppEnv   string        `env:"CFGTEST_APP_ENV" envDefault:"development"`
	MaxAge   time.Duration `env:"CFGTEST_MAX_AGE" envDefault:"10m"`
	BotName  string        `env:"CFGTEST_BOT_USERNAME"`
	Features []string      `env:"CFGTEST_FEATURES" envSeparator:","`
}

type requiredConfig struct {
	Token string `env:"CFGTEST_REQUIRED_TOKEN,required"`
}

type prefixedConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serviceConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 10*time.Minute, cfg.MaxAge)
	assert.Empty(t, cfg.BotName)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_APP_ENV", "production")
	t.Setenv("CFGTEST_MAX_AGE", "90s")
	t.Setenv("CFGTEST_FEATURES", "hints,watch")

	var cfg serviceConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 90*time.Second, cfg.MaxAge)
	assert.Equal(t, []string{"hints", "watch"}, cfg.Features)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_BOT_USERNAME=shop_bot\nCFGTEST_APP_ENV=staging\n"), 0o600))

	// the process environment wins over the file
	t.Setenv("CFGTEST_APP_ENV", "production")
	t.Cleanup(func() { os.Unsetenv("CFGTEST_BOT_USERNAME") })

	var cfg serviceConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))

	assert.Equal(t, "shop_bot", cfg.BotName)
	assert.Equal(t, "production", cfg.AppEnv)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	var cfg serviceConfig
	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrLoadingEnvFile))
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("CFGTEST_REQUIRED_TOKEN")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrParsingConfig))
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("CFGTEST_HTTP_ADDR", ":9000")

	var cfg prefixedConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("CFGTEST_HTTP_")))
	assert.Equal(t, ":9000", cfg.Addr)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *serviceConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("CFGTEST_REQUIRED_TOKEN")
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})

	t.Setenv("CFGTEST_REQUIRED_TOKEN", "123:abc")
	assert.NotPanics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
