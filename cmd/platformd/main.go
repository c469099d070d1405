// Command platformd serves runtime-context detection and mini-app init data
// verification over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/platformkit/pkg/api"
	"github.com/dmitrymomot/platformkit/pkg/config"
	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/httpserver"
	"github.com/dmitrymomot/platformkit/pkg/logger"
	"github.com/dmitrymomot/platformkit/pkg/metrics"
	"github.com/dmitrymomot/platformkit/pkg/requestid"
)

// Config is read from the environment and an optional .env file.
type Config struct {
	AppEnv         environment.Environment `env:"APP_ENV"`
	ServiceName    string                  `env:"SERVICE_NAME" envDefault:"platformd"`
	LogLevel       string                  `env:"LOG_LEVEL"`
	BotToken       string                  `env:"BOT_TOKEN"`
	BotUsername    string                  `env:"BOT_USERNAME"`
	InitDataMaxAge time.Duration           `env:"INIT_DATA_MAX_AGE" envDefault:"10m"`
	DetectDebug    bool                    `env:"DETECT_DEBUG"`
	MetricsAddr    string                  `env:"METRICS_ADDR"`
	HTTP           httpserver.Config       `envPrefix:"HTTP_"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "platformd:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	if cfg.BotToken == "" {
		log.Warn("BOT_TOKEN is empty, init data verification will fail")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	router := api.NewRouter(api.Config{
		BotToken:       cfg.BotToken,
		BotUsername:    cfg.BotUsername,
		InitDataMaxAge: cfg.InitDataMaxAge,
		Environment:    cfg.AppEnv,
		Debug:          cfg.DetectDebug,
	}, api.WithLogger(log), api.WithMetrics(m))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	apiServer := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithName("api"), httpserver.WithLogger(log))
	g.Go(func() error { return apiServer.Run(ctx, router) })

	if cfg.MetricsAddr != "" {
		metricsServer := httpserver.New(
			httpserver.WithAddr(cfg.MetricsAddr),
			httpserver.WithName("metrics"),
			httpserver.WithLogger(log),
		)
		g.Go(func() error { return metricsServer.Run(ctx, m.Handler()) })
	}

	return g.Wait()
}

// newLogger follows the APP_ENV preset and LOG_LEVEL overrides its level.
// Without APP_ENV each record carries the environment classified per request.
func newLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv),
		logger.WithService(cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.AppEnv == "" {
		opts = append(opts, logger.WithContextExtractors(environment.LoggerExtractor()))
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}
