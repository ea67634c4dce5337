package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/env-fetcher/internal/metrics"
	"github.com/Checker-Finance/env-fetcher/internal/syncer"
	"github.com/Checker-Finance/env-fetcher/pkg/config"
	pkgsecrets "github.com/Checker-Finance/env-fetcher/pkg/secrets"
	"github.com/Checker-Finance/env-fetcher/pkg/utils"
)

// Run loads configuration, fetches the configured secret and writes it out.
// Configuration errors (wrapping config.ErrMissingEnv or config.ErrInvalidEnv)
// are returned before newProvider is called and are not logged here. Runtime
// errors have already been reported by the syncer when Run returns them.
func Run(ctx context.Context, logger *zap.Logger, newProvider pkgsecrets.Factory) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	start := time.Now()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	logger.Debug("config.loaded",
		zap.String("secret", cfg.SecretName),
		zap.String("region", cfg.Region),
		zap.String("output_path", cfg.OutputPath))

	var rec *metrics.Recorder
	if cfg.PushgatewayURL != "" {
		rec = metrics.New()
		defer pushMetrics(logger, rec, cfg)
	}

	provider, err := newProvider(ctx, cfg.Region)
	if err != nil {
		err = fmt.Errorf("create secrets provider: %w", err)
		rec.ObserveRun(start, 0, err)
		logger.Error("failed to retrieve or format secret",
			zap.String("secret", cfg.SecretName),
			zap.Error(err))
		return err
	}

	s := syncer.New(logger, provider, rec)
	_, err = s.Sync(ctx, syncer.Target{
		SecretName: cfg.SecretName,
		OutputPath: cfg.OutputPath,
		FileMode:   cfg.OutputFileMode,
	})
	return err
}

// pushMetrics uses a fresh context bounded by cfg.PushTimeout, not the run context.
func pushMetrics(logger *zap.Logger, rec *metrics.Recorder, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.PushTimeout)
	defer cancel()

	if err := rec.Push(ctx, cfg.PushgatewayURL, cfg.ServiceName, cfg.SecretName); err != nil {
		logger.Warn("metrics.push_failed", zap.String("error", utils.MaskURLCredentials(err.Error())))
		return
	}
	logger.Debug("metrics.pushed", zap.String("url", utils.MaskURLCredentials(cfg.PushgatewayURL)))
}
