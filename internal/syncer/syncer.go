package syncer

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/env-fetcher/internal/envfile"
	"github.com/Checker-Finance/env-fetcher/internal/metrics"
	pkgsecrets "github.com/Checker-Finance/env-fetcher/pkg/secrets"
)

// Target names the secret to fetch and where to write it.
type Target struct {
	SecretName string
	OutputPath string
	FileMode   os.FileMode
}

// Result describes a completed sync.
type Result struct {
	Path    string
	Entries int
}

// Syncer fetches one secret and writes it as a .env file.
type Syncer struct {
	logger   *zap.Logger
	provider pkgsecrets.Provider
	metrics  *metrics.Recorder
}

// New constructs a Syncer. rec may be nil.
func New(logger *zap.Logger, provider pkgsecrets.Provider, rec *metrics.Recorder) *Syncer {
	return &Syncer{
		logger:   logger,
		provider: provider,
		metrics:  rec,
	}
}

// Sync runs retrieve → parse → format → write. Any stage failure is logged
// once with its cause and returned; the output file is left untouched.
func (s *Syncer) Sync(ctx context.Context, t Target) (Result, error) {
	start := time.Now()

	res, err := s.sync(ctx, t)
	s.metrics.ObserveRun(start, res.Entries, err)
	if err != nil {
		s.logger.Error("failed to retrieve or format secret",
			zap.String("secret", t.SecretName),
			zap.Error(err))
		return Result{}, err
	}

	s.logger.Info("secret written successfully",
		zap.String("secret", t.SecretName),
		zap.String("path", res.Path),
		zap.Int("entries", res.Entries),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (s *Syncer) sync(ctx context.Context, t Target) (Result, error) {
	raw, err := s.retrieve(ctx, t.SecretName)
	if err != nil {
		return Result{}, err
	}

	payload, err := envfile.Parse([]byte(raw))
	if err != nil {
		return Result{}, fmt.Errorf("parse secret %q: %w", t.SecretName, err)
	}

	content := envfile.Format(payload)

	if err := envfile.WriteFile(t.OutputPath, content, t.FileMode); err != nil {
		return Result{}, fmt.Errorf("write env file: %w", err)
	}
	return Result{Path: t.OutputPath, Entries: len(payload)}, nil
}

func (s *Syncer) retrieve(ctx context.Context, name string) (string, error) {
	s.logger.Debug("secrets.fetch", zap.String("secret", name))

	raw, err := s.provider.GetSecretString(ctx, name)
	if err != nil {
		return "", fmt.Errorf("retrieve secret %q: %w", name, err)
	}
	return raw, nil
}
