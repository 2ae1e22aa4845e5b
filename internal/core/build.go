package core

import (
	"fmt"
	"io"

	"saju-match/internal/cache"
	"saju-match/internal/calendar"
	"saju-match/internal/config"
	"saju-match/internal/daypillar"
	"saju-match/internal/logging"
	"saju-match/internal/lunar"
	"saju-match/internal/pairscore"
)

// Build constructs a Service from cfg. Everything it loads is read-only
// afterwards; the returned Closer releases the cache backend.
func Build(cfg config.Config, logger *logging.Logger) (*Service, io.Closer, error) {
	applyRuntime(cfg, logger)

	table, err := calendar.LoadTable(cfg.Calendar.BoundaryFile)
	if err != nil {
		return nil, nil, err
	}
	first, last := table.Years()

	scorer, err := newScorer(cfg.Scoring)
	if err != nil {
		return nil, nil, err
	}

	store, err := cache.New(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	var source lunar.Source
	switch cfg.Lunar.Mode {
	case "offline":
		source = lunar.Offline{}
	default:
		source = lunar.NewClient(cfg.Lunar, logger)
	}

	resolver := calendar.NewResolver(table)
	provider := daypillar.New(store, source, resolver, logger)

	logger.Info("service ready",
		logging.Field{Key: "boundary_years", Val: fmt.Sprintf("%d-%d", first, last)},
		logging.Field{Key: "lunar", Val: cfg.Lunar.Mode},
		logging.Field{Key: "cache", Val: cfg.Cache.Backend},
		logging.Field{Key: "model", Val: cfg.Scoring.ModelFile})
	return NewService(resolver, provider, scorer, logger), store, nil
}

func newScorer(cfg config.ScoringConfig) (pairscore.Scorer, error) {
	if cfg.ModelFile == "" {
		return pairscore.ElementScorer{}, nil
	}
	m, err := pairscore.LoadModel(cfg.ModelFile)
	if err != nil {
		return nil, fmt.Errorf("load scoring model: %w", err)
	}
	return m, nil
}

func applyRuntime(cfg config.Config, logger *logging.Logger) {
	logger.SetJSON(cfg.Logging.JSON)
	logger.SetLevel(cfg.Logging.Level)
}
