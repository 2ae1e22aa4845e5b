// Package daypillar resolves the full pillar set of a calendar date, reading
// through a persistent cache in front of the lunar calendar service.
package daypillar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"saju-match/internal/cache"
	"saju-match/internal/calendar"
	"saju-match/internal/logging"
	"saju-match/internal/lunar"
	"saju-match/internal/metrics"
	"saju-match/internal/model"
)

type Provider struct {
	cache    cache.Store
	source   lunar.Source
	resolver *calendar.Resolver
	logger   *logging.Logger
	group    singleflight.Group
	now      func() time.Time
}

func New(store cache.Store, source lunar.Source, resolver *calendar.Resolver, logger *logging.Logger) *Provider {
	return &Provider{
		cache:    store,
		source:   source,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// DayPillar returns the pillars of a date with year and month taken at noon.
// A cached entry is returned as stored. On a miss the day code is fetched from
// the lunar source and the result is cached; a failed cache write is logged
// and does not affect the result.
func (p *Provider) DayPillar(ctx context.Context, year, month, day int) (model.SajuVector, error) {
	key := cache.Key(year, month, day)

	if v, ok := p.lookup(ctx, key); ok {
		return v, nil
	}

	res, err, shared := p.group.Do(key, func() (any, error) {
		return p.fill(ctx, key, year, month, day)
	})
	if err != nil {
		return model.SajuVector{}, err
	}
	if shared {
		p.logger.Debug("pillar lookup coalesced", logging.Field{Key: "date", Val: key})
	}
	return res.(model.SajuVector), nil
}

func (p *Provider) lookup(ctx context.Context, key string) (model.SajuVector, bool) {
	e, ok, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.PillarCacheLookups.WithLabelValues("error").Inc()
		p.logger.Warn("pillar cache read failed", logging.Field{Key: "date", Val: key}, logging.Field{Key: "err", Val: err})
		return model.SajuVector{}, false
	case !ok:
		metrics.PillarCacheLookups.WithLabelValues("miss").Inc()
		return model.SajuVector{}, false
	}
	metrics.PillarCacheLookups.WithLabelValues("hit").Inc()
	return e.Vector, true
}

func (p *Provider) fill(ctx context.Context, key string, year, month, day int) (model.SajuVector, error) {
	idx, err := p.resolver.Resolve(year, month, day, 12, 0)
	if err != nil {
		return model.SajuVector{}, err
	}

	code, err := p.source.DayCode(ctx, year, month, day)
	if err != nil {
		if !errors.Is(err, lunar.ErrExternalLookup) {
			err = fmt.Errorf("%w: %w", lunar.ErrExternalLookup, err)
		}
		return model.SajuVector{}, err
	}
	stem, branch, err := model.ParseGanji(code)
	if err != nil {
		return model.SajuVector{}, fmt.Errorf("%w: %s: %w", lunar.ErrExternalLookup, key, err)
	}

	v := model.SajuVector{
		YearStem:    idx.YearStem,
		YearBranch:  idx.YearBranch,
		MonthStem:   idx.MonthStem,
		MonthBranch: idx.MonthBranch,
		DayStem:     stem,
		DayBranch:   branch,
	}

	entry := cache.Entry{Date: key, Vector: v, DayCode: code, CreatedAt: p.now().UTC()}
	if err := p.cache.Put(ctx, entry); err != nil {
		metrics.PillarCacheWriteFailures.Inc()
		if !errors.Is(err, cache.ErrCacheWrite) {
			err = fmt.Errorf("%w: %w", cache.ErrCacheWrite, err)
		}
		p.logger.Warn("pillar cache write failed", logging.Field{Key: "date", Val: key}, logging.Field{Key: "err", Val: err})
	}
	p.logger.Info("pillar resolved", logging.Field{Key: "date", Val: key}, logging.Field{Key: "pillars", Val: v.String()})
	return v, nil
}
