// Package core composes the calendar, day pillar, scoring, rule and risk
// components into the two public entry points.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"saju-match/internal/calendar"
	"saju-match/internal/explain"
	"saju-match/internal/logging"
	"saju-match/internal/metrics"
	"saju-match/internal/model"
	"saju-match/internal/pairscore"
	"saju-match/internal/risk"
	"saju-match/internal/rules"
)

// Supported birth years, inclusive.
const (
	MinYear = 2000
	MaxYear = 2021
)

var ErrDomainRange = errors.New("birth year outside supported range")

// PillarSource resolves the pillars of a calendar date. *daypillar.Provider
// implements it.
type PillarSource interface {
	DayPillar(ctx context.Context, year, month, day int) (model.SajuVector, error)
}

type PersonInput struct {
	Birth  time.Time
	Gender model.Gender
}

type PersonReport struct {
	Gender      model.Gender           `json:"gender"`
	Vector      model.SajuVector       `json:"saju"`
	Pillars     string                 `json:"pillars"`
	Afflictions model.AfflictionVector `json:"afflictions"`
	Explanation []string               `json:"explanation"`
}

type Report struct {
	ID        string            `json:"id"`
	A         PersonReport      `json:"a"`
	B         PersonReport      `json:"b"`
	SubScores model.SubScores   `json:"sub_scores"`
	Bundle    model.ScoreBundle `json:"score"`
	Hits      []rules.Hit       `json:"hits,omitempty"`
}

type Service struct {
	resolver *calendar.Resolver
	pillars  PillarSource
	scorer   pairscore.Scorer
	logger   *logging.Logger
}

func NewService(resolver *calendar.Resolver, pillars PillarSource, scorer pairscore.Scorer, logger *logging.Logger) *Service {
	return &Service{resolver: resolver, pillars: pillars, scorer: scorer, logger: logger}
}

func checkRange(t time.Time) error {
	if y := t.Year(); y < MinYear || y > MaxYear {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrDomainRange, y, MinYear, MaxYear)
	}
	return nil
}

// ComputeSajuVector returns the pillars of a birth instant. The wall clock
// fields of birth are read as Korean standard time; its location is ignored.
func (s *Service) ComputeSajuVector(ctx context.Context, birth time.Time) (model.SajuVector, error) {
	if err := checkRange(birth); err != nil {
		return model.SajuVector{}, err
	}
	return s.vector(ctx, birth)
}

// DayPillar returns the pillars of a calendar date as the provider stores
// them, with year and month taken at noon.
func (s *Service) DayPillar(ctx context.Context, year, month, day int) (model.SajuVector, error) {
	if year < MinYear || year > MaxYear {
		return model.SajuVector{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrDomainRange, year, MinYear, MaxYear)
	}
	return s.pillars.DayPillar(ctx, year, month, day)
}

func (s *Service) vector(ctx context.Context, birth time.Time) (model.SajuVector, error) {
	y, mo, d := birth.Date()
	day, err := s.pillars.DayPillar(ctx, y, int(mo), d)
	if err != nil {
		return model.SajuVector{}, err
	}
	idx, err := s.resolver.Resolve(y, int(mo), d, birth.Hour(), birth.Minute())
	if err != nil {
		return model.SajuVector{}, err
	}
	return model.SajuVector{
		YearStem:    idx.YearStem,
		YearBranch:  idx.YearBranch,
		MonthStem:   idx.MonthStem,
		MonthBranch: idx.MonthBranch,
		DayStem:     day.DayStem,
		DayBranch:   day.DayBranch,
	}, nil
}

// ComputeCompatibility scores a pair of people. Both birth years are checked
// before any lookup, and no report is produced unless both vectors resolve.
func (s *Service) ComputeCompatibility(ctx context.Context, a, b PersonInput) (*Report, error) {
	if err := checkRange(a.Birth); err != nil {
		return nil, fmt.Errorf("person a: %w", err)
	}
	if err := checkRange(b.Birth); err != nil {
		return nil, fmt.Errorf("person b: %w", err)
	}

	var va, vb model.SajuVector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.vector(gctx, a.Birth)
		if err != nil {
			return fmt.Errorf("person a: %w", err)
		}
		va = v
		return nil
	})
	g.Go(func() error {
		v, err := s.vector(gctx, b.Birth)
		if err != nil {
			return fmt.Errorf("person b: %w", err)
		}
		vb = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	subs := pairscore.SubScores(s.scorer, va, vb)
	raw := subs.Raw()
	res := rules.Evaluate(va, vb, a.Gender, b.Gender, raw)
	bundle := risk.Bundle(raw, res.Adjusted, res.AfflictionA, res.AfflictionB)

	rep := &Report{
		ID:        ulid.Make().String(),
		A:         personReport(a.Gender, va, res.AfflictionA),
		B:         personReport(b.Gender, vb, res.AfflictionB),
		SubScores: subs,
		Bundle:    bundle,
		Hits:      res.Hits,
	}
	metrics.Compatibility.WithLabelValues(bundle.Warning.String()).Inc()
	s.logger.Info("compatibility computed",
		logging.Field{Key: "id", Val: rep.ID},
		logging.Field{Key: "raw", Val: bundle.Raw},
		logging.Field{Key: "adjusted", Val: bundle.Adjusted},
		logging.Field{Key: "stress", Val: bundle.Stress},
		logging.Field{Key: "warning", Val: bundle.Warning.String()},
		logging.Field{Key: "hits", Val: len(res.Hits)})
	return rep, nil
}

func personReport(g model.Gender, v model.SajuVector, aff model.AfflictionVector) PersonReport {
	return PersonReport{
		Gender:      g,
		Vector:      v,
		Pillars:     v.String(),
		Afflictions: aff,
		Explanation: explain.Format(aff),
	}
}
