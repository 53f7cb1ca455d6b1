package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/scoring"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type rankedProfiles interface {
	Ranked(ctx context.Context) ([]models.Profile, error)
}

// RawCalcStage scores every category report of every ranked profile and aggregates the generic result.
type RawCalcStage struct {
	profiles   rankedProfiles
	generics   genericReportRepository
	categories categoryReportRepository
	aggregator reportAggregator
	runner     stageRunner
}

// NewRawCalcStage creates the raw calculation stage.
func NewRawCalcStage(profiles rankedProfiles, generics genericReportRepository, categories categoryReportRepository, aggregator reportAggregator, metrics *MetricsService, cache periodInvalidator, logger *zap.Logger) *RawCalcStage {
	return &RawCalcStage{
		profiles:   profiles,
		generics:   generics,
		categories: categories,
		aggregator: aggregator,
		runner:     newStageRunner(metrics, cache, logger),
	}
}

// Name implements Stage.
func (s *RawCalcStage) Name() string { return StageRawCalc }

// Run implements Stage. Every person's own sum is stored first; supervisors are blended
// in a second pass so each blend reads this run's individual results of the whole peer group.
// A failure for one person is logged and counted; the rest still run.
func (s *RawCalcStage) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageRawCalc, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		profiles, err := s.profiles.Ranked(ctx)
		if err != nil {
			return err
		}

		type pending struct {
			profile *models.Profile
			generic *models.GenericReport
		}
		var supervisors []pending
		for i := range profiles {
			profile := &profiles[i]
			plog := log.With(zap.Int64("profile_id", profile.ID))

			generic, err := s.calculate(ctx, profile, period)
			switch {
			case errors.Is(err, appErrors.ErrNotFound):
				report.Skipped++
				plog.Info("no generic report for period, skipped")
			case err != nil:
				report.Failed++
				plog.Error("raw calculation failed", zap.Error(err))
			case profile.Cumulative != models.CumulativeNone:
				supervisors = append(supervisors, pending{profile: profile, generic: generic})
			default:
				report.Processed++
			}
		}

		for _, p := range supervisors {
			if _, err := s.aggregator.Recalculate(ctx, p.generic, p.profile, period, AggregateOptions{SkipAdjustment: true}); err != nil {
				report.Failed++
				log.Error("cumulative blend failed", zap.Int64("profile_id", p.profile.ID), zap.Error(err))
				continue
			}
			report.Processed++
		}
		return nil
	})
}

// calculate scores every category of profile's report and stores the unblended sum.
func (s *RawCalcStage) calculate(ctx context.Context, profile *models.Profile, period *models.ReportPeriod) (*models.GenericReport, error) {
	generic, err := findGeneric(ctx, s.generics, profile.ID, period.ID)
	if err != nil {
		return nil, err
	}
	existing, err := s.categories.ListByGeneric(ctx, generic.ID)
	if err != nil {
		return nil, err
	}
	byKind := make(map[models.CategoryKind]models.CategoryReport, len(existing))
	for _, r := range existing {
		byKind[r.Kind] = r
	}

	for _, kind := range models.CategoryKinds {
		report, ok := byKind[kind]
		if !ok {
			payload, err := scoring.MustFor(kind).Encode(nil)
			if err != nil {
				return nil, err
			}
			report = models.CategoryReport{GenericReportID: generic.ID, Kind: kind, Payload: payload}
		}
		report.Result, report.AdjustedResult, err = s.aggregator.Score(&report, generic, period)
		if err != nil {
			return nil, err
		}
		if err := s.categories.Upsert(ctx, &report); err != nil {
			return nil, err
		}
	}

	if _, err := s.aggregator.Recalculate(ctx, generic, profile, period, AggregateOptions{SkipAdjustment: true, SkipBlend: true}); err != nil {
		return nil, err
	}
	return generic, nil
}
