package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/scoring"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type genericReportRepository interface {
	FindByID(ctx context.Context, id int64) (*models.GenericReport, error)
	FindByProfilePeriod(ctx context.Context, profileID, periodID int64) (*models.GenericReport, error)
	Upsert(ctx context.Context, report *models.GenericReport) error
	UpdateResult(ctx context.Context, id int64, individual, result float64) error
	Close(ctx context.Context, id int64) error
	SumPeerResults(ctx context.Context, periodID int64, mode models.CumulativeMode, scopeID, excludeID int64) (float64, int, error)
}

type categoryReportRepository interface {
	ListByGeneric(ctx context.Context, genericID int64) ([]models.CategoryReport, error)
	ListByPeriodKind(ctx context.Context, periodID int64, kind models.CategoryKind) ([]models.CategoryReport, error)
	Upsert(ctx context.Context, report *models.CategoryReport) error
	UpdateScores(ctx context.Context, id int64, result, adjusted float64) error
}

// AggregateOptions tunes a generic report recalculation.
type AggregateOptions struct {
	// SkipAdjustment sums the stored adjusted results without rescoring categories.
	SkipAdjustment bool
	// SkipBlend stores the individual sum as the result, leaving peer blending to a later pass.
	SkipBlend bool
}

// AggregateService sums category results into the generic result and blends supervisors with their peers.
type AggregateService struct {
	generics   genericReportRepository
	categories categoryReportRepository
	normalizer scoring.Normalizer
	logger     *zap.Logger
}

// NewAggregateService creates an aggregate service.
func NewAggregateService(generics genericReportRepository, categories categoryReportRepository, normalizer scoring.Normalizer, logger *zap.Logger) *AggregateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregateService{generics: generics, categories: categories, normalizer: normalizer, logger: logger}
}

// Score decodes report's payload and returns its raw and adjusted results.
func (s *AggregateService) Score(report *models.CategoryReport, generic *models.GenericReport, period *models.ReportPeriod) (float64, float64, error) {
	category, ok := scoring.For(report.Kind)
	if !ok {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", report.Kind))
	}
	input, err := category.Decode(report.Payload)
	if err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, "stored payload cannot be decoded")
	}
	raw := category.Score(input, scoring.NewContext(generic, period))
	return raw, s.normalizer.Adjust(raw, generic), nil
}

// Recalculate recomputes and stores the generic result of generic, owned by profile.
// The stored values are also written back into generic.
func (s *AggregateService) Recalculate(ctx context.Context, generic *models.GenericReport, profile *models.Profile, period *models.ReportPeriod, opts AggregateOptions) (float64, error) {
	if generic == nil {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "generic report not found")
	}
	reports, err := s.categories.ListByGeneric(ctx, generic.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load category reports")
	}

	var sum float64
	for i := range reports {
		report := &reports[i]
		if !opts.SkipAdjustment {
			raw, adjusted, err := s.Score(report, generic, period)
			if err != nil {
				return 0, err
			}
			if err := s.categories.UpdateScores(ctx, report.ID, raw, adjusted); err != nil {
				return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store category scores")
			}
			report.Result, report.AdjustedResult = raw, adjusted
		}
		category, ok := scoring.For(report.Kind)
		if !ok {
			continue
		}
		sum += report.AdjustedResult * category.AdjustRate
	}
	sum = scoring.Round2(sum)

	result := sum
	if !opts.SkipBlend {
		if result, err = s.blend(ctx, sum, generic, profile); err != nil {
			return 0, err
		}
	}
	if err := s.generics.UpdateResult(ctx, generic.ID, sum, result); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store generic result")
	}
	generic.IndividualResult, generic.Result = sum, result
	return result, nil
}

// blend averages a supervisor's own sum with the mean individual result of their department or faculty.
func (s *AggregateService) blend(ctx context.Context, sum float64, generic *models.GenericReport, profile *models.Profile) (float64, error) {
	if profile == nil || profile.Cumulative == models.CumulativeNone {
		return sum, nil
	}

	var scope *int64
	switch profile.Cumulative {
	case models.CumulativeByDepartment:
		scope = profile.DepartmentID
	case models.CumulativeByFaculty:
		scope = profile.FacultyID
	}
	if scope == nil {
		s.logger.Warn("cumulative profile has no peer group",
			zap.Int64("profile_id", profile.ID),
			zap.String("mode", string(profile.Cumulative)),
		)
		return sum, nil
	}

	peerSum, peerCount, err := s.generics.SumPeerResults(ctx, generic.PeriodID, profile.Cumulative, *scope, generic.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to sum peer results")
	}
	var peerMean float64
	if peerCount > 0 {
		peerMean = peerSum / float64(peerCount)
	}
	return scoring.Round2((sum + peerMean) / 2), nil
}
