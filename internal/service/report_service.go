package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/scoring"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type periodResolver interface {
	Resolve(ctx context.Context, title string) (*models.ReportPeriod, error)
}

type profileGetter interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
}

type reportAggregator interface {
	recalculator
	Score(report *models.CategoryReport, generic *models.GenericReport, period *models.ReportPeriod) (float64, float64, error)
}

type headsScheduler interface {
	Schedule(profile *models.Profile, periodID int64) error
}

// GenericInput carries the per person fields shared by every category report.
type GenericInput struct {
	AssignmentDuration float64 `json:"assignment_duration" yaml:"assignment_duration" validate:"gte=0,lte=10"`
	AssignmentShare    float64 `json:"assignment_share" yaml:"assignment_share" validate:"gte=0,lte=1"`
	StudentsRating     float64 `json:"students_rating" yaml:"students_rating" validate:"gte=0,lte=200"`
}

// DefaultGenericInput returns the values a new report starts with.
func DefaultGenericInput() GenericInput {
	return GenericInput{AssignmentDuration: models.DefaultAssignmentDuration, AssignmentShare: models.DefaultAssignmentShare}
}

// ReportService accepts interactive report submissions for the active period.
type ReportService struct {
	periods    periodResolver
	profiles   profileGetter
	generics   genericReportRepository
	categories categoryReportRepository
	aggregator reportAggregator
	heads      headsScheduler
	cache      periodInvalidator
	validator  structValidator
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewReportService creates a report service. heads may be nil to skip cumulative refreshes
// and cache may be nil when rankings are not cached.
func NewReportService(periods periodResolver, profiles profileGetter, generics genericReportRepository, categories categoryReportRepository, aggregator reportAggregator, heads headsScheduler, cache periodInvalidator, validator structValidator, metrics *MetricsService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		periods:    periods,
		profiles:   profiles,
		generics:   generics,
		categories: categories,
		aggregator: aggregator,
		heads:      heads,
		cache:      cache,
		validator:  validator,
		metrics:    metrics,
		logger:     logger,
	}
}

// SubmitGeneric stores the shared fields of profileID's report and rescores every category.
func (s *ReportService) SubmitGeneric(ctx context.Context, profileID int64, periodTitle string, in GenericInput) (report *models.GenericReport, err error) {
	defer func() { s.metrics.RecordSubmission("generic", err) }()

	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	period, profile, err := s.target(ctx, profileID, periodTitle)
	if err != nil {
		return nil, err
	}
	existing, err := findGeneric(ctx, s.generics, profileID, period.ID)
	switch {
	case err == nil && existing.IsClosed:
		return nil, appErrors.ErrReportClosed
	case err != nil && !errors.Is(err, appErrors.ErrNotFound):
		return nil, err
	}

	report = &models.GenericReport{
		ProfileID:          profileID,
		PeriodID:           period.ID,
		AssignmentDuration: in.AssignmentDuration,
		AssignmentShare:    in.AssignmentShare,
		StudentsRating:     in.StudentsRating,
	}
	if err := s.generics.Upsert(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store generic report")
	}
	if _, err := s.aggregator.Recalculate(ctx, report, profile, period, AggregateOptions{}); err != nil {
		return nil, err
	}
	s.scheduleHeads(profile, period.ID)
	s.invalidateRankings(ctx, period.ID)
	s.logger.Info("generic report submitted", zap.Int64("profile_id", profileID), zap.Float64("result", report.Result))
	return report, nil
}

// SubmitCategory validates, scores and stores one category report of profileID, then
// refreshes the generic result.
func (s *ReportService) SubmitCategory(ctx context.Context, profileID int64, periodTitle string, input models.Activity) (report *models.CategoryReport, err error) {
	kind := "unknown"
	if input != nil {
		kind = string(input.Kind())
	}
	defer func() { s.metrics.RecordSubmission(kind, err) }()

	if input == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category input is required")
	}
	category, ok := scoring.For(input.Kind())
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", input.Kind()))
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	period, profile, err := s.target(ctx, profileID, periodTitle)
	if err != nil {
		return nil, err
	}
	generic, err := s.ensureGeneric(ctx, profileID, period.ID)
	if err != nil {
		return nil, err
	}
	if generic.IsClosed {
		return nil, appErrors.ErrReportClosed
	}

	payload, err := category.Encode(input)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to encode category input")
	}
	report = &models.CategoryReport{GenericReportID: generic.ID, Kind: category.Kind, Payload: payload}
	report.Result, report.AdjustedResult, err = s.aggregator.Score(report, generic, period)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Upsert(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store category report")
	}

	if _, err := s.aggregator.Recalculate(ctx, generic, profile, period, AggregateOptions{SkipAdjustment: true}); err != nil {
		return nil, err
	}
	s.scheduleHeads(profile, period.ID)
	s.invalidateRankings(ctx, period.ID)
	s.logger.Info("category report submitted",
		zap.Int64("profile_id", profileID),
		zap.String("kind", string(category.Kind)),
		zap.Float64("result", report.Result),
		zap.Float64("adjusted_result", report.AdjustedResult),
	)
	return report, nil
}

// Close freezes profileID's report for the period.
func (s *ReportService) Close(ctx context.Context, profileID int64, periodTitle string) error {
	period, err := s.periods.Resolve(ctx, periodTitle)
	if err != nil {
		return err
	}
	generic, err := findGeneric(ctx, s.generics, profileID, period.ID)
	if err != nil {
		return err
	}
	if generic.IsClosed {
		return nil
	}
	if err := s.generics.Close(ctx, generic.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to close report")
	}
	s.logger.Info("report closed", zap.Int64("profile_id", profileID), zap.String("period", period.Title))
	return nil
}

// target resolves the period and profile of a submission. Submissions are accepted for the active period only.
func (s *ReportService) target(ctx context.Context, profileID int64, periodTitle string) (*models.ReportPeriod, *models.Profile, error) {
	period, err := s.periods.Resolve(ctx, periodTitle)
	if err != nil {
		return nil, nil, err
	}
	if err := EnsureActive(period); err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}
	return period, profile, nil
}

// ensureGeneric loads the generic report, creating one with default values when missing.
func (s *ReportService) ensureGeneric(ctx context.Context, profileID, periodID int64) (*models.GenericReport, error) {
	generic, err := findGeneric(ctx, s.generics, profileID, periodID)
	if err == nil {
		return generic, nil
	}
	if !errors.Is(err, appErrors.ErrNotFound) {
		return nil, err
	}
	defaults := DefaultGenericInput()
	generic = &models.GenericReport{
		ProfileID:          profileID,
		PeriodID:           periodID,
		AssignmentDuration: defaults.AssignmentDuration,
		AssignmentShare:    defaults.AssignmentShare,
		StudentsRating:     defaults.StudentsRating,
	}
	if err := s.generics.Upsert(ctx, generic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create generic report")
	}
	return generic, nil
}

func (s *ReportService) scheduleHeads(profile *models.Profile, periodID int64) {
	if s.heads == nil {
		return
	}
	if err := s.heads.Schedule(profile, periodID); err != nil {
		s.logger.Warn("heads refresh not scheduled", zap.Int64("profile_id", profile.ID), zap.Error(err))
	}
}

// invalidateRankings drops cached rankings of the period. A failure leaves stale entries until their TTL ends.
func (s *ReportService) invalidateRankings(ctx context.Context, periodID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePeriod(ctx, periodID); err != nil {
		s.logger.Warn("ranking cache not invalidated", zap.Int64("period_id", periodID), zap.Error(err))
	}
}
