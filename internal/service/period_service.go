package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type periodRepository interface {
	FindByID(ctx context.Context, id int64) (*models.ReportPeriod, error)
	FindByTitle(ctx context.Context, title string) (*models.ReportPeriod, error)
	ListActive(ctx context.Context) ([]models.ReportPeriod, error)
	Create(ctx context.Context, period *models.ReportPeriod) error
	SetActive(ctx context.Context, id int64) error
}

type structValidator interface {
	Struct(s interface{}) error
}

// CreatePeriodRequest describes a new reporting period.
type CreatePeriodRequest struct {
	Title          string  `json:"title" yaml:"title" validate:"required,period_title"`
	AnnualWorkload float64 `json:"annual_workload" yaml:"annual_workload" validate:"gte=0,lte=600"`
}

// PeriodService selects the report period every operation runs against.
type PeriodService struct {
	repo      periodRepository
	validator structValidator
	logger    *zap.Logger
}

// NewPeriodService creates a period service.
func NewPeriodService(repo periodRepository, validator structValidator, logger *zap.Logger) *PeriodService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{repo: repo, validator: validator, logger: logger}
}

// Active returns the single active period.
func (s *PeriodService) Active(ctx context.Context) (*models.ReportPeriod, error) {
	periods, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load active period")
	}
	switch len(periods) {
	case 0:
		return nil, appErrors.ErrNoActivePeriod
	case 1:
		return &periods[0], nil
	default:
		s.logger.Error("several active periods", zap.Int("count", len(periods)))
		return nil, appErrors.Clone(appErrors.ErrConflict, "more than one report period is active")
	}
}

// Resolve returns the period titled title, or the active one when title is empty.
func (s *PeriodService) Resolve(ctx context.Context, title string) (*models.ReportPeriod, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return s.Active(ctx)
	}
	period, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load report period")
	}
	return period, nil
}

// Get loads a period by ID.
func (s *PeriodService) Get(ctx context.Context, id int64) (*models.ReportPeriod, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load report period")
	}
	return period, nil
}

// Create inserts an inactive period.
func (s *PeriodService) Create(ctx context.Context, req CreatePeriodRequest) (*models.ReportPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByTitle(ctx, req.Title); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "report period already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to check report period")
	}

	period := &models.ReportPeriod{Title: req.Title, AnnualWorkload: req.AnnualWorkload}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create report period")
	}
	s.logger.Info("report period created", zap.String("title", period.Title), zap.Int64("period_id", period.ID))
	return period, nil
}

// Activate makes the titled period the only active one.
func (s *PeriodService) Activate(ctx context.Context, title string) (*models.ReportPeriod, error) {
	if strings.TrimSpace(title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period title is required")
	}
	period, err := s.Resolve(ctx, title)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, period.ID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to activate report period")
	}
	period.IsActive = true
	s.logger.Info("report period activated", zap.String("title", period.Title), zap.Int64("period_id", period.ID))
	return period, nil
}

// EnsureActive fails with PERIOD_INACTIVE unless period is the active one.
func EnsureActive(period *models.ReportPeriod) error {
	if period == nil || !period.IsActive {
		return appErrors.ErrPeriodInactive
	}
	return nil
}
