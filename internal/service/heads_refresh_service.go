package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
	"github.com/noah-isme/academic-rating/pkg/jobs"
)

const jobHeadsRefresh = "heads_refresh"

type profileDirectory interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	Cumulative(ctx context.Context) ([]models.Profile, error)
	Head(ctx context.Context, mode models.CumulativeMode, scopeID int64) (*models.Profile, error)
}

type periodLookup interface {
	Get(ctx context.Context, id int64) (*models.ReportPeriod, error)
}

type recalculator interface {
	Recalculate(ctx context.Context, generic *models.GenericReport, profile *models.Profile, period *models.ReportPeriod, opts AggregateOptions) (float64, error)
}

// headsRefreshRequest identifies the peer groups touched by a submission.
type headsRefreshRequest struct {
	PeriodID     int64
	DepartmentID *int64
	FacultyID    *int64
}

// HeadsRefreshService re-blends the results of department and faculty heads after
// their peers' results change. Queued refreshes run one at a time.
type HeadsRefreshService struct {
	profiles   profileDirectory
	periods    periodLookup
	generics   genericReportRepository
	aggregator recalculator
	runner     stageRunner
	queue      *jobs.Queue[headsRefreshRequest]
	logger     *zap.Logger
}

// NewHeadsRefreshService builds the service and its single worker queue.
func NewHeadsRefreshService(profiles profileDirectory, periods periodLookup, generics genericReportRepository, aggregator recalculator, metrics *MetricsService, cache periodInvalidator, queueCfg jobs.QueueConfig, logger *zap.Logger) *HeadsRefreshService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HeadsRefreshService{
		profiles:   profiles,
		periods:    periods,
		generics:   generics,
		aggregator: aggregator,
		runner:     newStageRunner(metrics, cache, logger),
		logger:     logger,
	}
	queueCfg.Workers = 1
	if queueCfg.Logger == nil {
		queueCfg.Logger = logger
	}
	s.queue = jobs.NewQueue[headsRefreshRequest](jobHeadsRefresh, s.handle, queueCfg)
	return s
}

// Start begins consuming queued refreshes.
func (s *HeadsRefreshService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop halts the worker.
func (s *HeadsRefreshService) Stop() {
	s.queue.Stop()
}

// Drain waits for queued refreshes to finish.
func (s *HeadsRefreshService) Drain(ctx context.Context) error {
	return s.queue.Drain(ctx)
}

// Schedule queues a refresh of the heads over profile for the period.
func (s *HeadsRefreshService) Schedule(profile *models.Profile, periodID int64) error {
	if profile == nil {
		return nil
	}
	return s.queue.Enqueue(jobs.Job[headsRefreshRequest]{
		Type: jobHeadsRefresh,
		Payload: headsRefreshRequest{
			PeriodID:     periodID,
			DepartmentID: profile.DepartmentID,
			FacultyID:    profile.FacultyID,
		},
	})
}

func (s *HeadsRefreshService) handle(ctx context.Context, job jobs.Job[headsRefreshRequest]) error {
	req := job.Payload
	period, err := s.periods.Get(ctx, req.PeriodID)
	if err != nil {
		return err
	}
	if req.DepartmentID != nil {
		if err := s.refreshHead(ctx, period, models.CumulativeByDepartment, *req.DepartmentID, s.logger); err != nil {
			return err
		}
	}
	if req.FacultyID != nil {
		if err := s.refreshHead(ctx, period, models.CumulativeByFaculty, *req.FacultyID, s.logger); err != nil {
			return err
		}
	}
	return nil
}

// refreshHead recalculates the head of one department or faculty. A missing head or
// head report is logged and ignored.
func (s *HeadsRefreshService) refreshHead(ctx context.Context, period *models.ReportPeriod, mode models.CumulativeMode, scopeID int64, log *zap.Logger) error {
	head, err := s.profiles.Head(ctx, mode, scopeID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			log.Debug("no head to refresh", zap.String("mode", string(mode)), zap.Int64("scope_id", scopeID))
			return nil
		}
		return err
	}
	_, err = s.recalculate(ctx, head, period)
	if errors.Is(err, appErrors.ErrNotFound) {
		log.Info("head has no report", zap.Int64("profile_id", head.ID))
		return nil
	}
	return err
}

func (s *HeadsRefreshService) recalculate(ctx context.Context, profile *models.Profile, period *models.ReportPeriod) (float64, error) {
	generic, err := findGeneric(ctx, s.generics, profile.ID, period.ID)
	if err != nil {
		return 0, err
	}
	return s.aggregator.Recalculate(ctx, generic, profile, period, AggregateOptions{SkipAdjustment: true})
}

// Run re-blends every cumulative profile of the period from stored adjusted results.
func (s *HeadsRefreshService) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageRefreshHeads, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		profiles, err := s.profiles.Cumulative(ctx)
		if err != nil {
			return err
		}
		for i := range profiles {
			profile := &profiles[i]
			result, err := s.recalculate(ctx, profile, period)
			switch {
			case errors.Is(err, appErrors.ErrNotFound):
				report.Skipped++
				log.Info("head has no report", zap.Int64("profile_id", profile.ID))
			case err != nil:
				report.Failed++
				log.Error("head refresh failed", zap.Int64("profile_id", profile.ID), zap.Error(err))
			default:
				report.Processed++
				log.Debug("head refreshed", zap.Int64("profile_id", profile.ID), zap.Float64("result", result))
			}
		}
		return nil
	})
}

// Name implements Stage.
func (s *HeadsRefreshService) Name() string { return StageRefreshHeads }

// DrainTimeout bounds how long callers wait for queued refreshes at shutdown.
const DrainTimeout = 30 * time.Second

func findGeneric(ctx context.Context, repo genericReportRepository, profileID, periodID int64) (*models.GenericReport, error) {
	generic, err := repo.FindByProfilePeriod(ctx, profileID, periodID)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no report of profile %d for period %d", profileID, periodID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load generic report")
	}
	return generic, nil
}
