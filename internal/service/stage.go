package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/pkg/logger"
)

// Stage names in pipeline order.
const (
	StageRawCalc       = "raw-calc"
	StageTeacherPlaces = "teacher-places"
	StageHeads         = "heads"
	StageFaculty       = "faculty"
	StageDeans         = "deans"
	StageRefreshHeads  = "refresh-heads"
)

// StageOrder is the order in which pipeline stages depend on each other.
var StageOrder = []string{StageRawCalc, StageTeacherPlaces, StageHeads, StageFaculty, StageDeans}

// StageReport summarises one stage run.
type StageReport struct {
	Stage     string        `json:"stage"`
	RunID     string        `json:"run_id"`
	PeriodID  int64         `json:"period_id"`
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// Stage is one re-runnable batch step over a period.
type Stage interface {
	Name() string
	Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error)
}

type periodInvalidator interface {
	InvalidatePeriod(ctx context.Context, periodID int64) error
}

// stageRunner wraps a stage body with run bookkeeping and cache invalidation.
type stageRunner struct {
	metrics *MetricsService
	cache   periodInvalidator
	logger  *zap.Logger
}

func newStageRunner(metrics *MetricsService, cache periodInvalidator, log *zap.Logger) stageRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return stageRunner{metrics: metrics, cache: cache, logger: log}
}

func (r stageRunner) run(ctx context.Context, name string, period *models.ReportPeriod, body func(ctx context.Context, report *StageReport, log *zap.Logger) error) (StageReport, error) {
	report := StageReport{Stage: name, RunID: uuid.NewString(), PeriodID: period.ID}
	log := logger.ForStage(r.logger, name, report.RunID).With(zap.String("period", period.Title))
	log.Info("stage started")

	start := time.Now()
	err := body(ctx, &report, log)
	report.Duration = time.Since(start)
	r.metrics.ObserveStage(report, err)

	if r.cache != nil {
		if cacheErr := r.cache.InvalidatePeriod(ctx, period.ID); cacheErr != nil {
			log.Warn("ranking cache not invalidated", zap.Error(cacheErr))
		}
	}

	if err != nil {
		log.Error("stage failed", zap.Error(err), zap.Int("processed", report.Processed))
		return report, err
	}
	log.Info("stage finished",
		zap.Int("processed", report.Processed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}
