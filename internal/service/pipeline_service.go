package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

// PipelineService runs ranking stages in dependency order.
type PipelineService struct {
	stages map[string]Stage
	logger *zap.Logger
}

// NewPipelineService registers stages by name.
func NewPipelineService(logger *zap.Logger, stages ...Stage) *PipelineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]Stage, len(stages))
	for _, st := range stages {
		byName[st.Name()] = st
	}
	return &PipelineService{stages: byName, logger: logger}
}

// Stage returns the registered stage called name.
func (s *PipelineService) Stage(name string) (Stage, error) {
	st, ok := s.stages[name]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown stage %q", name))
	}
	return st, nil
}

// Run executes the requested stages, or all of them when none is named, in pipeline
// order. It stops at the first stage that fails.
func (s *PipelineService) Run(ctx context.Context, period *models.ReportPeriod, names ...string) ([]StageReport, error) {
	if period == nil {
		return nil, appErrors.ErrNoActivePeriod
	}
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := s.Stage(name); err != nil {
			return nil, err
		}
		requested[name] = true
	}

	runID := uuid.NewString()
	log := s.logger.With(zap.String("pipeline_run_id", runID), zap.String("period", period.Title))

	var planned []string
	for _, name := range StageOrder {
		if len(requested) > 0 && !requested[name] {
			continue
		}
		if _, ok := s.stages[name]; !ok {
			continue
		}
		planned = append(planned, name)
	}
	log.Info("pipeline started", zap.String("stages", strings.Join(planned, ",")))

	reports := make([]StageReport, 0, len(planned))
	for _, name := range planned {
		report, err := s.stages[name].Run(ctx, period)
		reports = append(reports, report)
		if err != nil {
			log.Error("pipeline stopped", zap.String("stage", name), zap.Error(err))
			return reports, fmt.Errorf("stage %s: %w", name, err)
		}
	}
	log.Info("pipeline finished", zap.Int("stages", len(reports)))
	return reports, nil
}
