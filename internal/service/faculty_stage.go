package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/ranking"
	"github.com/noah-isme/academic-rating/internal/scoring"
)

type facultyResultRepository interface {
	Upsert(ctx context.Context, result *models.FacultyResult) error
	ListByPeriod(ctx context.Context, periodID int64) ([]models.FacultyResult, error)
	SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error
}

// FacultyStage averages staff rank scores per faculty. Deans are left out so their own
// score does not count toward the faculty they are ranked against.
type FacultyStage struct {
	teachers teacherResultLister
	results  facultyResultRepository
	runner   stageRunner
}

// NewFacultyStage creates the faculty stage.
func NewFacultyStage(teachers teacherResultLister, results facultyResultRepository, metrics *MetricsService, cache periodInvalidator, logger *zap.Logger) *FacultyStage {
	return &FacultyStage{teachers: teachers, results: results, runner: newStageRunner(metrics, cache, logger)}
}

// Name implements Stage.
func (s *FacultyStage) Name() string { return StageFaculty }

// Run implements Stage.
func (s *FacultyStage) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageFaculty, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		teachers, err := s.teachers.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}

		groups := make(map[int64]*models.FacultyResult)
		for _, t := range teachers {
			if t.Cumulative == models.CumulativeByFaculty {
				continue
			}
			if t.FacultyID == nil {
				report.Skipped++
				log.Debug("teacher result without faculty", zap.Int64("teacher_result_id", t.ID))
				continue
			}
			g, ok := groups[*t.FacultyID]
			if !ok {
				g = &models.FacultyResult{PeriodID: period.ID, FacultyID: *t.FacultyID}
				groups[*t.FacultyID] = g
			}
			g.PlacesSum += t.ScoresSum
			g.PlacesCount++
		}

		ids := make([]int64, 0, len(groups))
		for id := range groups {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			g := groups[id]
			g.PlacesSum = scoring.Round2(g.PlacesSum)
			g.PlacesAverage = scoring.Round2(g.PlacesSum / float64(g.PlacesCount))
			if err := s.results.Upsert(ctx, g); err != nil {
				report.Failed++
				log.Error("faculty result not stored", zap.Int64("faculty_id", id), zap.Error(err))
				continue
			}
			report.Processed++
		}

		faculties, err := s.results.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}
		return s.results.SetPlaces(ctx, ranking.Places(faculties,
			func(r models.FacultyResult) int64 { return r.ID },
			func(r models.FacultyResult) float64 { return r.PlacesAverage },
			ranking.LowestFirst,
		))
	})
}
