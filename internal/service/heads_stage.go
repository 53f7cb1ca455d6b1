package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/ranking"
	"github.com/noah-isme/academic-rating/internal/scoring"
)

type headResultRepository interface {
	Upsert(ctx context.Context, result *models.HeadResult) error
	ListByPeriod(ctx context.Context, periodID int64) ([]models.HeadResult, error)
	ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error)
}

type teacherResultLister interface {
	ListByPeriod(ctx context.Context, periodID int64) ([]models.TeacherResult, error)
}

// HeadAggregate scores a head of department against the rest of the department.
func HeadAggregate(peerSum float64, peerCount int, headScoresSum float64) float64 {
	var mean float64
	if peerCount > 0 {
		mean = peerSum / float64(peerCount)
	}
	return scoring.Round2(mean + 2*headScoresSum)
}

// HeadsStage ranks heads of departments.
type HeadsStage struct {
	teachers teacherResultLister
	results  headResultRepository
	runner   stageRunner
}

// NewHeadsStage creates the heads stage.
func NewHeadsStage(teachers teacherResultLister, results headResultRepository, metrics *MetricsService, cache periodInvalidator, logger *zap.Logger) *HeadsStage {
	return &HeadsStage{teachers: teachers, results: results, runner: newStageRunner(metrics, cache, logger)}
}

// Name implements Stage.
func (s *HeadsStage) Name() string { return StageHeads }

// Run implements Stage. Head results of people who no longer head a department are removed.
func (s *HeadsStage) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageHeads, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		teachers, err := s.teachers.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}

		departments := make(map[int64][]models.TeacherResult)
		for _, t := range teachers {
			if t.DepartmentID == nil {
				continue
			}
			departments[*t.DepartmentID] = append(departments[*t.DepartmentID], t)
		}
		ids := make([]int64, 0, len(departments))
		for id := range departments {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		keep := make(map[int64]bool, len(ids))
		for _, departmentID := range ids {
			members := departments[departmentID]
			head := departmentHead(members)
			if head == nil {
				report.Skipped++
				log.Debug("department has no head result", zap.Int64("department_id", departmentID))
				continue
			}
			keep[head.ID] = true

			result := &models.HeadResult{TeacherResultID: head.ID}
			for _, m := range members {
				if m.ID == head.ID {
					continue
				}
				result.PeerSum += m.ScoresSum
				result.PeerCount++
			}
			result.PeerSum = scoring.Round2(result.PeerSum)
			result.ScoresSum = HeadAggregate(result.PeerSum, result.PeerCount, head.ScoresSum)

			if err := s.results.Upsert(ctx, result); err != nil {
				report.Failed++
				log.Error("head result not stored", zap.Int64("department_id", departmentID), zap.Error(err))
				continue
			}
			report.Processed++
		}

		stored, err := s.results.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}
		heads := make([]models.HeadResult, 0, len(keep))
		for _, h := range stored {
			if keep[h.TeacherResultID] {
				heads = append(heads, h)
			}
		}
		removed, err := s.results.ReplacePlaces(ctx, period.ID, keptIDs(keep), ranking.Places(heads,
			func(r models.HeadResult) int64 { return r.ID },
			func(r models.HeadResult) float64 { return r.ScoresSum },
			ranking.HighestFirst,
		))
		if removed > 0 {
			log.Info("removed results of former heads", zap.Int64("removed", removed))
		}
		return err
	})
}

// keptIDs returns the keys of keep in ascending order.
func keptIDs(keep map[int64]bool) []int64 {
	ids := make([]int64, 0, len(keep))
	for id := range keep {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// departmentHead picks the member with the lowest profile ID among those holding the department mode.
func departmentHead(members []models.TeacherResult) *models.TeacherResult {
	var head *models.TeacherResult
	for i := range members {
		m := &members[i]
		if m.Cumulative != models.CumulativeByDepartment {
			continue
		}
		if head == nil || m.ProfileID < head.ProfileID {
			head = m
		}
	}
	return head
}
