package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/ranking"
	"github.com/noah-isme/academic-rating/internal/scoring"
)

type teacherResultRepository interface {
	Upsert(ctx context.Context, result *models.TeacherResult) error
	ListByPeriod(ctx context.Context, periodID int64) ([]models.TeacherResult, error)
	SetPlaces(ctx context.Context, assignments []models.PlaceAssignment) error
}

// placeWeights weight each category place in the combined rank score.
var placeWeights = map[models.CategoryKind]float64{
	models.KindEducational:    1.5,
	models.KindScientific:     1.5,
	models.KindOrganizational: 1,
}

// ScoresSum combines a person's category places. A missing place counts as 0.
func ScoresSum(r *models.TeacherResult) float64 {
	var sum float64
	for _, kind := range models.CategoryKinds {
		if p := r.PlaceFor(kind); p != nil {
			sum += placeWeights[kind] * float64(*p)
		}
	}
	return scoring.Round2(sum)
}

// TeacherPlacesStage ranks category reports per kind and combines the places per person.
type TeacherPlacesStage struct {
	categories categoryReportRepository
	results    teacherResultRepository
	runner     stageRunner
}

// NewTeacherPlacesStage creates the teacher places stage.
func NewTeacherPlacesStage(categories categoryReportRepository, results teacherResultRepository, metrics *MetricsService, cache periodInvalidator, logger *zap.Logger) *TeacherPlacesStage {
	return &TeacherPlacesStage{categories: categories, results: results, runner: newStageRunner(metrics, cache, logger)}
}

// Name implements Stage.
func (s *TeacherPlacesStage) Name() string { return StageTeacherPlaces }

// Run implements Stage.
func (s *TeacherPlacesStage) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageTeacherPlaces, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		byGeneric := make(map[int64]*models.TeacherResult)
		for _, kind := range models.CategoryKinds {
			reports, err := s.categories.ListByPeriodKind(ctx, period.ID, kind)
			if err != nil {
				return err
			}
			places := ranking.Places(reports,
				func(r models.CategoryReport) int64 { return r.ID },
				func(r models.CategoryReport) float64 { return r.Result },
				ranking.HighestFirst,
			)
			index := ranking.Index(places)
			for _, r := range reports {
				result, ok := byGeneric[r.GenericReportID]
				if !ok {
					result = &models.TeacherResult{GenericReportID: r.GenericReportID}
					byGeneric[r.GenericReportID] = result
				}
				place := index[r.ID]
				result.SetPlaceFor(kind, &place)
			}
			log.Debug("category ranked", zap.String("kind", string(kind)), zap.Int("reports", len(reports)))
		}

		genericIDs := make([]int64, 0, len(byGeneric))
		for id := range byGeneric {
			genericIDs = append(genericIDs, id)
		}
		sort.Slice(genericIDs, func(i, j int) bool { return genericIDs[i] < genericIDs[j] })

		for _, id := range genericIDs {
			result := byGeneric[id]
			result.ScoresSum = ScoresSum(result)
			if err := s.results.Upsert(ctx, result); err != nil {
				report.Failed++
				log.Error("teacher result not stored", zap.Int64("generic_report_id", id), zap.Error(err))
				continue
			}
			report.Processed++
		}

		all, err := s.results.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}
		return s.results.SetPlaces(ctx, ranking.Places(all,
			func(r models.TeacherResult) int64 { return r.ID },
			func(r models.TeacherResult) float64 { return r.ScoresSum },
			ranking.LowestFirst,
		))
	})
}
