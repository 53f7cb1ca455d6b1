package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/ranking"
)

type deanResultRepository interface {
	Upsert(ctx context.Context, result *models.DeanResult) error
	ListByPeriod(ctx context.Context, periodID int64) ([]models.DeanResult, error)
	ReplacePlaces(ctx context.Context, periodID int64, keep []int64, assignments []models.PlaceAssignment) (int64, error)
}

type facultyResultLister interface {
	ListByPeriod(ctx context.Context, periodID int64) ([]models.FacultyResult, error)
}

type cumulativeProfiles interface {
	Cumulative(ctx context.Context) ([]models.Profile, error)
}

// DeanSumPlace weights a dean's own place twice against their faculty's place.
func DeanSumPlace(teacherPlace, facultyPlace int) float64 {
	return float64(2*teacherPlace + facultyPlace)
}

// DeansStage ranks deans by their own and their faculty's places.
type DeansStage struct {
	profiles  cumulativeProfiles
	teachers  teacherResultLister
	faculties facultyResultLister
	results   deanResultRepository
	runner    stageRunner
}

// NewDeansStage creates the deans stage.
func NewDeansStage(profiles cumulativeProfiles, teachers teacherResultLister, faculties facultyResultLister, results deanResultRepository, metrics *MetricsService, cache periodInvalidator, logger *zap.Logger) *DeansStage {
	return &DeansStage{
		profiles:  profiles,
		teachers:  teachers,
		faculties: faculties,
		results:   results,
		runner:    newStageRunner(metrics, cache, logger),
	}
}

// Name implements Stage.
func (s *DeansStage) Name() string { return StageDeans }

// Run implements Stage. Deans without a placed teacher result or faculty result are skipped,
// and dean results of people no longer ranked as deans are removed.
func (s *DeansStage) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	return s.runner.run(ctx, StageDeans, period, func(ctx context.Context, report *StageReport, log *zap.Logger) error {
		profiles, err := s.profiles.Cumulative(ctx)
		if err != nil {
			return err
		}
		teachers, err := s.teachers.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}
		faculties, err := s.faculties.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}

		byProfile := make(map[int64]models.TeacherResult, len(teachers))
		for _, t := range teachers {
			byProfile[t.ProfileID] = t
		}
		facultyPlaces := make(map[int64]int, len(faculties))
		for _, f := range faculties {
			if f.Place != nil {
				facultyPlaces[f.FacultyID] = *f.Place
			}
		}

		keep := make(map[int64]bool)
		for _, profile := range profiles {
			if profile.Cumulative != models.CumulativeByFaculty {
				continue
			}
			plog := log.With(zap.Int64("profile_id", profile.ID))

			teacher, ok := byProfile[profile.ID]
			if !ok || teacher.Place == nil {
				report.Skipped++
				plog.Info("dean has no teacher place, skipped")
				continue
			}
			if profile.FacultyID == nil {
				report.Skipped++
				plog.Info("dean has no faculty, skipped")
				continue
			}
			facultyPlace, ok := facultyPlaces[*profile.FacultyID]
			if !ok {
				report.Skipped++
				plog.Info("dean's faculty has no place, skipped", zap.Int64("faculty_id", *profile.FacultyID))
				continue
			}

			keep[teacher.ID] = true
			result := &models.DeanResult{TeacherResultID: teacher.ID, SumPlace: DeanSumPlace(*teacher.Place, facultyPlace)}
			if err := s.results.Upsert(ctx, result); err != nil {
				report.Failed++
				plog.Error("dean result not stored", zap.Error(err))
				continue
			}
			report.Processed++
		}

		stored, err := s.results.ListByPeriod(ctx, period.ID)
		if err != nil {
			return err
		}
		deans := make([]models.DeanResult, 0, len(keep))
		for _, d := range stored {
			if keep[d.TeacherResultID] {
				deans = append(deans, d)
			}
		}
		removed, err := s.results.ReplacePlaces(ctx, period.ID, keptIDs(keep), ranking.Places(deans,
			func(r models.DeanResult) int64 { return r.ID },
			func(r models.DeanResult) float64 { return r.SumPlace },
			ranking.LowestFirst,
		))
		if removed > 0 {
			log.Info("removed results of former deans", zap.Int64("removed", removed))
		}
		return err
	})
}
