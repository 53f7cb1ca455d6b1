package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type rankingCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type headResultLister interface {
	ListByPeriod(ctx context.Context, periodID int64) ([]models.HeadResult, error)
}

type deanResultLister interface {
	ListByPeriod(ctx context.Context, periodID int64) ([]models.DeanResult, error)
}

type categoryLister interface {
	ListByPeriodKind(ctx context.Context, periodID int64, kind models.CategoryKind) ([]models.CategoryReport, error)
}

// RankingService serves ranked tables of a period, reading through the cache.
type RankingService struct {
	teachers   teacherResultLister
	heads      headResultLister
	faculties  facultyResultLister
	deans      deanResultLister
	categories categoryLister
	cache      rankingCache
	logger     *zap.Logger
}

// NewRankingService creates a ranking service. cache may be nil.
func NewRankingService(teachers teacherResultLister, heads headResultLister, faculties facultyResultLister, deans deanResultLister, categories categoryLister, cache rankingCache, logger *zap.Logger) *RankingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RankingService{
		teachers:   teachers,
		heads:      heads,
		faculties:  faculties,
		deans:      deans,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// Places returns the ranked table for level, best place first. Unplaced rows come last.
func (s *RankingService) Places(ctx context.Context, period *models.ReportPeriod, level models.RankingLevel) ([]models.RankingEntry, error) {
	key := RankingKey(period.ID, level)
	if s.cache != nil {
		var cached []models.RankingEntry
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	entries, err := s.load(ctx, period.ID, level)
	if err != nil {
		return nil, err
	}
	sortEntries(entries)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, entries, 0); err != nil {
			s.logger.Debug("ranking not cached", zap.String("key", key), zap.Error(err))
		}
	}
	return entries, nil
}

func (s *RankingService) load(ctx context.Context, periodID int64, level models.RankingLevel) ([]models.RankingEntry, error) {
	switch level {
	case models.LevelTeachers:
		rows, err := s.teachers.ListByPeriod(ctx, periodID)
		if err != nil {
			return nil, wrapLoad(err, level)
		}
		out := make([]models.RankingEntry, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.RankingEntry{Place: r.Place, Name: r.FullName, Score: r.ScoresSum})
		}
		return out, nil
	case models.LevelHeads:
		rows, err := s.heads.ListByPeriod(ctx, periodID)
		if err != nil {
			return nil, wrapLoad(err, level)
		}
		out := make([]models.RankingEntry, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.RankingEntry{Place: r.Place, Name: r.FullName, Score: r.ScoresSum})
		}
		return out, nil
	case models.LevelFaculties:
		rows, err := s.faculties.ListByPeriod(ctx, periodID)
		if err != nil {
			return nil, wrapLoad(err, level)
		}
		out := make([]models.RankingEntry, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.RankingEntry{Place: r.Place, Name: r.FacultyTitle, Score: r.PlacesAverage})
		}
		return out, nil
	case models.LevelDeans:
		rows, err := s.deans.ListByPeriod(ctx, periodID)
		if err != nil {
			return nil, wrapLoad(err, level)
		}
		out := make([]models.RankingEntry, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.RankingEntry{Place: r.Place, Name: r.FullName, Score: r.SumPlace})
		}
		return out, nil
	case models.LevelEducational, models.LevelScientific, models.LevelOrganizational:
		return s.loadCategory(ctx, periodID, models.CategoryKind(level))
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown ranking level %q", level))
}

// loadCategory lists one kind's results with the places stored on teacher results.
func (s *RankingService) loadCategory(ctx context.Context, periodID int64, kind models.CategoryKind) ([]models.RankingEntry, error) {
	teachers, err := s.teachers.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, wrapLoad(err, models.RankingLevel(kind))
	}
	reports, err := s.categories.ListByPeriodKind(ctx, periodID, kind)
	if err != nil {
		return nil, wrapLoad(err, models.RankingLevel(kind))
	}
	byGeneric := make(map[int64]models.TeacherResult, len(teachers))
	for _, t := range teachers {
		byGeneric[t.GenericReportID] = t
	}
	out := make([]models.RankingEntry, 0, len(reports))
	for _, r := range reports {
		t, ok := byGeneric[r.GenericReportID]
		if !ok {
			continue
		}
		out = append(out, models.RankingEntry{Place: t.PlaceFor(kind), Name: t.FullName, Score: r.Result})
	}
	return out, nil
}

func wrapLoad(err error, level models.RankingLevel) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, fmt.Sprintf("failed to load %s ranking", level))
}

func sortEntries(entries []models.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Place, entries[j].Place
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		}
		return *pi < *pj
	})
}
