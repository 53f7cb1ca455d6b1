package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type cacheRepoStub struct {
	data    map[string][]models.RankingEntry
	deleted []string
	sets    int
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{data: map[string][]models.RankingEntry{}}
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	entries, ok := s.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*[]models.RankingEntry)) = entries
	return nil
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	s.data[key] = value.([]models.RankingEntry)
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	for key := range s.data {
		delete(s.data, key)
	}
	return nil
}

func newRankingFixture(cache *CacheService) (*memStore, *RankingService) {
	store := newOrgStore()
	store.addTeacher(1, 6.5, intPtr(2))
	store.addTeacher(2, 5.5, intPtr(1))
	store.addTeacher(4, 9, nil)
	svc := NewRankingService(memTeacherResults{store}, memHeadResults{store}, memFacultyResults{store}, memDeanResults{store}, memCategories{store}, cache, nil)
	return store, svc
}

func TestRankingServiceOrdersByPlace(t *testing.T) {
	_, svc := newRankingFixture(nil)

	entries, err := svc.Places(context.Background(), activePeriod(), models.LevelTeachers)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Teacher B", entries[0].Name)
	assert.Equal(t, "Teacher A", entries[1].Name)
	assert.Nil(t, entries[2].Place)

	_, err = svc.Places(context.Background(), activePeriod(), "sport")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestRankingServiceCategoryLevel(t *testing.T) {
	store, svc := newRankingFixture(nil)
	for _, tr := range store.teachers {
		store.addCategory(tr.GenericReportID, models.KindScientific, `{}`, float64(tr.GenericReportID), 0)
		place := int(tr.GenericReportID)
		tr.ScientificPlace = &place
	}

	entries, err := svc.Places(context.Background(), activePeriod(), models.LevelScientific)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, *entries[i-1].Place, *entries[i].Place)
	}
}

func TestRankingServiceReadsThroughCache(t *testing.T) {
	repo := newCacheRepoStub()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, time.Minute, nil, true)
	store, svc := newRankingFixture(cache)
	ctx := context.Background()

	first, err := svc.Places(ctx, activePeriod(), models.LevelTeachers)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.sets)
	assert.Contains(t, repo.data, "rating:period:1:teachers")

	store.teachers = map[int64]*models.TeacherResult{}
	cached, err := svc.Places(ctx, activePeriod(), models.LevelTeachers)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	require.NoError(t, cache.InvalidatePeriod(ctx, 1))
	assert.Equal(t, []string{"rating:period:1:*"}, repo.deleted)
	fresh, err := svc.Places(ctx, activePeriod(), models.LevelTeachers)
	require.NoError(t, err)
	assert.Empty(t, fresh)

	assert.Equal(t, 1.0, counterValue(t, metrics.Registry(), "rating_cache_hits_total", nil))
	assert.Equal(t, 2.0, counterValue(t, metrics.Registry(), "rating_cache_misses_total", nil))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, 0, nil, false)

	hit, err := cache.Get(context.Background(), "k", &[]models.RankingEntry{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Set(context.Background(), "k", []models.RankingEntry{}, 0))
	assert.Zero(t, repo.sets)
	require.NoError(t, cache.InvalidatePeriod(context.Background(), 1))
	assert.Empty(t, repo.deleted)
}
