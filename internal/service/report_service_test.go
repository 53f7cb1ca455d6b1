package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/scoring"
	"github.com/noah-isme/academic-rating/internal/validation"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type headsSchedulerStub struct {
	profiles []int64
}

func (s *headsSchedulerStub) Schedule(profile *models.Profile, periodID int64) error {
	s.profiles = append(s.profiles, profile.ID)
	return nil
}

type invalidatorStub struct {
	periods []int64
	err     error
}

func (s *invalidatorStub) InvalidatePeriod(ctx context.Context, periodID int64) error {
	s.periods = append(s.periods, periodID)
	return s.err
}

// failingGenerics fails lookups the way a broken connection would.
type failingGenerics struct {
	memGenerics
	err error
}

func (r failingGenerics) FindByProfilePeriod(ctx context.Context, profileID, periodID int64) (*models.GenericReport, error) {
	return nil, r.err
}

func newReportFixture() (*memStore, *ReportService, *headsSchedulerStub) {
	store := newMemStore()
	store.nextID = 100
	store.periods = []models.ReportPeriod{
		{ID: 1, Title: "2022/2023", AnnualWorkload: 600},
		{ID: 2, Title: "2023/2024", IsActive: true, AnnualWorkload: 600},
	}
	store.addProfile(1, "Teacher", ptr64(10), ptr64(100), models.CumulativeNone)

	v := validation.MustNew()
	periods := NewPeriodService(memPeriods{store}, v, nil)
	profiles := NewProfileService(memProfiles{store}, nil)
	aggregator := NewAggregateService(memGenerics{store}, memCategories{store}, scoring.Normalizer{ApplyAssignmentShare: true}, nil)
	heads := &headsSchedulerStub{}
	svc := NewReportService(periods, profiles, memGenerics{store}, memCategories{store}, aggregator, heads, nil, v, NewMetricsService(), nil)
	return store, svc, heads
}

func TestReportServiceSubmitCategoryNormalizesAndAggregates(t *testing.T) {
	store, svc, heads := newReportFixture()
	ctx := context.Background()

	_, err := svc.SubmitGeneric(ctx, 1, "", GenericInput{AssignmentDuration: 10, AssignmentShare: 0.5})
	require.NoError(t, err)

	report, err := svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 80})
	require.NoError(t, err)
	assert.Equal(t, 80.0, report.Result)
	assert.Equal(t, 160.0, report.AdjustedResult)

	generic, err := memGenerics{store}.FindByProfilePeriod(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 160.0, generic.Result)
	assert.Equal(t, []int64{1, 1}, heads.profiles)
}

func TestReportServiceCreatesDefaultGeneric(t *testing.T) {
	store, svc, _ := newReportFixture()
	ctx := context.Background()

	_, err := svc.SubmitCategory(ctx, 1, "2023/2024", &models.OrganizationalInput{Curator: true})
	require.NoError(t, err)

	generic, err := memGenerics{store}.FindByProfilePeriod(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, generic.AssignmentDuration)
	assert.Equal(t, 1.0, generic.AssignmentShare)
	assert.Equal(t, 100.0, generic.Result)
}

func TestReportServiceResubmissionUpdatesInPlace(t *testing.T) {
	store, svc, _ := newReportFixture()
	ctx := context.Background()

	_, err := svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 10})
	require.NoError(t, err)
	_, err = svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 20})
	require.NoError(t, err)

	reports, err := memCategories{store}.ListByPeriodKind(ctx, 2, models.KindScientific)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 20.0, reports[0].Result)
}

func TestReportServiceRejectsMalformedLists(t *testing.T) {
	_, svc, heads := newReportFixture()

	_, err := svc.SubmitCategory(context.Background(), 1, "", &models.EducationalInput{ProgramsDeveloped: "1;abc"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "programs_developed")
	assert.Empty(t, heads.profiles)
}

func TestReportServiceRejectsInactivePeriod(t *testing.T) {
	_, svc, _ := newReportFixture()

	_, err := svc.SubmitCategory(context.Background(), 1, "2022/2023", &models.ScientificInput{TotalScore: 1})
	assert.True(t, errors.Is(err, appErrors.ErrPeriodInactive))
}

func TestReportServiceRejectsClosedReport(t *testing.T) {
	_, svc, _ := newReportFixture()
	ctx := context.Background()

	_, err := svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, 1, ""))

	_, err = svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 2})
	assert.True(t, errors.Is(err, appErrors.ErrReportClosed))
	_, err = svc.SubmitGeneric(ctx, 1, "", DefaultGenericInput())
	assert.True(t, errors.Is(err, appErrors.ErrReportClosed))
}

func TestReportServiceUnknownProfile(t *testing.T) {
	_, svc, _ := newReportFixture()

	_, err := svc.SubmitCategory(context.Background(), 42, "", &models.ScientificInput{TotalScore: 1})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestReportServiceSubmitGenericReturnsLookupFailure(t *testing.T) {
	store, svc, heads := newReportFixture()
	svc.generics = failingGenerics{memGenerics: memGenerics{store}, err: errors.New("connection reset")}

	_, err := svc.SubmitGeneric(context.Background(), 1, "", DefaultGenericInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	assert.False(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, store.generics)
	assert.Empty(t, heads.profiles)
}

func TestReportServiceSubmissionsInvalidateRankings(t *testing.T) {
	_, svc, _ := newReportFixture()
	cache := &invalidatorStub{}
	svc.cache = cache
	ctx := context.Background()

	_, err := svc.SubmitGeneric(ctx, 1, "", DefaultGenericInput())
	require.NoError(t, err)
	_, err = svc.SubmitCategory(ctx, 1, "", &models.ScientificInput{TotalScore: 10})
	require.NoError(t, err)

	_, err = svc.SubmitCategory(ctx, 1, "2022/2023", &models.ScientificInput{TotalScore: 10})
	require.Error(t, err)

	assert.Equal(t, []int64{2, 2}, cache.periods)
}

func TestReportServiceSubmissionSurvivesCacheFailure(t *testing.T) {
	_, svc, _ := newReportFixture()
	cache := &invalidatorStub{err: errors.New("redis unavailable")}
	svc.cache = cache

	report, err := svc.SubmitCategory(context.Background(), 1, "", &models.ScientificInput{TotalScore: 10})
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, []int64{2}, cache.periods)
}
