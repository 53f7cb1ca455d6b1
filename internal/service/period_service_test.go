package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/validation"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

func newPeriodFixture(periods ...models.ReportPeriod) (*memStore, *PeriodService) {
	store := newMemStore()
	store.periods = periods
	store.nextID = 10
	return store, NewPeriodService(memPeriods{store}, validation.MustNew(), nil)
}

func TestPeriodServiceActive(t *testing.T) {
	_, svc := newPeriodFixture()
	_, err := svc.Active(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrNoActivePeriod))

	_, svc = newPeriodFixture(
		models.ReportPeriod{ID: 1, Title: "2022/2023", IsActive: true},
		models.ReportPeriod{ID: 2, Title: "2023/2024", IsActive: true},
	)
	_, err = svc.Active(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, svc = newPeriodFixture(
		models.ReportPeriod{ID: 1, Title: "2022/2023"},
		models.ReportPeriod{ID: 2, Title: "2023/2024", IsActive: true},
	)
	period, err := svc.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, period.ID)
}

func TestPeriodServiceResolveByTitle(t *testing.T) {
	_, svc := newPeriodFixture(models.ReportPeriod{ID: 1, Title: "2022/2023"})

	period, err := svc.Resolve(context.Background(), " 2022/2023 ")
	require.NoError(t, err)
	assert.False(t, period.IsActive)

	_, err = svc.Resolve(context.Background(), "2030/2031")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestPeriodServiceActivateKeepsOneActive(t *testing.T) {
	store, svc := newPeriodFixture(
		models.ReportPeriod{ID: 1, Title: "2022/2023", IsActive: true},
		models.ReportPeriod{ID: 2, Title: "2023/2024"},
	)

	period, err := svc.Activate(context.Background(), "2023/2024")
	require.NoError(t, err)
	assert.True(t, period.IsActive)

	active, err := memPeriods{store}.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.EqualValues(t, 2, active[0].ID)
}

func TestPeriodServiceCreate(t *testing.T) {
	_, svc := newPeriodFixture(models.ReportPeriod{ID: 1, Title: "2022/2023"})

	period, err := svc.Create(context.Background(), CreatePeriodRequest{Title: "2023/2024", AnnualWorkload: 600})
	require.NoError(t, err)
	assert.EqualValues(t, 11, period.ID)
	assert.False(t, period.IsActive)

	_, err = svc.Create(context.Background(), CreatePeriodRequest{Title: "2022/2023"})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.Create(context.Background(), CreatePeriodRequest{Title: "2023", AnnualWorkload: 700})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Details, "title")
	assert.Contains(t, appErr.Details, "annual_workload")
}
