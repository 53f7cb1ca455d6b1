package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
	"github.com/noah-isme/academic-rating/internal/scoring"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type stageStub struct {
	name  string
	err   error
	calls *[]string
}

func (s stageStub) Name() string { return s.name }

func (s stageStub) Run(ctx context.Context, period *models.ReportPeriod) (StageReport, error) {
	*s.calls = append(*s.calls, s.name)
	return StageReport{Stage: s.name, PeriodID: period.ID}, s.err
}

func stubStages(calls *[]string, failing string) []Stage {
	var stages []Stage
	for _, name := range StageOrder {
		st := stageStub{name: name, calls: calls}
		if name == failing {
			st.err = errors.New("boom")
		}
		stages = append(stages, st)
	}
	return stages
}

func TestPipelineRunsRequestedStagesInOrder(t *testing.T) {
	var calls []string
	svc := NewPipelineService(nil, stubStages(&calls, "")...)

	reports, err := svc.Run(context.Background(), activePeriod(), StageDeans, StageRawCalc)
	require.NoError(t, err)
	assert.Equal(t, []string{StageRawCalc, StageDeans}, calls)
	assert.Len(t, reports, 2)

	calls = nil
	_, err = svc.Run(context.Background(), activePeriod())
	require.NoError(t, err)
	assert.Equal(t, StageOrder, calls)
}

func TestPipelineStopsAtFailingStage(t *testing.T) {
	var calls []string
	svc := NewPipelineService(nil, stubStages(&calls, StageHeads)...)

	reports, err := svc.Run(context.Background(), activePeriod())
	require.Error(t, err)
	assert.Equal(t, []string{StageRawCalc, StageTeacherPlaces, StageHeads}, calls)
	assert.Len(t, reports, 3)
}

func TestPipelineRejectsUnknownStage(t *testing.T) {
	var calls []string
	svc := NewPipelineService(nil, stubStages(&calls, "")...)

	_, err := svc.Run(context.Background(), activePeriod(), "sport")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, calls)

	_, err = svc.Run(context.Background(), nil)
	assert.True(t, errors.Is(err, appErrors.ErrNoActivePeriod))
}

func TestPipelineEndToEnd(t *testing.T) {
	store := newOrgStore()
	for _, id := range []int64{1, 2, 3, 4, 5, 7} {
		g := store.addGeneric(id, 1, 1, 10)
		store.addCategory(g.ID, models.KindScientific, fmt.Sprintf(`{"total_score":%d}`, id), 0, 0)
	}

	profiles := NewProfileService(memProfiles{store}, nil)
	aggregator := NewAggregateService(memGenerics{store}, memCategories{store}, scoring.Normalizer{ApplyAssignmentShare: true}, nil)
	teachers := memTeacherResults{store}
	faculties := memFacultyResults{store}
	svc := NewPipelineService(nil,
		NewRawCalcStage(profiles, memGenerics{store}, memCategories{store}, aggregator, nil, nil, nil),
		NewTeacherPlacesStage(memCategories{store}, teachers, nil, nil, nil),
		NewHeadsStage(teachers, memHeadResults{store}, nil, nil, nil),
		NewFacultyStage(teachers, faculties, nil, nil, nil),
		NewDeansStage(profiles, teachers, faculties, memDeanResults{store}, nil, nil, nil),
	)

	for run := 0; run < 2; run++ {
		reports, err := svc.Run(context.Background(), activePeriod())
		require.NoError(t, err)
		require.Len(t, reports, len(StageOrder))
	}

	results, err := teachers.ListByPeriod(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, results, 6)
	seen := map[int]bool{}
	for _, r := range results {
		require.NotNil(t, r.Place)
		seen[*r.Place] = true
	}
	assert.Len(t, seen, 6)
	assert.Len(t, store.heads, 2)
	assert.Len(t, store.faculties, 2)
	assert.Len(t, store.deans, 1)
}
