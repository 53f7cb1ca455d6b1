package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

func TestValidatorAcceptsWellFormedInput(t *testing.T) {
	v := MustNew()
	in := &models.EducationalInput{
		AuditoryHours:     120,
		TotalHours:        300,
		ProgramsDeveloped: "1;0,5",
		CurriculaNew:      "2;3",
		LectureCourses:    "2(0.5);3(1)",
		Guidelines:        "0",
		GuarantorLevel:    models.GuarantorLevelOne,
	}
	assert.NoError(t, v.Struct(in))
	assert.NoError(t, v.Struct(&models.OrganizationalInput{FacultyCouncilRole: models.RoleHead}))
}

func TestValidatorReportsLocalizedFieldMessages(t *testing.T) {
	v := MustNew()
	in := &models.EducationalInput{
		AuditoryHours:     400,
		TotalHours:        300,
		ProgramsDeveloped: "1;x",
		CurriculaNew:      "1.5",
		LectureCourses:    "2(0.5",
	}

	err := v.Struct(in)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, messages[TagFloatList], appErr.Details["programs_developed"])
	assert.Equal(t, messages[TagIntList], appErr.Details["curricula_new"])
	assert.Equal(t, messages[TagWeightedPairs], appErr.Details["lecture_courses"])
	assert.Contains(t, appErr.Details, "total_hours")
}

func TestValidatorRejectsUnknownRole(t *testing.T) {
	v := MustNew()
	err := v.Struct(&models.OrganizationalInput{MinistryCommissionRole: "chair", ConferenceChair: -1})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details["ministry_commission_role"], "head secretary member")
	assert.Equal(t, "Значення має бути не менше 0.", appErr.Details["conference_chair"])
}

func TestCheckPeriodTitle(t *testing.T) {
	assert.NoError(t, checkPeriodTitle("2023/2024"))
	assert.Error(t, checkPeriodTitle("2023/2025"))
	assert.Error(t, checkPeriodTitle("2023-2024"))
	assert.Error(t, checkPeriodTitle("23/24"))
}

func TestValidatorPeriodTitleTag(t *testing.T) {
	type request struct {
		Title string `json:"title" validate:"required,period_title"`
	}
	v := MustNew()
	assert.NoError(t, v.Struct(request{Title: "2023/2024"}))

	err := v.Struct(request{Title: "2023"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details["title"], "РРРР/РРРР")
}
