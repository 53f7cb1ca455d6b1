package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/models"
	appErrors "github.com/noah-isme/academic-rating/pkg/errors"
)

type profileRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Profile, error)
	ListWithDepartment(ctx context.Context) ([]models.Profile, error)
	ListCumulative(ctx context.Context) ([]models.Profile, error)
	FindHead(ctx context.Context, mode models.CumulativeMode, scopeID int64) (*models.Profile, error)
}

// ProfileService reads staff profiles and resolves who heads a department or faculty.
type ProfileService struct {
	repo   profileRepository
	logger *zap.Logger
}

// NewProfileService creates a profile service.
func NewProfileService(repo profileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, logger: logger}
}

// Get loads a profile.
func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load profile")
	}
	return profile, nil
}

// Ranked returns every profile attached to a department, which is the population the
// pipeline ranks. Profiles with a cumulative mode come last.
func (s *ProfileService) Ranked(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.repo.ListWithDepartment(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list profiles")
	}
	out := make([]models.Profile, 0, len(profiles))
	var cumulative []models.Profile
	for _, p := range profiles {
		if p.Cumulative == models.CumulativeNone {
			out = append(out, p)
			continue
		}
		cumulative = append(cumulative, p)
	}
	return append(out, cumulative...), nil
}

// Cumulative returns profiles whose position blends their result with a peer group.
func (s *ProfileService) Cumulative(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.repo.ListCumulative(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list cumulative profiles")
	}
	return profiles, nil
}

// Head returns the profile heading the department or faculty scopeID. It returns
// NOT_FOUND when nobody holds the position.
func (s *ProfileService) Head(ctx context.Context, mode models.CumulativeMode, scopeID int64) (*models.Profile, error) {
	head, err := s.repo.FindHead(ctx, mode, scopeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "head not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to find head")
	}
	return head, nil
}
