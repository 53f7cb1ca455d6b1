package commands

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/internal/repository"
	"github.com/noah-isme/academic-rating/internal/scoring"
	"github.com/noah-isme/academic-rating/internal/service"
	"github.com/noah-isme/academic-rating/internal/validation"
	"github.com/noah-isme/academic-rating/pkg/config"
	"github.com/noah-isme/academic-rating/pkg/jobs"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Logger   *zap.Logger
	Ctx      context.Context
	Services *Services
}

// Services is the wired service graph.
type Services struct {
	Metrics      *service.MetricsService
	Cache        *service.CacheService
	Periods      *service.PeriodService
	Profiles     *service.ProfileService
	Aggregate    *service.AggregateService
	Reports      *service.ReportService
	HeadsRefresh *service.HeadsRefreshService
	Pipeline     *service.PipelineService
	Rankings     *service.RankingService
}

// BuildServices wires repositories and services over the open connections.
func BuildServices(app *AppContext) *Services {
	log := app.Logger
	cfg := app.Cfg

	periodRepo := repository.NewPeriodRepository(app.DB)
	profileRepo := repository.NewProfileRepository(app.DB)
	genericRepo := repository.NewGenericReportRepository(app.DB)
	categoryRepo := repository.NewCategoryReportRepository(app.DB)
	teacherRepo := repository.NewTeacherResultRepository(app.DB)
	headRepo := repository.NewHeadResultRepository(app.DB)
	facultyRepo := repository.NewFacultyResultRepository(app.DB)
	deanRepo := repository.NewDeanResultRepository(app.DB)
	cacheRepo := repository.NewCacheRepository(app.Redis, log)

	validator := validation.MustNew()
	metrics := service.NewMetricsService()
	cache := service.NewCacheService(cacheRepo, metrics, cfg.Rankings.CacheTTL, log, cfg.Rankings.CacheEnabled && app.Redis != nil)

	periods := service.NewPeriodService(periodRepo, validator, log)
	profiles := service.NewProfileService(profileRepo, log)
	aggregate := service.NewAggregateService(genericRepo, categoryRepo, scoring.Normalizer{ApplyAssignmentShare: cfg.Scoring.ApplyAssignmentShare}, log)

	heads := service.NewHeadsRefreshService(profiles, periods, genericRepo, aggregate, metrics, cache, jobs.QueueConfig{
		BufferSize: cfg.Recalc.BufferSize,
		MaxRetries: cfg.Recalc.Retries,
		RetryDelay: cfg.Recalc.RetryDelay,
		Logger:     log,
	}, log)

	reports := service.NewReportService(periods, profiles, genericRepo, categoryRepo, aggregate, heads, cache, validator, metrics, log)

	pipeline := service.NewPipelineService(log,
		service.NewRawCalcStage(profiles, genericRepo, categoryRepo, aggregate, metrics, cache, log),
		service.NewTeacherPlacesStage(categoryRepo, teacherRepo, metrics, cache, log),
		service.NewHeadsStage(teacherRepo, headRepo, metrics, cache, log),
		service.NewFacultyStage(teacherRepo, facultyRepo, metrics, cache, log),
		service.NewDeansStage(profiles, teacherRepo, facultyRepo, deanRepo, metrics, cache, log),
	)

	rankings := service.NewRankingService(teacherRepo, headRepo, facultyRepo, deanRepo, categoryRepo, cache, log)

	return &Services{
		Metrics:      metrics,
		Cache:        cache,
		Periods:      periods,
		Profiles:     profiles,
		Aggregate:    aggregate,
		Reports:      reports,
		HeadsRefresh: heads,
		Pipeline:     pipeline,
		Rankings:     rankings,
	}
}
