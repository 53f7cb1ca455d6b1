package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/academic-rating/cmd/rating/commands"
	"github.com/noah-isme/academic-rating/pkg/cache"
	"github.com/noah-isme/academic-rating/pkg/config"
	"github.com/noah-isme/academic-rating/pkg/database"
	"github.com/noah-isme/academic-rating/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &commands.AppContext{Ctx: ctx}

	rootCmd := &cobra.Command{
		Use:           "rating",
		Short:         "Academic staff rating engine",
		Long:          "Score activity reports of academic staff and rank teachers, heads of departments, faculties and deans.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdownApp(app)
		},
	}

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.PeriodCmd(app))
	rootCmd.AddCommand(commands.StageCmds(app)...)
	rootCmd.AddCommand(commands.PipelineCmd(app))
	rootCmd.AddCommand(commands.RefreshHeadsCmd(app))
	rootCmd.AddCommand(commands.SubmitCmd(app))
	rootCmd.AddCommand(commands.CloseCmd(app))
	rootCmd.AddCommand(commands.PlacesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		if app.Logger != nil {
			app.Logger.Error("command failed", zap.Error(err))
			_ = shutdownApp(app)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initApp(app *commands.AppContext) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	app.Logger = log

	db, err := database.NewPostgres(app.Ctx, cfg.Database)
	if err != nil {
		return err
	}
	app.DB = db

	rdb, err := cache.NewRedis(app.Ctx, cfg.Redis, cfg.Rankings.CacheEnabled)
	if err != nil {
		log.Warn("ranking cache disabled", zap.Error(err))
	}
	app.Redis = rdb

	app.Services = commands.BuildServices(app)
	return nil
}

// shutdownApp pushes metrics and releases connections. Safe to call twice.
func shutdownApp(app *commands.AppContext) error {
	if app.Logger == nil {
		return nil
	}
	log := app.Logger
	if app.Services != nil {
		app.Services.HeadsRefresh.Stop()
		if url := app.Cfg.Metrics.PushgatewayURL; url != "" {
			if err := app.Services.Metrics.Push(context.Background(), url, app.Cfg.Metrics.JobName); err != nil {
				log.Warn("metrics push failed", zap.String("url", url), zap.Error(err))
			}
		}
		app.Services = nil
	}
	if app.Redis != nil {
		_ = app.Redis.Close()
		app.Redis = nil
	}
	if app.DB != nil {
		_ = app.DB.Close()
		app.DB = nil
	}
	_ = log.Sync()
	return nil
}
