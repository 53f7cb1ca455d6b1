package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/academic-rating/pkg/config"
)

// AppName tags every log line of the rating tools.
const AppName = "academic-rating"

// New builds the process logger. Output goes to stderr so command results on stdout stay clean.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Log.Format {
	case "console":
		zapCfg.Encoding = "console"
		zapCfg.DisableStacktrace = true
	default:
		zapCfg.Encoding = "json"
	}
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.InitialFields = map[string]interface{}{"app": AppName, "env": cfg.Env}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// ForStage returns a child logger tagged with the batch stage and run identifier.
func ForStage(l *zap.Logger, stage, runID string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.Named(stage).With(zap.String("stage", stage), zap.String("run_id", runID))
}
