package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/config"
)

type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger from the logging section. debug switches to zap's
// development preset before the configured overrides are applied.
func New(cfg config.LoggingConfig, debug bool) (*Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zcfg.Level = level
	}

	switch cfg.Format {
	case "":
	case "json", "console":
		zcfg.Encoding = cfg.Format
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.OutputPath != "" {
		zcfg.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger.Sugar()}, nil
}

func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
