package logger

import (
	"go.uber.org/zap"
)

// Log is the package-level logger. It is a no-op until Initialize runs
// so tests and helpers can log without any setup.
var Log = zap.NewNop()

func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	zap.ReplaceGlobals(zl)
	return nil
}
