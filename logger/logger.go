package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	mtx    sync.Mutex
)

// Get returns the process-wide sugared logger, building a development
// logger on first use.
func Get() *zap.SugaredLogger {
	mtx.Lock()
	defer mtx.Unlock()

	if logger == nil {
		lg, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = lg
		sugar = lg.Sugar()
	}
	return sugar
}

// SetMode replaces the process-wide logger. Mode is "production" or
// "development"; anything else falls back to development.
func SetMode(mode string) error {
	mtx.Lock()
	defer mtx.Unlock()

	var lg *zap.Logger
	var err error
	if mode == "production" {
		lg, err = zap.NewProduction()
	} else {
		lg, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	logger = lg
	sugar = lg.Sugar()
	return nil
}
