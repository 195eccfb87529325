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

// Sync flushes buffered entries. Meant to be deferred from main.
func Sync() {
	mtx.Lock()
	defer mtx.Unlock()

	if logger != nil {
		_ = logger.Sync()
	}
}
