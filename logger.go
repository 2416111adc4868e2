package sb1

import (
	"sync"

	"github.com/wippyai/sb1/codec"
	"github.com/wippyai/sb1/squeak"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the sb1 package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the logger of sb1 and of the decoding packages
// beneath it. This must be called before any decoding.
func SetLogger(l *zap.Logger) {
	logger = l
	squeak.SetLogger(l.Named("squeak"))
	codec.SetLogger(l.Named("codec"))
}
