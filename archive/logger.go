package archive

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the archive package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the archive package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

func zapEntry(e Entry, size int) []zap.Field {
	return []zap.Field{
		zap.String("name", e.Name),
		zap.String("kind", e.Kind),
		zap.String("asset", e.Asset),
		zap.Int("size", size),
	}
}
