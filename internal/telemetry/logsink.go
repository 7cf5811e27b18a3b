package telemetry

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/codewatch/internal/logging"
)

// LogSink records telemetry through the structured logger. It stands in
// for a real transport in the CLI and recovers from any panic so the
// no-throw contract holds even if the logger misbehaves.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a LogSink. A nil logger uses the package default.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSink{logger: logger}
}

// Event implements Sink.
func (s *LogSink) Event(name string, properties map[string]string) {
	defer func() { _ = recover() }()
	s.logger.Debug("telemetry event", append([]any{"event", name}, flatten(properties)...)...)
}

// Exception implements Sink.
func (s *LogSink) Exception(name, message string, properties map[string]string) {
	defer func() { _ = recover() }()
	kv := append([]any{"exception", name, "message", message}, flatten(properties)...)
	s.logger.Debug("telemetry exception", kv...)
}

func flatten(properties map[string]string) []any {
	kv := make([]any, 0, len(properties)*2)
	for k, v := range properties {
		kv = append(kv, k, v)
	}
	return kv
}
