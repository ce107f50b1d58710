package supervisor

import (
	"github.com/rs/zerolog"
)

// Stream names the origin of an output line
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// Sink receives output lines. It may be called from two goroutines at once.
type Sink interface {
	Line(stream Stream, line string)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(stream Stream, line string)

func (f SinkFunc) Line(stream Stream, line string) { f(stream, line) }

// LogSink writes lines to a logger: stdout at info, stderr at warn
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a LogSink
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Line(stream Stream, line string) {
	ev := s.logger.Info()
	if stream == Stderr {
		ev = s.logger.Warn()
	}
	ev.Str("stream", string(stream)).Msg(line)
}
