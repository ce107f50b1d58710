package supervisor

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const (
	eventOpen  = "<log4j:Event"
	eventClose = "</log4j:Event>"
)

// Event is one record of the game's XML console layout
type Event struct {
	Logger    string
	Level     string
	Thread    string
	Time      time.Time
	Message   string
	Throwable string
}

// ParseEvent decodes a single <log4j:Event> element
func ParseEvent(raw string) (Event, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return Event{}, errors.Wrap(err, errors.ErrInvalidInput, "malformed log4j event")
	}
	root := doc.Root()
	if root == nil || root.Tag != "Event" {
		return Event{}, errors.New(errors.ErrInvalidInput, "not a log4j event")
	}

	ev := Event{
		Logger: root.SelectAttrValue("logger", ""),
		Level:  strings.ToUpper(root.SelectAttrValue("level", "")),
		Thread: root.SelectAttrValue("thread", ""),
	}
	if ms, err := strconv.ParseInt(root.SelectAttrValue("timestamp", ""), 10, 64); err == nil {
		ev.Time = time.UnixMilli(ms)
	}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "Message":
			ev.Message = strings.TrimSpace(child.Text())
		case "Throwable":
			ev.Throwable = strings.TrimSpace(child.Text())
		}
	}
	return ev, nil
}

// Flusher is implemented by sinks that buffer partial output
type Flusher interface {
	Flush(stream Stream)
}

// Log4jSink logs the game's XML console events with their own level and
// logger name. An event may span several lines; they are buffered per
// stream until the closing tag. Anything else goes to the fallback sink.
type Log4jSink struct {
	logger   zerolog.Logger
	fallback Sink

	mu      sync.Mutex
	pending map[Stream]*strings.Builder
}

// NewLog4jSink creates a Log4jSink that falls back to a LogSink on the same logger
func NewLog4jSink(logger zerolog.Logger) *Log4jSink {
	return &Log4jSink{
		logger:   logger,
		fallback: NewLogSink(logger),
		pending:  make(map[Stream]*strings.Builder),
	}
}

func (s *Log4jSink) Line(stream Stream, line string) {
	s.mu.Lock()
	buf, open := s.pending[stream]
	if !open {
		if !strings.HasPrefix(line, eventOpen) {
			s.mu.Unlock()
			s.fallback.Line(stream, line)
			return
		}
		buf = &strings.Builder{}
		s.pending[stream] = buf
	} else {
		buf.WriteByte('\n')
	}
	buf.WriteString(line)
	if !strings.Contains(line, eventClose) {
		s.mu.Unlock()
		return
	}
	delete(s.pending, stream)
	raw := buf.String()
	s.mu.Unlock()

	ev, err := ParseEvent(raw)
	if err != nil {
		s.logger.Debug().Err(err).Str("stream", string(stream)).Msg("Undecodable log4j event")
		s.fallback.Line(stream, raw)
		return
	}
	s.log(stream, ev)
}

// Flush forwards an unterminated event as plain text
func (s *Log4jSink) Flush(stream Stream) {
	s.mu.Lock()
	buf, open := s.pending[stream]
	delete(s.pending, stream)
	s.mu.Unlock()
	if open {
		s.fallback.Line(stream, buf.String())
	}
}

func (s *Log4jSink) log(stream Stream, ev Event) {
	var e *zerolog.Event
	switch ev.Level {
	case "FATAL", "ERROR":
		e = s.logger.Error()
	case "WARN":
		e = s.logger.Warn()
	case "DEBUG":
		e = s.logger.Debug()
	case "TRACE":
		e = s.logger.Trace()
	default:
		e = s.logger.Info()
	}
	e = e.Str("stream", string(stream)).Str("logger", ev.Logger).Str("thread", ev.Thread)
	if !ev.Time.IsZero() {
		e = e.Time("game_time", ev.Time)
	}
	if ev.Throwable != "" {
		e = e.Str("throwable", ev.Throwable)
	}
	e.Msg(ev.Message)
}
