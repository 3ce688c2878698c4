package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards log entries of the configured levels to sentry.
type SentryHook struct {
	levels  []logrus.Level
	capture func(event *sentry.Event)
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels: levels,
		capture: func(event *sentry.Event) {
			sentry.CaptureEvent(event)
		},
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	if h.capture == nil {
		return errors.New("sentry hook: no capture func")
	}
	h.capture(entryToEvent(entry))
	return nil
}

func entryToEvent(entry *logrus.Entry) *sentry.Event {
	event := sentry.NewEvent()
	event.Message = entry.Message
	event.Timestamp = entry.Time
	event.Level = sentryLevel(entry.Level)
	event.Logger = "logrus"

	if len(entry.Data) > 0 {
		event.Extra = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			event.Extra[k] = v
		}
	}
	return event
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
