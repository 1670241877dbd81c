package logging

import (
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// fields promoted from entry data to sentry tags, so events can be searched by them
var tagFields = []string{"uin", "request_id"}

// SentryHook forwards log entries of the given levels to sentry, with the
// static tags set on every event.
type SentryHook struct {
	levels []logrus.Level
	tags   map[string]string
	hub    *sentry.Hub
}

func NewSentryHook(levels []logrus.Level, tags map[string]string) *SentryHook {
	return &SentryHook{
		levels: levels,
		tags:   tags,
		hub:    sentry.CurrentHub(),
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	hub := h.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		h.fillScope(scope, entry)

		if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
			hub.CaptureException(err)
			return
		}
		hub.CaptureException(errors.New(entry.Message))
	})
	return nil
}

func (h *SentryHook) fillScope(scope *sentry.Scope, entry *logrus.Entry) {
	scope.SetLevel(sentryLevel(entry.Level))
	for k, v := range h.tags {
		if v != "" {
			scope.SetTag(k, v)
		}
	}
	for _, field := range tagFields {
		if v, ok := entry.Data[field]; ok {
			scope.SetTag(field, fmt.Sprint(v))
		}
	}
	for k, v := range entry.Data {
		scope.SetExtra(k, v)
	}
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
