package logging

import (
	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logging surface the rest of the module depends
// on, kept narrow so a test double can satisfy it without pulling in charm.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
	With(keyvals ...any) Logger
}

// charmLogger adapts *charmlog.Logger to Logger.
type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg any, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg any, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg any, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg any, keyvals ...any) { c.l.Error(msg, keyvals...) }

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

// NewLogger builds a Logger from cfg, falling back to DefaultConfig (or
// TestConfig, under `go test`) when cfg is nil.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		if IsTestEnvironment() {
			cfg = TestConfig()
		} else {
			cfg = DefaultConfig()
		}
	}
	formatter := charmlog.TextFormatter
	if cfg.JSON {
		formatter = charmlog.JSONFormatter
	}
	l := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		Level:           cfg.Level.ToCharmlogLevel(),
		TimeFormat:      cfg.TimeFormat,
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		Formatter:       formatter,
	})
	return &charmLogger{l: l}
}
