package app

import "go.uber.org/zap"

// Logger is the component-tagged logging shape used across the app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZapLogger routes component logs to a zap logger, one named child per
// component.
type ZapLogger struct{ l *zap.SugaredLogger }

func NewZapLogger(l *zap.Logger) ZapLogger { return ZapLogger{l: l.Sugar()} }

func (z ZapLogger) Infof(component string, format string, args ...interface{}) {
	z.l.Named(component).Infof(format, args...)
}

func (z ZapLogger) Errorf(component string, format string, args ...interface{}) {
	z.l.Named(component).Errorf(format, args...)
}
