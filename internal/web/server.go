package web

// Logger is the component-tagged logger of the web layer.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}
