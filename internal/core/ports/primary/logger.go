package primary

// Logger is the logging port handlers and services depend on; the zap
// adapter implements it.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}
