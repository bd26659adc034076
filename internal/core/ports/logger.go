package ports

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Error(err error)
}
