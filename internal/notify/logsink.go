package notify

import "log/slog"

// LogSink writes every notification to the structured log. Useful in
// headless contexts where no UI is polling the feed.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver logs the notification at info level.
func (s *LogSink) Deliver(n Notification) {
	s.logger.Info("notification",
		slog.String("kind", string(n.Kind)),
		slog.String("title", n.Title),
		slog.String("description", n.Description),
		slog.String("severity", string(n.Severity)),
	)
}
