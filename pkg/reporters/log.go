package reporters

import "context"

// logReporter writes settlements to the application log.
type logReporter struct {
	id  string
	log Logger
}

func newLogReporter(_ context.Context, cfg ReporterConfig, log Logger) (Reporter, error) {
	return &logReporter{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (l *logReporter) ID() string   { return l.id }
func (l *logReporter) Type() string { return TypeLog }

func (l *logReporter) Report(_ context.Context, evt Event) error {
	if evt.OK {
		l.log.InfoObj("api request settled", "settlement", evt)
		return nil
	}
	l.log.WarnObj("api request failed", "settlement", evt)
	return nil
}
