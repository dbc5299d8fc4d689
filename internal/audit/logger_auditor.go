package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LoggerAuditor writes audit events to the application logger.
type LoggerAuditor struct {
	enabled bool
	logger  *logrus.Logger
}

func NewLoggerAuditor(logger *logrus.Logger, enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, logger: logger}
}

func (a *LoggerAuditor) Log(ctx context.Context, action string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_resource": resource,
	}

	// Add details flattened into the fields
	for k, v := range details {
		fields["detail."+k] = v
	}

	// Log at INFO level with a specific prefix to make it easy to grep
	a.logger.WithFields(fields).Info("AUDIT EVENT")
}
