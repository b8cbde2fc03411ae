package logging

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	logglobal "go.opentelemetry.io/otel/log/global"
)

const otelLoggerName = "peat/logging"

// otelBridge mirrors entries into the global OpenTelemetry logger provider,
// which is a no-op unless the process installs one.
type otelBridge struct{}

func newOTelBridge() *otelBridge {
	return &otelBridge{}
}

func (b *otelBridge) emit(entry LogEntry) {
	if b == nil {
		return
	}
	logger := logglobal.Logger(otelLoggerName)
	severity := severityForLevel(entry.Level)
	ctx := context.Background()
	if !logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity}) {
		return
	}

	var record otellog.Record
	record.SetTimestamp(entry.Timestamp)
	record.SetObservedTimestamp(time.Now().UTC())
	record.SetSeverity(severity)
	record.SetSeverityText(string(entry.Level))
	record.SetBody(otellog.StringValue(entry.Message))
	if len(entry.Context) > 0 {
		attrs := make([]otellog.KeyValue, 0, len(entry.Context))
		for _, key := range sortedKeys(entry.Context) {
			attrs = append(attrs, otellog.String(key, entry.Context[key]))
		}
		record.AddAttributes(attrs...)
	}
	logger.Emit(ctx, record)
}

func severityForLevel(level Level) otellog.Severity {
	switch level {
	case LevelDebug:
		return otellog.SeverityDebug
	case LevelWarning:
		return otellog.SeverityWarn
	case LevelError:
		return otellog.SeverityError
	default:
		return otellog.SeverityInfo
	}
}
