package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ZapSink struct{}

func NewZapSink() *ZapSink {
	return &ZapSink{}
}

func (s *ZapSink) Log(ctx context.Context, entry Entry) error {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", entry.OccurredAt.Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("status", entry.Status),
		zap.String("employee_id", entry.EmployeeID),
		zap.String("calculation_id", entry.CalculationID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
	return nil
}
