package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/audit"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAuditTrail reads calculation audit events from the audit topic and
// replays them into the given sink (the durable audit store). Malformed
// messages are committed and skipped; sink failures leave the message
// uncommitted so it is retried.
func ConsumeAuditTrail(
	ctx context.Context,
	reader *kafkago.Reader,
	sink audit.Sink,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit_trail")
	log.Info("audit trail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit trail consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		var entry audit.Entry
		if err := json.Unmarshal(msg.Value, &entry); err != nil {
			log.Error("decode audit entry failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sink.Log(ctx, entry); err != nil {
			log.Error("store audit entry failed",
				zap.String("action", entry.Action),
				zap.String("calculation_id", entry.CalculationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}

		log.Debug("audit entry stored",
			zap.String("action", entry.Action),
			zap.String("employee_id", entry.EmployeeID),
		)
	}
}
