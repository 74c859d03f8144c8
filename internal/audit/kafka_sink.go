package audit

import (
	"context"
	"encoding/json"
	"time"

	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSink publishes audit entries to the payroll audit topic. The engine
// treats audit as a side channel, so Log errors are returned for the caller
// to swallow, never to abort a calculation.
type KafkaSink struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaSink(writer *kafkago.Writer, logger *zap.Logger) *KafkaSink {
	l := zap.L().Named("audit.kafka")
	if logger != nil {
		l = logger.Named("audit.kafka")
	}
	return &KafkaSink{writer: writer, logger: l}
}

func (s *KafkaSink) Log(ctx context.Context, entry Entry) error {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := entry.EmployeeID
	if key == "" {
		key = entry.Action
	}

	msgs := []kafkago.Message{{
		Topic: events.PayrollAuditTopic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(entry.Action)},
			{Key: "status", Value: []byte(entry.Status)},
		},
	}}

	// Selain audit trail, kalkulasi sukses juga dipublish sebagai domain
	// event untuk downstream (payslip, reporting).
	if domainMsg, ok := domainEventMessage(entry); ok {
		msgs = append(msgs, domainMsg)
	}

	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		s.logger.Error("publish audit entry failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func domainEventMessage(entry Entry) (kafkago.Message, bool) {
	switch entry.Action {
	case ActionPayrollCalculated:
		if entry.Status != StatusSuccess {
			return kafkago.Message{}, false
		}
		evt := events.PayrollCalculatedEvent{
			EventType:       ActionPayrollCalculated,
			RequestID:       entry.RequestID,
			CalculationID:   entry.CalculationID,
			EmployeeID:      entry.EmployeeID,
			CountryID:       entry.CountryID,
			PayrollPeriodID: entry.PayrollPeriodID,
			GrossPay:        metaFloat(entry.Meta, "gross_pay"),
			NetPay:          metaFloat(entry.Meta, "net_pay"),
			CurrencyCode:    metaString(entry.Meta, "currency"),
			OccurredAt:      entry.OccurredAt,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			return kafkago.Message{}, false
		}
		return kafkago.Message{
			Topic: events.PayrollCalculatedTopic,
			Key:   []byte(entry.EmployeeID),
			Value: payload,
		}, true

	case ActionPayrollBulkCompleted:
		evt := events.PayrollBulkCompletedEvent{
			EventType:       ActionPayrollBulkCompleted,
			RequestID:       entry.RequestID,
			CountryID:       entry.CountryID,
			PayrollPeriodID: entry.PayrollPeriodID,
			TotalRequested:  metaInt(entry.Meta, "total_requested"),
			SuccessCount:    metaInt(entry.Meta, "success_count"),
			FailedCount:     metaInt(entry.Meta, "failed_count"),
			OccurredAt:      entry.OccurredAt,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			return kafkago.Message{}, false
		}
		return kafkago.Message{
			Topic: events.PayrollBulkCompletedTopic,
			Key:   []byte(entry.PayrollPeriodID),
			Value: payload,
		}, true
	}

	return kafkago.Message{}, false
}

func metaFloat(meta map[string]any, key string) float64 {
	v, _ := meta[key].(float64)
	return v
}

func metaInt(meta map[string]any, key string) int {
	v, _ := meta[key].(int)
	return v
}

func metaString(meta map[string]any, key string) string {
	v, _ := meta[key].(string)
	return v
}

// Fanout forwards each entry to every sink and reports the first failure.
type Fanout []Sink

func (f Fanout) Log(ctx context.Context, entry Entry) error {
	var firstErr error
	for _, sink := range f {
		if err := sink.Log(ctx, entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
