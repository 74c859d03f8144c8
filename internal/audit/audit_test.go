package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/events"

	"github.com/stretchr/testify/assert"
)

type stubSink struct {
	entries []Entry
	err     error
}

func (s *stubSink) Log(ctx context.Context, entry Entry) error {
	s.entries = append(s.entries, entry)
	return s.err
}

func TestFanoutDeliversToAllSinksAndReportsFirstError(t *testing.T) {
	first := &stubSink{err: errors.New("broker down")}
	second := &stubSink{}

	err := Fanout{first, second}.Log(context.Background(), Entry{Action: ActionPayrollCalculated})

	assert.EqualError(t, err, "broker down")
	assert.Len(t, first.entries, 1)
	assert.Len(t, second.entries, 1)
}

func TestDomainEventMessageForCalculation(t *testing.T) {
	entry := Entry{
		Action:          ActionPayrollCalculated,
		Status:          StatusSuccess,
		EmployeeID:      "emp-1",
		CountryID:       "ctry-1",
		PayrollPeriodID: "period-1",
		CalculationID:   "CALC-1",
		Meta: map[string]any{
			"gross_pay": 70000.0,
			"net_pay":   61023.0,
			"currency":  "INR",
		},
		OccurredAt: time.Now().UTC(),
	}

	msg, ok := domainEventMessage(entry)
	assert.True(t, ok)
	assert.Equal(t, events.PayrollCalculatedTopic, msg.Topic)

	var evt events.PayrollCalculatedEvent
	assert.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, "CALC-1", evt.CalculationID)
	assert.Equal(t, 61023.0, evt.NetPay)
	assert.Equal(t, "INR", evt.CurrencyCode)
}

func TestDomainEventMessageSkipsFailures(t *testing.T) {
	_, ok := domainEventMessage(Entry{Action: ActionPayrollCalculated, Status: StatusFailed})
	assert.False(t, ok)

	_, ok = domainEventMessage(Entry{Action: ActionServerShutdown})
	assert.False(t, ok)
}

func TestDomainEventMessageForBulkSummary(t *testing.T) {
	entry := Entry{
		Action:          ActionPayrollBulkCompleted,
		PayrollPeriodID: "period-1",
		Meta: map[string]any{
			"total_requested": 120,
			"success_count":   118,
			"failed_count":    2,
		},
	}

	msg, ok := domainEventMessage(entry)
	assert.True(t, ok)
	assert.Equal(t, events.PayrollBulkCompletedTopic, msg.Topic)

	var evt events.PayrollBulkCompletedEvent
	assert.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, 120, evt.TotalRequested)
	assert.Equal(t, 118, evt.SuccessCount)
	assert.Equal(t, 2, evt.FailedCount)
}
