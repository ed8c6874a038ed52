package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"

	"github.com/avnishka/BookBee/util/logger"
)

func TestKafkaPublish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	pub := NewKafka(producer, "bookbee.events", logger.FromZap(zaptest.NewLogger(t)))

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev map[string]any
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev["type"] != TypeOrderPlaced {
			return errors.New("wrong type")
		}
		return nil
	})
	require.NoError(t, pub.Publish(context.Background(), New(TypeOrderPlaced, map[string]int64{"order_id": 1})))

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	err := pub.Publish(context.Background(), New(TypeCreditGiven, nil))
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestHeaderCarrierRoundTrip(t *testing.T) {
	tid, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	sid, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled,
	}))

	var c headerCarrier
	propagation.TraceContext{}.Inject(ctx, &c)
	require.Equal(t, []string{"traceparent"}, c.Keys())

	out := propagation.TraceContext{}.Extract(context.Background(), &c)
	require.Equal(t, tid, trace.SpanContextFromContext(out).TraceID())
}

func TestNoop(t *testing.T) {
	require.NoError(t, Noop().Publish(context.Background(), New(TypeOrderPlaced, nil)))
}
