//go:build unit

package publisher_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"coach-booking-engine/internal/infra/publisher"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/usecase/events"
	"coach-booking-engine/tests/common/testutil"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	failFor map[string]bool
	block   chan struct{}
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

func event(orderID string, seq uint64) events.Event {
	return events.Event{
		ID:         "ev-" + orderID,
		Seq:        seq,
		Kind:       events.KindExpired,
		OrderID:    orderID,
		OccurredAt: time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaSink(t *testing.T) {
	t.Run("events are written keyed by order id", func(t *testing.T) {
		w := &fakeWriter{}
		sink := publisher.NewKafkaSink(w, 8, testutil.DiscardLogger())

		sink.Handle(event("A1", 1))
		sink.Handle(event("A2", 2))
		require.NoError(t, sink.Close())

		msgs := w.written()
		require.Len(t, msgs, 2)
		assert.Equal(t, "A1", string(msgs[0].Key))
		assert.Equal(t, "reservation.expired", string(msgs[0].Headers[0].Value))

		var decoded events.Event
		require.NoError(t, json.Unmarshal(msgs[1].Value, &decoded))
		assert.Equal(t, "A2", decoded.OrderID)
		assert.Equal(t, uint64(2), decoded.Seq)
		assert.True(t, w.closed)
	})

	t.Run("write failures do not stop the sink", func(t *testing.T) {
		w := &fakeWriter{failFor: map[string]bool{"bad": true}}
		sink := publisher.NewKafkaSink(w, 8, testutil.DiscardLogger())

		sink.Handle(event("bad", 1))
		sink.Handle(event("good", 2))
		require.NoError(t, sink.Close())

		msgs := w.written()
		require.Len(t, msgs, 1)
		assert.Equal(t, "good", string(msgs[0].Key))
	})

	t.Run("full queue drops instead of blocking", func(t *testing.T) {
		w := &fakeWriter{block: make(chan struct{})}
		sink := publisher.NewKafkaSink(w, 1, testutil.DiscardLogger())

		done := make(chan struct{})
		go func() {
			for i := 0; i < 10; i++ {
				sink.Handle(event("A1", uint64(i)))
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Handle blocked on a full queue")
		}

		close(w.block)
		require.NoError(t, sink.Close())
		assert.Less(t, len(w.written()), 10)
	})

	t.Run("events after close are ignored", func(t *testing.T) {
		w := &fakeWriter{}
		sink := publisher.NewKafkaSink(w, 8, testutil.DiscardLogger())
		require.NoError(t, sink.Close())
		require.NoError(t, sink.Close())
		assert.NotPanics(t, func() { sink.Handle(event("A1", 1)) })
		assert.Empty(t, w.written())
	})
}

func TestNewKafkaWriter(t *testing.T) {
	_, err := publisher.NewKafkaWriter(config.EventsConfig{KafkaTopic: "t"})
	assert.Error(t, err)

	_, err = publisher.NewKafkaWriter(config.EventsConfig{KafkaBrokers: []string{"localhost:9092"}})
	assert.Error(t, err)

	w, err := publisher.NewKafkaWriter(config.EventsConfig{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "reservation-events"})
	require.NoError(t, err)
	assert.Equal(t, "reservation-events", w.Topic)
	require.NoError(t, w.Close())
}
