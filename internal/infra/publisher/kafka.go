package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/internal/pkg/errs"
	"coach-booking-engine/internal/usecase/events"

	"github.com/segmentio/kafka-go"
)

const (
	headerEventKind = "event-kind"
	headerEventID   = "event-id"
	writeTimeout    = 10 * time.Second
)

// MessageWriter is the part of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink forwards reservation events to a topic, keyed by order id.
// Handle never blocks: when the queue is full the event is dropped and
// logged.
type KafkaSink struct {
	writer MessageWriter
	logger *slog.Logger
	queue  chan events.Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewKafkaWriter(cfg config.EventsConfig) (*kafka.Writer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errs.New("at least one kafka broker is required")
	}
	if cfg.KafkaTopic == "" {
		return nil, errs.New("kafka topic cannot be empty")
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
	}, nil
}

func NewKafkaSink(writer MessageWriter, queueSize int, logger *slog.Logger) *KafkaSink {
	if queueSize <= 0 {
		queueSize = 128
	}
	s := &KafkaSink{
		writer: writer,
		logger: logger,
		queue:  make(chan events.Event, queueSize),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Handle is an events.Handler.
func (s *KafkaSink) Handle(ev events.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- ev:
	default:
		s.logger.Warn("event sink queue full, dropping event",
			slog.String("kind", string(ev.Kind)),
			slog.String("order_id", ev.OrderID))
	}
}

// Close flushes queued events and closes the writer.
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	return s.writer.Close()
}

func (s *KafkaSink) run() {
	defer close(s.done)
	for ev := range s.queue {
		if err := s.write(ev); err != nil {
			s.logger.Error("failed to publish event",
				slog.String("kind", string(ev.Kind)),
				slog.String("order_id", ev.OrderID),
				slog.String("error", err.Error()))
		}
	}
}

func (s *KafkaSink) write(ev events.Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal event")
	}
	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventKind, Value: []byte(ev.Kind)},
			{Key: headerEventID, Value: []byte(ev.ID)},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return errs.Wrap(s.writer.WriteMessages(ctx, msg), "write kafka message")
}
