package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings/models"
)

const (
	source          = "smc-meeting-room-service"
	specVersion     = "1.0"
	dataContentType = "application/json"
	writeTimeout    = 5 * time.Second

	// брокер недоступен - не ждём дольше, чтобы не копить очередь
	brokerWriteTimeout = 2 * time.Second
	maxWriteAttempts   = 3
)

// ErrPublish возвращается при ошибке отправки события в брокер
var ErrPublish = errors.New("events: failed to publish event")

// KafkaPublisher публикует события жизненного цикла бронирований в топик Kafka.
// Ошибки публикации только логируются: операция над бронированием уже выполнена.
type KafkaPublisher struct {
	writer       MessageWriter
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewKafkaPublisher создает публикатор поверх асинхронного kafka.Writer.
// Publish не ждёт подтверждения брокера, ошибки доставки логируются в Completion.
func NewKafkaPublisher(brokers []string, topic string, location *time.Location, logger Logger) *KafkaPublisher {
	return newKafkaPublisher(newKafkaWriter(brokers, topic, logger), location, logger)
}

func newKafkaWriter(brokers []string, topic string, logger Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: brokerWriteTimeout,
		MaxAttempts:  maxWriteAttempts,
		Async:        true,
		Completion:   completionLogger(logger),
	}
}

// completionLogger логирует сообщения, которые не удалось доставить в брокер
func completionLogger(logger Logger) func(messages []kafka.Message, err error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, msg := range messages {
			logger.Error("Publish: delivery failed: booking id=%s: %v", string(msg.Key), err)
		}
	}
}

func newKafkaPublisher(writer MessageWriter, location *time.Location, logger Logger) *KafkaPublisher {
	if location == nil {
		location = time.UTC
	}
	return &KafkaPublisher{
		writer:       writer,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Publish отправляет событие; ключ сообщения - ID бронирования, чтобы события одной брони шли по порядку
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) {
	if booking == nil {
		return
	}
	if err := p.publish(ctx, event, booking); err != nil {
		p.logger.Error("Publish: event=%s booking id=%s: %v", event, booking.ID, err)
		return
	}
	p.logger.Info("Publish: event=%s booking id=%s queued", event, booking.ID)
}

func (p *KafkaPublisher) publish(ctx context.Context, event domain.BookingEvent, booking *domain.Booking) error {
	envelope := Envelope{
		SpecVersion:     specVersion,
		ID:              uuid.NewString(),
		Source:          source,
		Type:            string(event),
		Time:            p.timeProvider.Now().In(p.location),
		DataContentType: dataContentType,
		Data:            models.FromDomainBooking(booking, p.location),
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	// публикация не должна зависеть от отмены запроса, который уже выполнен
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(booking.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "ce_type", Value: []byte(event)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close дожидается отправки накопленных сообщений и закрывает соединение с брокером
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, domain.BookingEvent, *domain.Booking) {}

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
