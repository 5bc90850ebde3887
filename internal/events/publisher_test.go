package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/testfixtures"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newKafkaPublisher(writer, testfixtures.Seoul, logger.NewNop())
	p.timeProvider = testfixtures.At(2026, time.October, 20, 9, 50)

	booking := testfixtures.Booking("b-1", "R1", testfixtures.Date(2026, time.October, 20), "10:00", "11:00")
	p.Publish(context.Background(), domain.EventBookingCheckedIn, booking)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "b-1", string(msg.Key))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, "booking.checked_in", envelope.Type)
	assert.Equal(t, specVersion, envelope.SpecVersion)
	assert.NotEmpty(t, envelope.ID)
	assert.Equal(t, "2026-10-20T09:50:00+09:00", envelope.Time.Format(time.RFC3339))
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "b-1", envelope.Data.ID)
	assert.Equal(t, "10:00", envelope.Data.StartTime)
}

func TestKafkaPublisher_ErrorsAreSwallowed(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	p := newKafkaPublisher(writer, testfixtures.Seoul, logger.NewNop())

	booking := testfixtures.Booking("b-1", "R1", testfixtures.Date(2026, time.October, 20), "10:00", "11:00")
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), domain.EventBookingCreated, booking)
	})
	assert.ErrorIs(t, p.publish(context.Background(), domain.EventBookingCreated, booking), ErrPublish)

	p.Publish(context.Background(), domain.EventBookingCreated, nil)
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(string, ...interface{}) {}
func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func TestNewKafkaWriter_DoesNotBlockCallers(t *testing.T) {
	log := &recordingLogger{}
	w := newKafkaWriter([]string{"localhost:9092"}, "bookings", log)

	assert.True(t, w.Async)
	assert.Equal(t, brokerWriteTimeout, w.WriteTimeout)
	assert.Equal(t, maxWriteAttempts, w.MaxAttempts)
	require.NotNil(t, w.Completion)

	w.Completion([]kafka.Message{{Key: []byte("b-1")}}, nil)
	assert.Empty(t, log.errors)

	w.Completion([]kafka.Message{{Key: []byte("b-1")}, {Key: []byte("b-2")}}, errors.New("broker down"))
	require.Len(t, log.errors, 2)
	assert.Contains(t, log.errors[0], "booking id=b-1")
	assert.Contains(t, log.errors[1], "broker down")
}
