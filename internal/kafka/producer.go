package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"ms-booking/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

// Publish writes a single message to the given topic.
func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

// BookingEvent is the payload published for booking lifecycle changes.
type BookingEvent struct {
	Type          string  `json:"type"`
	BookingID     string  `json:"booking_id"`
	UserID        string  `json:"user_id"`
	DestinationID string  `json:"destination_id"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"total_amount"`
}

// PublishBookingEvent streams a booking lifecycle event to the given topic.
func (p *Producer) PublishBookingEvent(topic, eventType string, booking *models.Booking) error {
	event := BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		DestinationID: booking.DestinationID,
		Status:        string(booking.Status),
		TotalAmount:   booking.TotalAmount,
	}
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(topic, booking.ID, msgBytes)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
