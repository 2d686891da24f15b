package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/camillapd/RoomReservationsAPI/internal/app"
)

// reservationMessage is the wire form of a reservation lifecycle event.
// Dates and hours use the same textual formats as the HTTP API.
type reservationMessage struct {
	Kind            string    `json:"kind"`
	ReservationID   string    `json:"reservation_id"`
	RoomID          string    `json:"room_id"`
	RoomName        string    `json:"room_name"`
	ReservationDate string    `json:"reservation_date"`
	StartHour       string    `json:"start_hour"`
	EndHour         string    `json:"end_hour"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Publisher sends reservation events to a durable RabbitMQ queue.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger *log.Logger
}

func NewPublisher(url, queueName string, logger *log.Logger) (*Publisher, error) {
	if logger == nil {
		logger = log.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	return &Publisher{
		conn:   conn,
		ch:     ch,
		queue:  queueName,
		logger: logger,
	}, nil
}

func (p *Publisher) PublishReservationEvent(ctx context.Context, ev app.ReservationEvent) error {
	body, err := json.Marshal(reservationMessage{
		Kind:            string(ev.Kind),
		ReservationID:   ev.Reservation.ID,
		RoomID:          ev.Reservation.RoomID,
		RoomName:        ev.RoomName,
		ReservationDate: ev.Reservation.Date.Format("2006-01-02"),
		StartHour:       ev.Reservation.Start.String(),
		EndHour:         ev.Reservation.End.String(),
		OccurredAt:      ev.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal reservation event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Printf("WARN: publish reservation event: %v", err)
		return fmt.Errorf("publish reservation event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	_ = p.ch.Close()
	_ = p.conn.Close()
}
