package queue

import (
    "context"
    "encoding/json"
    "log/slog"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// QueueName is the durable queue reservation events go to.
const QueueName = "reservation.events"

// Publisher delivers events.  Failures are returned so callers may log
// and ignore them; a booking never fails because the broker is down.
type Publisher interface {
    Publish(ctx context.Context, ev Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// AMQPPublisher dials the broker for every publish.  Event volume is one
// message per booking, so a pooled connection is not worth its
// reconnect handling.
type AMQPPublisher struct {
    URL string
}

// NewPublisher returns an AMQPPublisher for url, or Nop when url is empty.
func NewPublisher(url string) Publisher {
    if url == "" {
        return Nop{}
    }
    return &AMQPPublisher{URL: url}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        slog.Warn("rabbitmq: dial failed", "err", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        slog.Warn("rabbitmq: channel open failed", "err", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
        slog.Warn("rabbitmq: queue declare failed", "err", err)
        return err
    }
    err = ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.ID,
        Type:         string(ev.Type),
        Timestamp:    time.Now().UTC(),
        Body:         body,
    })
    if err != nil {
        slog.Warn("rabbitmq: publish failed", "type", ev.Type, "err", err)
    }
    return err
}
