package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// LogFile is the file under the log directory the consumer appends to.
const LogFile = "reservation.log"

// Consumer reads reservation events and appends one line per event to
// Dir/reservation.log.
type Consumer struct {
    URL string
    Dir string
}

// Run keeps a consumer attached to the broker until ctx is done,
// reconnecting with exponential backoff capped at 30s.
func (c Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            slog.Warn("reservation-consumer: dial failed", "err", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consume(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        slog.Warn("reservation-consumer: consume loop ended; reconnecting", "err", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        slog.Warn("reservation-consumer: set QoS failed", "err", err)
    }
    if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(d.Body); err != nil {
                slog.Error("reservation-consumer: handle message failed", "err", err)
                _ = d.Nack(false, false) // drop; requeueing a bad message loops forever
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one message body and appends its log line.
func (c Consumer) Handle(body []byte) error {
    var ev Event
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(c.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", c.Dir, err)
    }
    f, err := os.OpenFile(filepath.Join(c.Dir, LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders an event as a single log line.
func FormatLine(ev Event) string {
    ts := ev.OccurredAt.UTC().Format(time.RFC3339)
    switch ev.Type {
    case ReservationCreated:
        return fmt.Sprintf("[%s] Reservation created | reservation_id=%d | session_id=%d | applicant=%q | phone=%s\n",
            ts, ev.ReservationID, ev.SessionID, ev.ApplicantName, ev.PhoneNumber)
    case ReservationCancelled:
        return fmt.Sprintf("[%s] Reservation cancelled | reservation_id=%d | session_id=%d\n",
            ts, ev.ReservationID, ev.SessionID)
    case SettlementPaid:
        return fmt.Sprintf("[%s] Settlement paid | settlement_id=%d | reservation_id=%d | instructor_id=%d | amount=%d\n",
            ts, ev.SettlementID, ev.ReservationID, ev.InstructorID, ev.Amount)
    }
    return fmt.Sprintf("[%s] %s | event_id=%s\n", ts, ev.Type, ev.ID)
}
