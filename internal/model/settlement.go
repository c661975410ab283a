package model

import (
    "errors"
    "time"
)

// SettlementStatus is the payout state of a settlement record.
type SettlementStatus string

const (
    SettlementReady SettlementStatus = "READY"
    SettlementPaid  SettlementStatus = "PAID"
)

// ErrAlreadyPaid is returned when paying a record twice.
var ErrAlreadyPaid = errors.New("settlement already paid")

// SettlementRecord is one payout unit owed to an instructor for a
// reservation.  Amount never changes after creation and the status only
// moves READY -> PAID.
type SettlementRecord struct {
    ID            uint64           `json:"id"`
    InstructorID  uint64           `json:"instructorId"`
    ReservationID uint64           `json:"reservationId"`
    SessionID     uint64           `json:"sessionId"`
    Amount        int64            `json:"amount"`
    Status        SettlementStatus `json:"status"`
    CreatedAt     time.Time        `json:"createdAt"`
    PaidAt        *time.Time       `json:"paidAt,omitempty"`
}

// MarkPaid moves the record to PAID and stamps PaidAt.
func (r *SettlementRecord) MarkPaid(now time.Time) error {
    if r.Status == SettlementPaid {
        return ErrAlreadyPaid
    }
    t := now.UTC()
    r.Status = SettlementPaid
    r.PaidAt = &t
    return nil
}

// SettlementSummary is the derived payout aggregate of a scope (one
// session or one instructor).  It is recomputed on every fetch.
type SettlementSummary struct {
    Records          []SettlementRecord `json:"settlements"`
    TotalPaidAmount  int64              `json:"totalPaidAmount"`
    TotalReadyAmount int64              `json:"totalReadyAmount"`
}

// Summarize partitions records by status and sums each partition.
func Summarize(records []SettlementRecord) SettlementSummary {
    s := SettlementSummary{Records: records}
    if s.Records == nil {
        s.Records = []SettlementRecord{}
    }
    for _, r := range records {
        switch r.Status {
        case SettlementPaid:
            s.TotalPaidAmount += r.Amount
        case SettlementReady:
            s.TotalReadyAmount += r.Amount
        }
    }
    return s
}

// Ready returns the READY records of the summary.
func (s SettlementSummary) Ready() []SettlementRecord {
    out := make([]SettlementRecord, 0, len(s.Records))
    for _, r := range s.Records {
        if r.Status == SettlementReady {
            out = append(out, r)
        }
    }
    return out
}
