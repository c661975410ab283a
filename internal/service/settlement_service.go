package service

import (
    "context"
    "errors"
    "fmt"
    "sync"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

// ErrPartialBatch is wrapped by the error of a batch pay in which at
// least one record failed.  Records paid before the failure stay paid.
var ErrPartialBatch = errors.New("some settlements could not be paid")

// SettlementService aggregates and pays settlement records.
type SettlementService struct {
    backend api.Backend
}

// NewSettlementService wires a SettlementService to backend.
func NewSettlementService(backend api.Backend) *SettlementService {
    return &SettlementService{backend: backend}
}

// BatchResult reports the outcome of a batch pay.
type BatchResult struct {
    Paid   []model.SettlementRecord
    Failed map[uint64]error
}

// SummaryForInstructor returns every record of the instructor with the
// paid and ready totals.
func (s *SettlementService) SummaryForInstructor(ctx context.Context, instructorID uint64) (model.SettlementSummary, error) {
    return s.backend.Settlements().ListByInstructor(ctx, instructorID)
}

// SummaryForSession returns the records of one session with the totals.
func (s *SettlementService) SummaryForSession(ctx context.Context, sessionID uint64) (model.SettlementSummary, error) {
    return s.backend.Settlements().ListBySession(ctx, sessionID)
}

// Pay moves one record to PAID.  Paying a PAID record is a conflict.
func (s *SettlementService) Pay(ctx context.Context, settlementID uint64) (model.SettlementRecord, error) {
    return s.backend.Settlements().Pay(ctx, settlementID)
}

// PayAllInSession pays every READY record of a session.
func (s *SettlementService) PayAllInSession(ctx context.Context, sessionID uint64) (BatchResult, error) {
    sum, err := s.SummaryForSession(ctx, sessionID)
    if err != nil {
        return BatchResult{}, err
    }
    return s.payAll(ctx, sum.Ready())
}

// PayAllForInstructor pays every READY record of an instructor.
func (s *SettlementService) PayAllForInstructor(ctx context.Context, instructorID uint64) (BatchResult, error) {
    sum, err := s.SummaryForInstructor(ctx, instructorID)
    if err != nil {
        return BatchResult{}, err
    }
    return s.payAll(ctx, sum.Ready())
}

// payAll issues one Pay per record concurrently and waits for all of them.
// Nothing is rolled back when some fail.
func (s *SettlementService) payAll(ctx context.Context, records []model.SettlementRecord) (BatchResult, error) {
    res := BatchResult{
        Paid:   make([]model.SettlementRecord, 0, len(records)),
        Failed: map[uint64]error{},
    }
    var (
        mu sync.Mutex
        wg sync.WaitGroup
    )
    for _, rec := range records {
        wg.Add(1)
        go func(id uint64) {
            defer wg.Done()
            paid, err := s.Pay(ctx, id)
            mu.Lock()
            defer mu.Unlock()
            if err != nil {
                res.Failed[id] = err
                return
            }
            res.Paid = append(res.Paid, paid)
        }(rec.ID)
    }
    wg.Wait()

    if len(res.Failed) == 0 {
        return res, nil
    }
    errs := []error{ErrPartialBatch}
    for id, err := range res.Failed {
        errs = append(errs, fmt.Errorf("settlement %d: %w", id, err))
    }
    return res, errors.Join(errs...)
}
