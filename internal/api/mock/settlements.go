package mock

import (
    "context"
    "errors"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
)

type settlementAPI struct{ b *Backend }

func (a settlementAPI) ListByInstructor(ctx context.Context, instructorID uint64) (model.SettlementSummary, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.SettlementSummary{}, err
    }
    defer unlock()
    if instructorID, err = scope(who, instructorID); err != nil {
        return model.SettlementSummary{}, err
    }
    recs, err := a.b.settlements.ListByInstructor(ctx, instructorID)
    if err != nil {
        return model.SettlementSummary{}, err
    }
    return model.Summarize(recs), nil
}

func (a settlementAPI) ListBySession(ctx context.Context, sessionID uint64) (model.SettlementSummary, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.SettlementSummary{}, err
    }
    defer unlock()
    if _, err := a.b.ownedSession(ctx, who, sessionID); err != nil {
        return model.SettlementSummary{}, err
    }
    recs, err := a.b.settlements.ListBySession(ctx, sessionID)
    if err != nil {
        return model.SettlementSummary{}, err
    }
    return model.Summarize(recs), nil
}

// Pay moves one record from READY to PAID.  The owning instructor or an
// admin may pay it.
func (a settlementAPI) Pay(ctx context.Context, id uint64) (model.SettlementRecord, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.SettlementRecord{}, err
    }
    defer unlock()
    rec, err := a.b.settlements.GetByID(ctx, id)
    if err != nil {
        return model.SettlementRecord{}, notFound(err, "settlement not found")
    }
    if err := allow(who, rec.InstructorID); err != nil {
        return model.SettlementRecord{}, err
    }
    if err := rec.MarkPaid(a.b.clock()); err != nil {
        if errors.Is(err, model.ErrAlreadyPaid) {
            return model.SettlementRecord{}, api.Conflict(err.Error())
        }
        return model.SettlementRecord{}, err
    }
    if err := a.b.settlements.Update(ctx, rec); err != nil {
        return model.SettlementRecord{}, err
    }
    return rec, nil
}
