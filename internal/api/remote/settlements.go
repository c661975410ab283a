package remote

import (
    "context"
    "net/http"

    "github.com/iliyamo/oneday-class/internal/model"
)

type settlementAPI struct{ c *Client }

// summary recomputes the totals from the records so that a backend
// returning stale or missing totals cannot skew the view.
func summary(s model.SettlementSummary) model.SettlementSummary {
    return model.Summarize(s.Records)
}

func (a settlementAPI) ListByInstructor(ctx context.Context, instructorID uint64) (model.SettlementSummary, error) {
    var out model.SettlementSummary
    if err := a.c.do(ctx, http.MethodGet, idPath("/api/settlements/instructors/%d", instructorID), nil, nil, &out); err != nil {
        return model.SettlementSummary{}, err
    }
    return summary(out), nil
}

func (a settlementAPI) ListBySession(ctx context.Context, sessionID uint64) (model.SettlementSummary, error) {
    var out model.SettlementSummary
    if err := a.c.do(ctx, http.MethodGet, idPath("/api/settlements/sessions/%d", sessionID), nil, nil, &out); err != nil {
        return model.SettlementSummary{}, err
    }
    return summary(out), nil
}

func (a settlementAPI) Pay(ctx context.Context, id uint64) (model.SettlementRecord, error) {
    var out model.SettlementRecord
    err := a.c.do(ctx, http.MethodPost, idPath("/api/settlements/%d/pay", id), nil, nil, &out)
    return out, err
}
