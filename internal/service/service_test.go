package service

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/api/mock"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

type env struct {
    backend    *mock.Backend
    instructor model.Instructor
    listing    model.Listing
}

func newEnv(t *testing.T) env {
    t.Helper()
    ctx := context.Background()
    b := mock.New(storage.NewMemoryStore(), mock.WithLatency(0), mock.WithBcryptCost(bcrypt.MinCost))
    in, err := b.SeedInstructor(ctx, "kim@example.com", "Kim", "pw", model.RoleInstructor)
    require.NoError(t, err)
    _, err = b.Auth().Login(ctx, "kim@example.com", "pw")
    require.NoError(t, err)
    l, err := b.Listings().Create(ctx, model.ListingInput{InstructorID: in.ID, Name: "Baking", Location: "Busan"})
    require.NoError(t, err)
    return env{backend: b, instructor: in, listing: l}
}

func (e env) session(t *testing.T, capacity int, price int64) model.Session {
    t.Helper()
    s, err := NewSessionService(e.backend).Create(context.Background(), e.listing.ID, model.SessionInput{
        Date: "2026-12-01", StartTime: "14:00", EndTime: "16:00", Capacity: capacity, Price: price,
    })
    require.NoError(t, err)
    return s
}

func TestSessionService_CreateRejectsBadWindow(t *testing.T) {
    e := newEnv(t)
    svc := NewSessionService(e.backend)
    _, err := svc.Create(context.Background(), e.listing.ID, model.SessionInput{
        Date: "2026-12-01", StartTime: "16:00", EndTime: "16:00", Capacity: 3,
    })
    require.Error(t, err)
    assert.True(t, api.IsValidation(err))
    assert.Equal(t, model.ErrInvalidTimeWindow.Error(), err.Error())

    _, err = svc.Create(context.Background(), e.listing.ID, model.SessionInput{
        Date: "2026-12-01", StartTime: "10:00", EndTime: "11:00", Capacity: -1,
    })
    assert.True(t, api.IsValidation(err))

    s := e.session(t, 4, 0)
    assert.Equal(t, model.SessionRecruiting, s.Status)
    assert.Zero(t, s.CurrentNum)
}

func TestSessionService_UpdateStatusRejectsFull(t *testing.T) {
    e := newEnv(t)
    s := e.session(t, 4, 0)
    _, err := NewSessionService(e.backend).UpdateStatus(context.Background(), s.ID, model.SessionFull)
    assert.True(t, api.IsValidation(err))
}

func TestSessionService_ListWithCounts(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s1 := e.session(t, 3, 0)
    e.session(t, 3, 0)
    res := NewReservationService(e.backend)
    id, err := res.Create(ctx, s1.ID, "A", "010-1111-2222")
    require.NoError(t, err)
    _, err = res.Create(ctx, s1.ID, "B", "01033334444")
    require.NoError(t, err)
    require.NoError(t, res.Cancel(ctx, id))

    rows, err := NewSessionService(e.backend).ListWithCounts(ctx, e.listing.ID)
    require.NoError(t, err)
    require.Len(t, rows, 2)
    assert.Equal(t, 1, rows[0].ConfirmedCount)
    assert.Equal(t, 1, rows[0].CurrentNum)
    assert.Zero(t, rows[1].ConfirmedCount)
}

func TestSessionService_DeletePassesMessage(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s := e.session(t, 3, 0)
    _, err := NewReservationService(e.backend).Create(ctx, s.ID, "A", "01011112222")
    require.NoError(t, err)

    err = NewSessionService(e.backend).Delete(ctx, s.ID)
    assert.True(t, api.IsConflict(err))
    assert.Equal(t, "cannot delete session with reservations", err.Error())
}

func TestReservationService_Lookup(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s := e.session(t, 3, 0)
    svc := NewReservationService(e.backend)

    _, err := svc.Create(ctx, s.ID, "Choi", "12345")
    assert.True(t, api.IsValidation(err))

    id, err := svc.Create(ctx, s.ID, "Choi", "0505-123-4567")
    require.NoError(t, err)

    got, err := svc.Lookup(ctx, "Choi", "05051234567")
    require.NoError(t, err)
    require.Len(t, got, 1)
    assert.Equal(t, id, got[0].ID)
    assert.Equal(t, "0505-123-4567", got[0].PhoneNumber)

    many, err := svc.LookupMany(ctx, []Query{{"Choi", "0505-123-4567"}, {"Nobody", "01000000000"}})
    require.NoError(t, err)
    assert.Len(t, many[0], 1)
    assert.Empty(t, many[1])
}

func TestSettlementService_PayAllInSession(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s := e.session(t, 5, 20000)
    res := NewReservationService(e.backend)
    for _, name := range []string{"A", "B", "C"} {
        _, err := res.Create(ctx, s.ID, name, "01012345678")
        require.NoError(t, err)
    }
    svc := NewSettlementService(e.backend)

    sum, err := svc.SummaryForSession(ctx, s.ID)
    require.NoError(t, err)
    first, err := svc.Pay(ctx, sum.Records[0].ID)
    require.NoError(t, err)
    require.NotNil(t, first.PaidAt)

    out, err := svc.PayAllInSession(ctx, s.ID)
    require.NoError(t, err)
    assert.Len(t, out.Paid, 2)
    assert.Empty(t, out.Failed)

    sum, err = svc.SummaryForInstructor(ctx, e.instructor.ID)
    require.NoError(t, err)
    assert.Equal(t, int64(60000), sum.TotalPaidAmount)
    assert.Zero(t, sum.TotalReadyAmount)

    _, err = svc.Pay(ctx, first.ID)
    assert.True(t, api.IsConflict(err))
    sum, err = svc.SummaryForSession(ctx, s.ID)
    require.NoError(t, err)
    for _, rec := range sum.Records {
        if rec.ID == first.ID {
            require.NotNil(t, rec.PaidAt)
            assert.True(t, rec.PaidAt.Equal(*first.PaidAt))
        }
    }
}

// flakyBackend fails Pay for one record id.
type flakyBackend struct {
    api.Backend
    failID uint64
}

func (f flakyBackend) Settlements() api.SettlementAPI {
    return flakySettlements{SettlementAPI: f.Backend.Settlements(), failID: f.failID}
}

type flakySettlements struct {
    api.SettlementAPI
    failID uint64
}

func (f flakySettlements) Pay(ctx context.Context, id uint64) (model.SettlementRecord, error) {
    if id == f.failID {
        return model.SettlementRecord{}, api.Network(errors.New("connection reset"))
    }
    return f.SettlementAPI.Pay(ctx, id)
}

func TestSettlementService_PartialBatchKeepsSuccesses(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s := e.session(t, 5, 1000)
    res := NewReservationService(e.backend)
    for _, name := range []string{"A", "B", "C"} {
        _, err := res.Create(ctx, s.ID, name, "01012345678")
        require.NoError(t, err)
    }
    sum, err := NewSettlementService(e.backend).SummaryForSession(ctx, s.ID)
    require.NoError(t, err)
    failID := sum.Records[1].ID

    svc := NewSettlementService(flakyBackend{Backend: e.backend, failID: failID})
    out, err := svc.PayAllForInstructor(ctx, e.instructor.ID)
    require.Error(t, err)
    assert.ErrorIs(t, err, ErrPartialBatch)
    assert.True(t, api.IsNetwork(err))
    assert.Len(t, out.Paid, 2)
    require.Contains(t, out.Failed, failID)

    sum, err = svc.SummaryForSession(ctx, s.ID)
    require.NoError(t, err)
    assert.Equal(t, int64(2000), sum.TotalPaidAmount)
    assert.Equal(t, int64(1000), sum.TotalReadyAmount)
}

func TestMessageService_Preview(t *testing.T) {
    ctx := context.Background()
    e := newEnv(t)
    s := e.session(t, 5, 0)
    id, err := NewReservationService(e.backend).Create(ctx, s.ID, "Jung", "01012345678")
    require.NoError(t, err)
    tpl, err := e.backend.MessageTemplates().Create(ctx, model.MessageTemplateInput{
        InstructorID: e.instructor.ID,
        Type:         model.MessageD1,
        Title:        "Tomorrow",
        Body:         "{name}, {className} starts {date} {startTime} at {location}.",
    })
    require.NoError(t, err)

    msg, err := NewMessageService(e.backend).Preview(ctx, tpl.ID, id)
    require.NoError(t, err)
    assert.Equal(t, "Jung, Baking starts 2026-12-01 14:00 at Busan.", msg)
}
