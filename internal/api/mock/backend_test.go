package mock_test

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/api/mock"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

type fixture struct {
    b          *mock.Backend
    instructor model.Instructor
    listing    model.Listing
}

// newFixture seeds kim, logs in as kim and creates one listing.
func newFixture(t *testing.T, opts ...mock.Option) fixture {
    t.Helper()
    ctx := context.Background()
    opts = append([]mock.Option{mock.WithLatency(0), mock.WithBcryptCost(bcrypt.MinCost)}, opts...)
    b := mock.New(storage.NewMemoryStore(), opts...)
    in, err := b.SeedInstructor(ctx, "kim@example.com", "Kim", "secret-pw", model.RoleInstructor)
    require.NoError(t, err)
    _, err = b.Auth().Login(ctx, "kim@example.com", "secret-pw")
    require.NoError(t, err)
    l, err := b.Listings().Create(ctx, model.ListingInput{
        InstructorID: in.ID,
        Name:         "Pottery",
        Location:     "Seoul",
    })
    require.NoError(t, err)
    return fixture{b: b, instructor: in, listing: l}
}

func (f fixture) session(t *testing.T, capacity int, price int64) model.Session {
    t.Helper()
    s, err := f.b.Sessions().Create(context.Background(), f.listing.ID, model.SessionInput{
        Date:      "2026-11-02",
        StartTime: "10:00",
        EndTime:   "12:00",
        Capacity:  capacity,
        Price:     price,
    })
    require.NoError(t, err)
    return s
}

func (f fixture) reserve(t *testing.T, sessionID uint64, name string) uint64 {
    t.Helper()
    id, err := f.b.Reservations().Create(context.Background(), sessionID, model.ReservationInput{
        ApplicantName: name,
        PhoneNumber:   "01012345678",
    })
    require.NoError(t, err)
    return id
}

func TestCapacityFillsAndFrees(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 2, 30000)

    first := f.reserve(t, s.ID, "A")
    f.reserve(t, s.ID, "B")

    got, err := f.b.Sessions().Get(ctx, s.ID)
    require.NoError(t, err)
    assert.Equal(t, model.SessionFull, got.Status)
    assert.Equal(t, 2, got.CurrentNum)

    _, err = f.b.Reservations().Create(ctx, s.ID, model.ReservationInput{ApplicantName: "C", PhoneNumber: "010-1111-2222"})
    require.Error(t, err)
    assert.True(t, api.IsValidation(err))
    assert.Equal(t, "session is full", err.Error())

    require.NoError(t, f.b.Reservations().Cancel(ctx, first))
    got, err = f.b.Sessions().Get(ctx, s.ID)
    require.NoError(t, err)
    assert.Equal(t, model.SessionRecruiting, got.Status)
    assert.Equal(t, 1, got.CurrentNum)

    // second cancel is a no-op
    require.NoError(t, f.b.Reservations().Cancel(ctx, first))
    got, err = f.b.Sessions().Get(ctx, s.ID)
    require.NoError(t, err)
    assert.Equal(t, 1, got.CurrentNum)
}

func TestReservationStoresCanonicalPhone(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 5, 0)
    id := f.reserve(t, s.ID, "  Lee ")

    r, err := f.b.Reservations().Get(ctx, id)
    require.NoError(t, err)
    assert.Equal(t, "010-1234-5678", r.PhoneNumber)
    assert.Equal(t, "Lee", r.ApplicantName)
    assert.Equal(t, model.ReservationConfirmed, r.Status)

    found, err := f.b.Reservations().Search(ctx, "Lee", "010 1234 5678")
    require.NoError(t, err)
    require.Len(t, found, 1)
    assert.Equal(t, id, found[0].ID)

    _, err = f.b.Reservations().Create(ctx, s.ID, model.ReservationInput{ApplicantName: "X", PhoneNumber: "1234"})
    assert.True(t, api.IsValidation(err))
}

func TestShareGate(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 5, 0)

    _, err := f.b.Listings().SetShareStatus(ctx, f.listing.ID, model.ShareDisabled)
    require.NoError(t, err)
    _, err = f.b.Reservations().Create(ctx, s.ID, model.ReservationInput{ApplicantName: "A", PhoneNumber: "01012345678"})
    require.Error(t, err)
    assert.True(t, api.IsValidation(err))

    shared, err := f.b.Listings().GetShared(ctx, f.listing.ShareCode)
    require.NoError(t, err)
    assert.Equal(t, model.ShareDisabled, shared.Listing.ShareStatus)
    assert.Len(t, shared.Sessions, 1)

    _, err = f.b.Listings().SetShareStatus(ctx, f.listing.ID, model.ShareEnabled)
    require.NoError(t, err)
    f.reserve(t, s.ID, "A")

    _, err = f.b.Listings().GetShared(ctx, "nope")
    assert.True(t, api.IsNotFound(err))
}

func TestFullSessionCanFinish(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 1, 0)
    f.reserve(t, s.ID, "A")

    _, err := f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionRecruiting)
    assert.True(t, api.IsConflict(err))
    got, err := f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionFinished)
    require.NoError(t, err)
    assert.Equal(t, model.SessionFinished, got.Status)
    assert.Equal(t, 1, got.CurrentNum)
}

func TestStatusOverride(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 1, 0)

    _, err := f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionFull)
    assert.True(t, api.IsValidation(err))

    got, err := f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionClosed)
    require.NoError(t, err)
    assert.Equal(t, model.SessionClosed, got.Status)

    _, err = f.b.Reservations().Create(ctx, s.ID, model.ReservationInput{ApplicantName: "A", PhoneNumber: "01012345678"})
    assert.True(t, api.IsValidation(err))

    _, err = f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionRecruiting)
    require.NoError(t, err)
    f.reserve(t, s.ID, "A")

    _, err = f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionClosed)
    assert.True(t, api.IsConflict(err))
}

func TestSessionCreateValidation(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    cases := []model.SessionInput{
        {Date: "2026-11-02", StartTime: "10:00", EndTime: "12:00", Capacity: 0},
        {Date: "2026-11-02", StartTime: "12:00", EndTime: "10:00", Capacity: 3},
        {Date: "2026/11/02", StartTime: "10:00", EndTime: "12:00", Capacity: 3},
        {Date: "2026-11-02", StartTime: "10:00", EndTime: "12:00", Capacity: 3, Price: -1},
    }
    for _, in := range cases {
        _, err := f.b.Sessions().Create(ctx, f.listing.ID, in)
        assert.True(t, api.IsValidation(err), "%+v", in)
    }
    _, err := f.b.Sessions().Create(ctx, 999, model.SessionInput{Date: "2026-11-02", StartTime: "10:00", EndTime: "12:00", Capacity: 3})
    assert.True(t, api.IsNotFound(err))
}

func TestDeleteRefusedWithReservations(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 3, 0)
    id := f.reserve(t, s.ID, "A")

    err := f.b.Sessions().Delete(ctx, s.ID)
    require.Error(t, err)
    assert.True(t, api.IsConflict(err))
    assert.Equal(t, "cannot delete session with reservations", err.Error())
    assert.True(t, api.IsConflict(f.b.Listings().Delete(ctx, f.listing.ID)))

    require.NoError(t, f.b.Reservations().Cancel(ctx, id))
    require.NoError(t, f.b.Listings().Delete(ctx, f.listing.ID))
    _, err = f.b.Sessions().Get(ctx, s.ID)
    assert.True(t, api.IsNotFound(err))
}

func TestSettlementLifecycle(t *testing.T) {
    ctx := context.Background()
    now := time.Date(2026, 11, 2, 13, 0, 0, 0, time.UTC)
    f := newFixture(t, mock.WithClock(func() time.Time { return now }))
    s := f.session(t, 3, 30000)
    f.reserve(t, s.ID, "A")
    cancelled := f.reserve(t, s.ID, "B")
    require.NoError(t, f.b.Reservations().Cancel(ctx, cancelled))

    sum, err := f.b.Settlements().ListBySession(ctx, s.ID)
    require.NoError(t, err)
    require.Len(t, sum.Records, 1)
    assert.Equal(t, int64(30000), sum.TotalReadyAmount)
    assert.Zero(t, sum.TotalPaidAmount)

    paid, err := f.b.Settlements().Pay(ctx, sum.Records[0].ID)
    require.NoError(t, err)
    assert.Equal(t, model.SettlementPaid, paid.Status)
    require.NotNil(t, paid.PaidAt)

    assert.True(t, paid.PaidAt.Equal(now))

    now = now.Add(24 * time.Hour)
    _, err = f.b.Settlements().Pay(ctx, paid.ID)
    assert.True(t, api.IsConflict(err))
    assert.Equal(t, "settlement already paid", err.Error())
    sum, err = f.b.Settlements().ListBySession(ctx, s.ID)
    require.NoError(t, err)
    require.NotNil(t, sum.Records[0].PaidAt)
    assert.True(t, sum.Records[0].PaidAt.Equal(*paid.PaidAt), "paid-at moved to %v", sum.Records[0].PaidAt)

    sum, err = f.b.Settlements().ListByInstructor(ctx, f.instructor.ID)
    require.NoError(t, err)
    assert.Equal(t, int64(30000), sum.TotalPaidAmount)
    assert.Zero(t, sum.TotalReadyAmount)

    _, err = f.b.Settlements().Pay(ctx, 404)
    assert.True(t, api.IsNotFound(err))
}

func TestAuthSession(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    require.NoError(t, f.b.Auth().Logout(ctx))

    st, err := f.b.Auth().Status(ctx)
    require.NoError(t, err)
    assert.False(t, st.Authenticated)
    err = f.b.Auth().Refresh(ctx)
    assert.True(t, api.IsAuth(err))
    assert.Equal(t, api.SessionExpiredMessage, err.Error())

    _, err = f.b.Auth().Login(ctx, "kim@example.com", "wrong")
    assert.True(t, api.IsAuth(err))
    _, err = f.b.Auth().Login(ctx, "kim@example.com", "")
    assert.True(t, api.IsValidation(err))
    assert.Equal(t, api.CredentialsMessage, err.Error())

    in, err := f.b.Auth().Login(ctx, "KIM@example.com", "secret-pw")
    require.NoError(t, err)
    assert.Empty(t, in.PasswordHash)

    st, err = f.b.Auth().Status(ctx)
    require.NoError(t, err)
    require.True(t, st.Authenticated)
    assert.Equal(t, f.instructor.ID, st.Instructor.ID)
    require.NoError(t, f.b.Auth().Refresh(ctx))

    require.NoError(t, f.b.Auth().Logout(ctx))
    st, err = f.b.Auth().Status(ctx)
    require.NoError(t, err)
    assert.False(t, st.Authenticated)
}

func TestInstructorCallsRequireLogin(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 3, 0)
    id := f.reserve(t, s.ID, "A")
    require.NoError(t, f.b.Auth().Logout(ctx))

    _, err := f.b.Listings().Create(ctx, model.ListingInput{Name: "Baking", Location: "Busan"})
    assert.True(t, api.IsAuth(err))
    assert.Equal(t, api.SessionExpiredMessage, err.Error())
    _, err = f.b.Sessions().Get(ctx, s.ID)
    assert.True(t, api.IsAuth(err))
    _, err = f.b.Settlements().ListByInstructor(ctx, 0)
    assert.True(t, api.IsAuth(err))

    // the booking flow stays public
    r, err := f.b.Reservations().Get(ctx, id)
    require.NoError(t, err)
    assert.Equal(t, "A", r.ApplicantName)
    _, err = f.b.Listings().GetShared(ctx, f.listing.ShareCode)
    assert.NoError(t, err)
    f.reserve(t, s.ID, "B")
}

func TestOwnershipRules(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 3, 30000)
    f.reserve(t, s.ID, "A")
    sum, err := f.b.Settlements().ListBySession(ctx, s.ID)
    require.NoError(t, err)
    require.Len(t, sum.Records, 1)

    lee, err := f.b.SeedInstructor(ctx, "lee@example.com", "Lee", "lee-pw", model.RoleInstructor)
    require.NoError(t, err)
    _, err = f.b.SeedInstructor(ctx, "admin@example.com", "Admin", "admin-pw", model.RoleAdmin)
    require.NoError(t, err)
    _, err = f.b.Auth().Login(ctx, "lee@example.com", "lee-pw")
    require.NoError(t, err)

    forbidden := func(err error) {
        t.Helper()
        require.Error(t, err)
        assert.True(t, api.IsAuth(err))
        assert.Equal(t, api.ForbiddenMessage, err.Error())
    }
    _, err = f.b.Listings().Get(ctx, f.listing.ID)
    forbidden(err)
    _, err = f.b.Listings().ListByInstructor(ctx, f.instructor.ID)
    forbidden(err)
    _, err = f.b.Sessions().UpdateStatus(ctx, s.ID, model.SessionClosed)
    forbidden(err)
    _, err = f.b.Reservations().ListBySession(ctx, s.ID)
    forbidden(err)
    _, err = f.b.Settlements().Pay(ctx, sum.Records[0].ID)
    forbidden(err)
    _, err = f.b.Admin().ListInstructors(ctx)
    forbidden(err)

    // zero means the caller
    mine, err := f.b.Listings().ListByInstructor(ctx, 0)
    require.NoError(t, err)
    assert.Empty(t, mine)
    l, err := f.b.Listings().Create(ctx, model.ListingInput{Name: "Baking", Location: "Busan"})
    require.NoError(t, err)
    assert.Equal(t, lee.ID, l.InstructorID)

    // an attached caller wins over the login session
    asKim := api.WithCaller(ctx, f.instructor.ID)
    paid, err := f.b.Settlements().Pay(asKim, sum.Records[0].ID)
    require.NoError(t, err)
    assert.Equal(t, model.SettlementPaid, paid.Status)

    _, err = f.b.Auth().Login(ctx, "admin@example.com", "admin-pw")
    require.NoError(t, err)
    _, err = f.b.Listings().Get(ctx, f.listing.ID)
    assert.NoError(t, err)
    _, err = f.b.Admin().ListInstructors(ctx)
    assert.NoError(t, err)
}

func TestTemplateOnePerType(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    in := model.MessageTemplateInput{InstructorID: f.instructor.ID, Type: model.MessageD1, Title: "t", Body: "Hi {name}"}
    tpl, err := f.b.MessageTemplates().Create(ctx, in)
    require.NoError(t, err)

    _, err = f.b.MessageTemplates().Create(ctx, in)
    assert.True(t, api.IsConflict(err))

    in.Body = "Hello {name}"
    got, err := f.b.MessageTemplates().Update(ctx, tpl.ID, in)
    require.NoError(t, err)
    assert.Equal(t, "Hello {name}", got.Body)

    in.Type = "WEEKLY"
    _, err = f.b.MessageTemplates().Create(ctx, in)
    assert.True(t, api.IsValidation(err))
}

func TestMembers(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    m, err := f.b.Members().Create(ctx, model.MemberInput{InstructorID: f.instructor.ID, Name: "Park", PhoneNumber: "0212345678"})
    require.NoError(t, err)
    assert.Equal(t, "02-1234-5678", m.PhoneNumber)

    _, err = f.b.Members().Create(ctx, model.MemberInput{InstructorID: f.instructor.ID, PhoneNumber: "0212345678"})
    require.Error(t, err)
    assert.Equal(t, "name is required", err.Error())

    list, err := f.b.Members().ListByInstructor(ctx, f.instructor.ID)
    require.NoError(t, err)
    assert.Len(t, list, 1)
    require.NoError(t, f.b.Members().Delete(ctx, m.ID))
    assert.True(t, api.IsNotFound(f.b.Members().Delete(ctx, m.ID)))
}

func TestAdminCounts(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    s := f.session(t, 3, 0)
    f.reserve(t, s.ID, "A")
    _, err := f.b.SeedInstructor(ctx, "admin@example.com", "Admin", "pw", model.RoleAdmin)
    require.NoError(t, err)
    _, err = f.b.Auth().Login(ctx, "admin@example.com", "pw")
    require.NoError(t, err)

    rows, err := f.b.Admin().ListInstructors(ctx)
    require.NoError(t, err)
    require.Len(t, rows, 2)
    assert.Equal(t, 1, rows[0].OnedayClassCount)
    assert.Equal(t, 1, rows[0].SessionCount)
    assert.Equal(t, 1, rows[0].ReservationCount)
    assert.Zero(t, rows[1].OnedayClassCount)
    assert.Empty(t, rows[1].PasswordHash)
}

func TestLatencyHonoursContext(t *testing.T) {
    b := mock.New(storage.NewMemoryStore(), mock.WithLatency(time.Hour))
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    _, err := b.Listings().ListByInstructor(ctx, 1)
    assert.ErrorIs(t, err, context.Canceled)
}

func TestSharedStoreSurvivesRestart(t *testing.T) {
    ctx := context.Background()
    store := storage.NewMemoryStore()
    b := mock.New(store, mock.WithLatency(0), mock.WithBcryptCost(bcrypt.MinCost))
    in, err := b.SeedInstructor(ctx, "a@example.com", "A", "pw", model.RoleInstructor)
    require.NoError(t, err)

    again := mock.New(store, mock.WithLatency(0))
    same, err := again.SeedInstructor(ctx, "a@example.com", "A", "other", model.RoleInstructor)
    require.NoError(t, err)
    assert.Equal(t, in.ID, same.ID)
    _, err = again.VerifyCredentials(ctx, "a@example.com", "pw")
    assert.NoError(t, err)
}
