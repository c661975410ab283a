// Package mock implements api.Backend on a local key-value store.  It
// reproduces the business rules of the real backend (login, ownership,
// capacity, share gate, settlement transitions) so that callers cannot
// tell the two apart, and waits a fixed artificial latency before every
// operation.
package mock

import (
    "context"
    "errors"
    "fmt"
    "reflect"
    "strings"
    "sync"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/repository"
    "github.com/iliyamo/oneday-class/internal/storage"
    "github.com/iliyamo/oneday-class/internal/utils"
)

// DefaultLatency is the artificial delay applied when no option overrides it.
const DefaultLatency = 300 * time.Millisecond

// sessionKey holds the id of the logged-in instructor.
const sessionKey = "auth:session"

// Backend is the local implementation of api.Backend.  Collections are
// read-modify-written as a whole; mu serializes those cycles within one
// Backend.  Two Backends sharing a store are not coordinated.
type Backend struct {
    mu       sync.Mutex
    store    storage.Store
    latency  time.Duration
    now      func() time.Time
    cost     int
    validate *validator.Validate

    instructors  *repository.InstructorRepo
    listings     *repository.ListingRepo
    sessions     *repository.SessionRepo
    reservations *repository.ReservationRepo
    settlements  *repository.SettlementRepo
    members      *repository.MemberRepo
    templates    *repository.MessageTemplateRepo
}

// Option configures a Backend.
type Option func(*Backend)

// WithLatency overrides the artificial delay.  Zero disables it.
func WithLatency(d time.Duration) Option { return func(b *Backend) { b.latency = d } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(b *Backend) { b.now = now } }

// WithBcryptCost sets the cost used when seeding instructors.
func WithBcryptCost(cost int) Option { return func(b *Backend) { b.cost = cost } }

// New builds a Backend persisting into store.
func New(store storage.Store, opts ...Option) *Backend {
    b := &Backend{
        store:        store,
        latency:      DefaultLatency,
        now:          time.Now,
        validate:     newValidator(),
        instructors:  repository.NewInstructorRepo(store),
        listings:     repository.NewListingRepo(store),
        sessions:     repository.NewSessionRepo(store),
        reservations: repository.NewReservationRepo(store),
        settlements:  repository.NewSettlementRepo(store),
        members:      repository.NewMemberRepo(store),
        templates:    repository.NewMessageTemplateRepo(store),
    }
    for _, opt := range opts {
        opt(b)
    }
    return b
}

// Store returns the store the backend persists into.  The dev server
// keeps its refresh tokens there too.
func (b *Backend) Store() storage.Store { return b.store }

func (b *Backend) Auth() api.AuthAPI                        { return authAPI{b} }
func (b *Backend) Listings() api.ListingAPI                 { return listingAPI{b} }
func (b *Backend) Sessions() api.SessionAPI                 { return sessionAPI{b} }
func (b *Backend) Reservations() api.ReservationAPI         { return reservationAPI{b} }
func (b *Backend) Members() api.MemberAPI                   { return memberAPI{b} }
func (b *Backend) Settlements() api.SettlementAPI           { return settlementAPI{b} }
func (b *Backend) MessageTemplates() api.MessageTemplateAPI { return templateAPI{b} }
func (b *Backend) Admin() api.AdminAPI                      { return adminAPI{b} }

// begin waits the artificial latency and takes the backend lock.  The
// returned func releases it.
func (b *Backend) begin(ctx context.Context) (func(), error) {
    if b.latency > 0 {
        t := time.NewTimer(b.latency)
        select {
        case <-ctx.Done():
            t.Stop()
            return nil, ctx.Err()
        case <-t.C:
        }
    }
    b.mu.Lock()
    return b.mu.Unlock, nil
}

func (b *Backend) clock() time.Time { return b.now().UTC() }

// check runs struct validation and converts the first failure into a
// validation error naming the JSON field.
func (b *Backend) check(v interface{}) error {
    err := b.validate.Struct(v)
    if err == nil {
        return nil
    }
    var ves validator.ValidationErrors
    if errors.As(err, &ves) && len(ves) > 0 {
        fe := ves[0]
        if fe.Tag() == "required" {
            return api.Validation(fmt.Sprintf("%s is required", fe.Field()))
        }
        return api.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
    }
    return api.Validation(err.Error())
}

func newValidator() *validator.Validate {
    v := validator.New()
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" || name == "" {
            return f.Name
        }
        return name
    })
    return v
}

// notFound maps repository.ErrNotFound to an api not-found error with
// msg and passes other errors through.
func notFound(err error, msg string) error {
    if errors.Is(err, repository.ErrNotFound) {
        return api.NotFound(msg)
    }
    return err
}

// SeedInstructor creates an account unless the email is taken, in which
// case the existing account is returned.
func (b *Backend) SeedInstructor(ctx context.Context, email, name, password, role string) (model.Instructor, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    in, err := b.instructors.Create(ctx, email, name, password, role, b.cost)
    if errors.Is(err, repository.ErrEmailExists) {
        in, err = b.instructors.GetByEmail(ctx, email)
    }
    if err != nil {
        return model.Instructor{}, err
    }
    return in.Public(), nil
}

// VerifyCredentials checks an email/password pair without touching the
// login session.
func (b *Backend) VerifyCredentials(ctx context.Context, email, password string) (model.Instructor, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    return b.verify(ctx, email, password)
}

func (b *Backend) verify(ctx context.Context, email, password string) (model.Instructor, error) {
    email, err := api.CheckCredentials(email, password)
    if err != nil {
        return model.Instructor{}, err
    }
    in, err := b.instructors.GetByEmail(ctx, email)
    if errors.Is(err, repository.ErrNotFound) {
        return model.Instructor{}, api.Unauthenticated("invalid credentials")
    }
    if err != nil {
        return model.Instructor{}, err
    }
    if !utils.VerifyPassword(in.PasswordHash, password) {
        return model.Instructor{}, api.Unauthenticated("invalid credentials")
    }
    return in.Public(), nil
}

// Instructor returns the public account data of id.
func (b *Backend) Instructor(ctx context.Context, id uint64) (model.Instructor, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    in, err := b.instructors.GetByID(ctx, id)
    if err != nil {
        return model.Instructor{}, notFound(err, "instructor not found")
    }
    return in.Public(), nil
}
