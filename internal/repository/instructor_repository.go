package repository

import (
    "context"
    "strings"
    "time"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
    "github.com/iliyamo/oneday-class/internal/utils"
)

// InstructorRepo persists instructor accounts.
type InstructorRepo struct {
    rows collection[model.Instructor]
}

func NewInstructorRepo(store storage.Store) *InstructorRepo {
    return &InstructorRepo{rows: newCollection(store, "instructors", func(i *model.Instructor) *uint64 { return &i.ID })}
}

// Create hashes password and inserts the instructor.  Emails are stored
// lower-cased and must be unique.
func (r *InstructorRepo) Create(ctx context.Context, email, name, password, role string, cost int) (model.Instructor, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    if _, err := r.GetByEmail(ctx, email); err == nil {
        return model.Instructor{}, ErrEmailExists
    } else if err != ErrNotFound {
        return model.Instructor{}, err
    }
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return model.Instructor{}, err
    }
    in := model.Instructor{
        Email:        email,
        Name:         name,
        Role:         role,
        PasswordHash: hash,
        CreatedAt:    time.Now().UTC(),
    }
    if err := r.rows.insert(ctx, &in); err != nil {
        return model.Instructor{}, err
    }
    return in, nil
}

// GetByEmail fetches an instructor by normalized email.
func (r *InstructorRepo) GetByEmail(ctx context.Context, email string) (model.Instructor, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.rows.first(ctx, func(i model.Instructor) bool { return i.Email == email })
}

// GetByID fetches an instructor by id.
func (r *InstructorRepo) GetByID(ctx context.Context, id uint64) (model.Instructor, error) {
    return r.rows.get(ctx, id)
}

// List returns every instructor account.
func (r *InstructorRepo) List(ctx context.Context) ([]model.Instructor, error) {
    return r.rows.all(ctx)
}
