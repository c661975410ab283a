package repository

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// MemberRepo manages an instructor's student roster.
type MemberRepo struct {
    rows collection[model.Member]
}

func NewMemberRepo(store storage.Store) *MemberRepo {
    return &MemberRepo{rows: newCollection(store, "members", func(m *model.Member) *uint64 { return &m.ID })}
}

func (r *MemberRepo) Create(ctx context.Context, m *model.Member) error {
    return r.rows.insert(ctx, m)
}

func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (model.Member, error) {
    return r.rows.get(ctx, id)
}

func (r *MemberRepo) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Member, error) {
    return r.rows.filter(ctx, func(m model.Member) bool { return m.InstructorID == instructorID })
}

func (r *MemberRepo) Update(ctx context.Context, m model.Member) error {
    return r.rows.replace(ctx, m)
}

func (r *MemberRepo) Delete(ctx context.Context, id uint64) error {
    return r.rows.remove(ctx, id)
}
