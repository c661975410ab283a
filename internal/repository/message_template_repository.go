package repository

import (
    "context"

    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/storage"
)

// MessageTemplateRepo manages reminder message templates.
type MessageTemplateRepo struct {
    rows collection[model.MessageTemplate]
}

func NewMessageTemplateRepo(store storage.Store) *MessageTemplateRepo {
    return &MessageTemplateRepo{rows: newCollection(store, "message_templates", func(t *model.MessageTemplate) *uint64 { return &t.ID })}
}

func (r *MessageTemplateRepo) Create(ctx context.Context, t *model.MessageTemplate) error {
    return r.rows.insert(ctx, t)
}

func (r *MessageTemplateRepo) GetByID(ctx context.Context, id uint64) (model.MessageTemplate, error) {
    return r.rows.get(ctx, id)
}

// GetByType returns the instructor's template of the given type.
func (r *MessageTemplateRepo) GetByType(ctx context.Context, instructorID uint64, typ model.MessageType) (model.MessageTemplate, error) {
    return r.rows.first(ctx, func(t model.MessageTemplate) bool {
        return t.InstructorID == instructorID && t.Type == typ
    })
}

func (r *MessageTemplateRepo) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.MessageTemplate, error) {
    return r.rows.filter(ctx, func(t model.MessageTemplate) bool { return t.InstructorID == instructorID })
}

func (r *MessageTemplateRepo) Update(ctx context.Context, t model.MessageTemplate) error {
    return r.rows.replace(ctx, t)
}

func (r *MessageTemplateRepo) Delete(ctx context.Context, id uint64) error {
    return r.rows.remove(ctx, id)
}
