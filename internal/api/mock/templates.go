package mock

import (
    "context"
    "errors"
    "fmt"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/repository"
)

type templateAPI struct{ b *Backend }

// typeTaken reports a conflict when another template of the instructor
// already uses typ.
func (a templateAPI) typeTaken(ctx context.Context, instructorID uint64, typ model.MessageType, self uint64) error {
    t, err := a.b.templates.GetByType(ctx, instructorID, typ)
    if errors.Is(err, repository.ErrNotFound) {
        return nil
    }
    if err != nil {
        return err
    }
    if t.ID != self {
        return api.Conflict(fmt.Sprintf("template already exists for type %s", typ))
    }
    return nil
}

func (a templateAPI) owned(ctx context.Context, who model.Instructor, id uint64) (model.MessageTemplate, error) {
    t, err := a.b.templates.GetByID(ctx, id)
    if err != nil {
        return model.MessageTemplate{}, notFound(err, "template not found")
    }
    return t, allow(who, t.InstructorID)
}

// Create adds a template.  A zero InstructorID means the caller.
func (a templateAPI) Create(ctx context.Context, in model.MessageTemplateInput) (model.MessageTemplate, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.MessageTemplate{}, err
    }
    defer unlock()
    if in.InstructorID, err = scope(who, in.InstructorID); err != nil {
        return model.MessageTemplate{}, err
    }
    if err := a.b.check(in); err != nil {
        return model.MessageTemplate{}, err
    }
    if err := a.typeTaken(ctx, in.InstructorID, in.Type, 0); err != nil {
        return model.MessageTemplate{}, err
    }
    t := model.MessageTemplate{
        InstructorID: in.InstructorID,
        Type:         in.Type,
        Title:        in.Title,
        Body:         in.Body,
        UpdatedAt:    a.b.clock(),
    }
    if err := a.b.templates.Create(ctx, &t); err != nil {
        return model.MessageTemplate{}, err
    }
    return t, nil
}

func (a templateAPI) Get(ctx context.Context, id uint64) (model.MessageTemplate, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.MessageTemplate{}, err
    }
    defer unlock()
    return a.owned(ctx, who, id)
}

func (a templateAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.MessageTemplate, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if instructorID, err = scope(who, instructorID); err != nil {
        return nil, err
    }
    return a.b.templates.ListByInstructor(ctx, instructorID)
}

func (a templateAPI) Update(ctx context.Context, id uint64, in model.MessageTemplateInput) (model.MessageTemplate, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.MessageTemplate{}, err
    }
    defer unlock()
    t, err := a.owned(ctx, who, id)
    if err != nil {
        return model.MessageTemplate{}, err
    }
    in.InstructorID = t.InstructorID
    if err := a.b.check(in); err != nil {
        return model.MessageTemplate{}, err
    }
    if err := a.typeTaken(ctx, t.InstructorID, in.Type, t.ID); err != nil {
        return model.MessageTemplate{}, err
    }
    t.Type = in.Type
    t.Title = in.Title
    t.Body = in.Body
    t.UpdatedAt = a.b.clock()
    if err := a.b.templates.Update(ctx, t); err != nil {
        return model.MessageTemplate{}, err
    }
    return t, nil
}

func (a templateAPI) Delete(ctx context.Context, id uint64) error {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    if _, err := a.owned(ctx, who, id); err != nil {
        return err
    }
    return notFound(a.b.templates.Delete(ctx, id), "template not found")
}
