package mock

import (
    "context"
    "strings"

    "github.com/iliyamo/oneday-class/internal/api"
    "github.com/iliyamo/oneday-class/internal/model"
    "github.com/iliyamo/oneday-class/internal/utils"
)

type memberAPI struct{ b *Backend }

func (a memberAPI) normalize(in *model.MemberInput) error {
    in.Name = strings.TrimSpace(in.Name)
    if err := a.b.check(*in); err != nil {
        return err
    }
    phone, err := utils.NormalizePhone(in.PhoneNumber)
    if err != nil {
        return api.Validation(err.Error())
    }
    in.PhoneNumber = phone
    return nil
}

// owned loads member id and checks the caller may manage it.
func (a memberAPI) owned(ctx context.Context, who model.Instructor, id uint64) (model.Member, error) {
    m, err := a.b.members.GetByID(ctx, id)
    if err != nil {
        return model.Member{}, notFound(err, "member not found")
    }
    return m, allow(who, m.InstructorID)
}

// Create adds a roster entry.  A zero InstructorID means the caller.
func (a memberAPI) Create(ctx context.Context, in model.MemberInput) (model.Member, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Member{}, err
    }
    defer unlock()
    if in.InstructorID, err = scope(who, in.InstructorID); err != nil {
        return model.Member{}, err
    }
    if err := a.normalize(&in); err != nil {
        return model.Member{}, err
    }
    if _, err := a.b.instructors.GetByID(ctx, in.InstructorID); err != nil {
        return model.Member{}, notFound(err, "instructor not found")
    }
    m := model.Member{
        InstructorID: in.InstructorID,
        Name:         in.Name,
        PhoneNumber:  in.PhoneNumber,
        Memo:         in.Memo,
        CreatedAt:    a.b.clock(),
    }
    if err := a.b.members.Create(ctx, &m); err != nil {
        return model.Member{}, err
    }
    return m, nil
}

func (a memberAPI) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Member, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return nil, err
    }
    defer unlock()
    if instructorID, err = scope(who, instructorID); err != nil {
        return nil, err
    }
    return a.b.members.ListByInstructor(ctx, instructorID)
}

// Update replaces name, phone and memo.  The owner never changes.
func (a memberAPI) Update(ctx context.Context, id uint64, in model.MemberInput) (model.Member, error) {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return model.Member{}, err
    }
    defer unlock()
    m, err := a.owned(ctx, who, id)
    if err != nil {
        return model.Member{}, err
    }
    in.InstructorID = m.InstructorID
    if err := a.normalize(&in); err != nil {
        return model.Member{}, err
    }
    m.Name = in.Name
    m.PhoneNumber = in.PhoneNumber
    m.Memo = in.Memo
    if err := a.b.members.Update(ctx, m); err != nil {
        return model.Member{}, err
    }
    return m, nil
}

func (a memberAPI) Delete(ctx context.Context, id uint64) error {
    who, unlock, err := a.b.enter(ctx)
    if err != nil {
        return err
    }
    defer unlock()
    if _, err := a.owned(ctx, who, id); err != nil {
        return err
    }
    return notFound(a.b.members.Delete(ctx, id), "member not found")
}
