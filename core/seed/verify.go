package seed

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

var errInvalidDataset = errors.New("invalid dataset")

type verifier struct {
	problems []core.FieldError
}

func (v *verifier) report(key, format string, args ...interface{}) {
	v.problems = append(v.problems, core.FieldError{Field: key, Error: fmt.Sprintf(format, args...)})
}

func (v *verifier) validate(key string, idx int, record interface{}) {
	if err := core.Validate.Struct(record); err != nil {
		v.report(key, "[%d] %v", idx, core.TranslateValidationErrors(err))
	}
}

// Verify reads every namespace back from the store and checks the dataset's structure & cross references.
// Problems are returned as a *core.ValidationError, one core.FieldError per problem (Field is the namespace).
func Verify(ctx context.Context, store core.Store) error {
	dir := school.NewDirectory(store)
	v := new(verifier)

	classes, err := dir.Classes(ctx)
	if err != nil {
		return err
	}
	classByID := make(map[string]school.Class, len(classes))
	for i, c := range classes {
		v.validate(school.ClassesKey, i, c)
		if _, dup := classByID[c.ID]; dup {
			v.report(school.ClassesKey, "duplicate id %q", c.ID)
		}
		classByID[c.ID] = c
	}

	teachers, err := dir.Teachers(ctx)
	if err != nil {
		return err
	}
	for i, t := range teachers {
		v.validate(school.TeachersKey, i, t)
		if t.Role != school.RoleTeacher {
			v.report(school.TeachersKey, "[%d] unexpected role %q", i, t.Role)
		}
	}

	students, err := dir.Students(ctx)
	if err != nil {
		return err
	}
	studentIDs := make(map[string]bool, len(students))
	perSection := make(map[[2]string]int)
	for i, s := range students {
		v.validate(school.StudentsKey, i, s)
		studentIDs[s.ID] = true
		class, ok := classByID[s.Klass]
		if !ok {
			v.report(school.StudentsKey, "[%d] unknown class %q", i, s.Klass)
			continue
		}
		if !class.HasSection(s.Section) {
			v.report(school.StudentsKey, "[%d] unknown section %q in %s", i, s.Section, class.Name)
			continue
		}
		perSection[[2]string{s.Klass, s.Section}]++
	}
	if len(students) > 0 {
		for _, c := range classes {
			for _, section := range c.Sections {
				if n := perSection[[2]string{c.ID, section}]; n != studentsPerSection {
					v.report(school.StudentsKey, "%s %s has %d students, want %d", c.Name, section, n, studentsPerSection)
				}
			}
		}
	}

	parents, err := dir.Parents(ctx)
	if err != nil {
		return err
	}
	children := make(map[string]bool, len(parents))
	for i, p := range parents {
		v.validate(school.ParentsKey, i, p)
		for _, child := range p.Children {
			if !studentIDs[child] {
				v.report(school.ParentsKey, "[%d] unknown child %q", i, child)
			}
			if children[child] {
				v.report(school.ParentsKey, "[%d] child %q shared with another parent", i, child)
			}
			children[child] = true
		}
	}

	admins, err := dir.Admins(ctx)
	if err != nil {
		return err
	}
	for i, a := range admins {
		v.validate(school.AdminsKey, i, a)
		if !a.IsAdmin() {
			v.report(school.AdminsKey, "[%d] unexpected role %q", i, a.Role)
		}
	}
	librarians, err := dir.Librarians(ctx)
	if err != nil {
		return err
	}
	for i, l := range librarians {
		v.validate(school.LibrariansKey, i, l)
		if l.Role != school.RoleLibrarian {
			v.report(school.LibrariansKey, "[%d] unexpected role %q", i, l.Role)
		}
	}

	convs, err := dir.Conversations(ctx)
	if err != nil {
		return err
	}
	for i, c := range convs {
		v.validate(school.ConversationsKey, i, c)
		verifyConversation(v, i, c)
	}

	if len(v.problems) > 0 {
		return core.NewValidationError(errInvalidDataset, v.problems...)
	}
	return nil
}

func verifyConversation(v *verifier, idx int, c school.Conversation) {
	if len(c.Messages) == 0 {
		return
	}
	for j, m := range c.Messages {
		if !c.HasParticipant(m.SenderID) {
			v.report(school.ConversationsKey, "[%d] message %d sent by a non participant", idx, j)
		}
		if j > 0 && m.CreatedAt.Before(c.Messages[j-1].CreatedAt) {
			v.report(school.ConversationsKey, "[%d] messages not sorted at %d", idx, j)
		}
	}
	last := c.Messages[len(c.Messages)-1]
	if c.LastMessage.ID != last.ID {
		v.report(school.ConversationsKey, "[%d] lastMessage is not the latest message", idx)
	}
	if !c.UpdatedAt.Equal(last.CreatedAt) {
		v.report(school.ConversationsKey, "[%d] updatedAt differs from the latest message", idx)
	}
}
