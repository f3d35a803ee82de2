package dashboard

import (
	"context"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

type UserFilter struct {
	Role    string `query:"role" json:"role" validate:"omitempty,oneof=SUPER_ADMIN ADMIN LIBRARIAN TEACHER STUDENT PARENT"`
	Klass   string `query:"klass" json:"klass" validate:"required_with=Section"`
	Section string `query:"section" json:"section"`
}

func (f *UserFilter) Validate() error {
	f.Role = core.CleanString(f.Role)
	f.Klass = core.CleanString(f.Klass)
	f.Section = core.CleanString(f.Section)
	return core.Validate.Struct(f)
}

// UserSummary is a user listing row; Subject, Klass & Section are only set for the matching roles.
type UserSummary struct {
	school.User
	Subject string `json:"subject,omitempty"`
	Klass   string `json:"klass,omitempty"`
	Section string `json:"section,omitempty"`
}

// Users lists the users matching filter. Filtering by class (and section) only returns students.
func (svc *Service) Users(ctx context.Context, filter UserFilter) ([]UserSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	roles := make([]string, 0, 1)
	if filter.Role != "" {
		roles = append(roles, filter.Role)
	}
	if filter.Klass != "" {
		if filter.Role != "" && filter.Role != school.RoleStudent {
			return []UserSummary{}, nil
		}
		roles = []string{school.RoleStudent}
	}

	users, err := svc.dir.Users(ctx, roles...)
	if err != nil {
		return nil, err
	}
	teachers, err := svc.dir.Teachers(ctx)
	if err != nil {
		return nil, err
	}
	students, err := svc.dir.Students(ctx)
	if err != nil {
		return nil, err
	}
	subjects := make(map[string]string, len(teachers))
	for _, t := range teachers {
		subjects[t.ID] = t.Subject
	}
	enrolment := make(map[string]school.Student, len(students))
	for _, s := range students {
		enrolment[s.ID] = s
	}

	rows := make([]UserSummary, 0, len(users))
	for _, u := range users {
		row := UserSummary{User: u, Subject: subjects[u.ID]}
		if s, ok := enrolment[u.ID]; ok {
			row.Klass, row.Section = s.Klass, s.Section
		}
		if filter.Klass != "" && row.Klass != filter.Klass {
			continue
		}
		if filter.Section != "" && row.Section != filter.Section {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
