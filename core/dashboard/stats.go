package dashboard

import (
	"context"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

type Money struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// Stats feed the home screen cards.
type Stats struct {
	Classes        int   `json:"classes"`
	Sections       int   `json:"sections"`
	Students       int   `json:"students"`
	Teachers       int   `json:"teachers"`
	Parents        int   `json:"parents"`
	Staff          int   `json:"staff"`
	Conversations  int   `json:"conversations"`
	UnreadMessages int   `json:"unreadMessages"` // received by the current user
	MonthlyFees    Money `json:"monthlyFees"`    // expected from every enrolled student
}

type Department struct {
	Name     string   `json:"name"`
	Teachers []string `json:"teachers"` // Teacher.ID
}

type Service struct {
	dir   *school.Directory
	money *core.MoneyFormatter
}

func NewService(store core.Store, money *core.MoneyFormatter) *Service {
	return &Service{dir: school.NewDirectory(store), money: money}
}

// Stats computes the home screen statistics for usr.
func (svc *Service) Stats(ctx context.Context, usr school.User) (Stats, error) {
	var st Stats

	classes, err := svc.dir.Classes(ctx)
	if err != nil {
		return st, err
	}
	feeByClass := make(map[string]int64, len(classes))
	for _, c := range classes {
		st.Classes++
		st.Sections += len(c.Sections)
		feeByClass[c.ID] = c.MonthlyFee
	}

	students, err := svc.dir.Students(ctx)
	if err != nil {
		return st, err
	}
	st.Students = len(students)
	var fees int64
	for _, s := range students {
		fees += feeByClass[s.Klass]
	}
	st.MonthlyFees = Money{Amount: fees, Currency: svc.money.Code(), Formatted: svc.money.Format(fees)}

	teachers, err := svc.dir.Teachers(ctx)
	if err != nil {
		return st, err
	}
	st.Teachers = len(teachers)

	parents, err := svc.dir.Parents(ctx)
	if err != nil {
		return st, err
	}
	st.Parents = len(parents)

	staff, err := svc.dir.Users(ctx, school.StaffRoles...)
	if err != nil {
		return st, err
	}
	st.Staff = len(staff)

	convs, err := svc.dir.Conversations(ctx)
	if err != nil {
		return st, err
	}
	for _, c := range convs {
		if usr.IsAdmin() || c.HasParticipant(usr.ID) {
			st.Conversations++
		}
		if c.HasParticipant(usr.ID) {
			st.UnreadMessages += c.UnreadFor(usr.ID)
		}
	}
	return st, nil
}

// Departments groups teachers by subject. Teachers only see their own department.
func (svc *Service) Departments(ctx context.Context, usr school.User) ([]Department, error) {
	teachers, err := svc.dir.Teachers(ctx)
	if err != nil {
		return nil, err
	}

	var ownSubject string
	if usr.Role == school.RoleTeacher {
		for _, t := range teachers {
			if t.ID == usr.ID {
				ownSubject = t.Subject
				break
			}
		}
	}

	depts := make([]Department, 0)
	index := make(map[string]int)
	for _, t := range teachers {
		if ownSubject != "" && t.Subject != ownSubject {
			continue
		}
		i, ok := index[t.Subject]
		if !ok {
			i = len(depts)
			index[t.Subject] = i
			depts = append(depts, Department{Name: t.Subject, Teachers: make([]string, 0)})
		}
		depts[i].Teachers = append(depts[i].Teachers, t.ID)
	}
	return depts, nil
}

// Conversations returns the conversations usr takes part in; admins see every conversation.
func (svc *Service) Conversations(ctx context.Context, usr school.User) ([]school.Conversation, error) {
	convs, err := svc.dir.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	if usr.IsAdmin() {
		return convs, nil
	}
	mine := make([]school.Conversation, 0)
	for _, c := range convs {
		if c.HasParticipant(usr.ID) {
			mine = append(mine, c)
		}
	}
	return mine, nil
}
