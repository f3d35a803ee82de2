// Package seed fabricates the demo school dataset used in place of a backend.
package seed

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

type Options struct {
	Store  core.Store
	Logger core.Logger
	Rand   *rand.Rand       // defaults to a time-seeded source
	Now    func() time.Time // defaults to time.Now
	Domain string           // email domain; defaults to "doonites.edu.in"
}

// Seeder writes the demo dataset into the store. A Seeder is not safe for concurrent use.
type Seeder struct {
	dir    *school.Directory
	logger core.Logger
	rand   *rand.Rand
	now    func() time.Time
	domain string
}

func New(opts Options) *Seeder {
	s := &Seeder{
		dir:    school.NewDirectory(opts.Store),
		logger: opts.Logger,
		rand:   opts.Rand,
		now:    opts.Now,
		domain: core.CleanString(opts.Domain, true /* lower */),
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.domain == "" {
		s.domain = "doonites.edu.in"
	}
	return s
}

func (s *Seeder) logInfo(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Seeder) email(local string) string {
	return strings.ToLower(local) + "@" + s.domain
}

// SeedClasses persists the fixed class & section list.
func (s *Seeder) SeedClasses(ctx context.Context) ([]school.Class, error) {
	classes := make([]school.Class, 0, len(classFixtures))
	for _, f := range classFixtures {
		classes = append(classes, school.Class{
			ID:         s.newID(),
			Name:       f.name,
			Sections:   append([]string(nil), f.sections...),
			MonthlyFee: f.monthlyFee,
		})
	}
	if err := s.dir.SaveClasses(ctx, classes); err != nil {
		return nil, err
	}
	s.logInfo("seeded classes: " + strconv.Itoa(len(classes)))
	return classes, nil
}

// SeedTeachers persists one teacher per name, subjects assigned round-robin.
func (s *Seeder) SeedTeachers(ctx context.Context) ([]school.Teacher, error) {
	teachers := make([]school.Teacher, 0, len(teacherNames))
	for i, name := range teacherNames {
		usr := school.User{ID: s.newID(), Name: name, Role: school.RoleTeacher}
		usr.Email = s.email(usr.FirstName())
		teachers = append(teachers, school.Teacher{
			User:    usr,
			Subject: subjects[i%len(subjects)],
		})
	}
	if err := s.dir.SaveTeachers(ctx, teachers); err != nil {
		return nil, err
	}
	s.logInfo("seeded teachers: " + strconv.Itoa(len(teachers)))
	return teachers, nil
}

// SeedStudents persists 6 students per section of every class.
// A nil classes reads the classes from the store (none stored: no students).
//
// Names are picked from the pools with a single index running across every class & section,
// so the name sequence only depends on the classes' shape.
func (s *Seeder) SeedStudents(ctx context.Context, classes []school.Class) ([]school.Student, error) {
	if classes == nil {
		var err error
		if classes, err = s.dir.Classes(ctx); err != nil {
			return nil, err
		}
	}

	students := make([]school.Student, 0)
	var idx int
	for _, class := range classes {
		for _, section := range class.Sections {
			for i := 0; i < studentsPerSection; i++ {
				first := firstNames[idx%len(firstNames)]
				last := lastNames[(idx+i)%len(lastNames)]
				students = append(students, school.Student{
					User: school.User{
						ID:    s.newID(),
						Name:  first + " " + last,
						Email: s.email(first + "." + last + strconv.Itoa(idx+1)),
						Role:  school.RoleStudent,
					},
					Klass:   class.ID,
					Section: section,
				})
				idx++
			}
		}
	}
	if err := s.dir.SaveStudents(ctx, students); err != nil {
		return nil, err
	}
	s.logInfo("seeded students: " + strconv.Itoa(len(students)))
	return students, nil
}

// SeedParents persists one parent for each of the first 20 given students.
func (s *Seeder) SeedParents(ctx context.Context, students []school.Student) ([]school.Parent, error) {
	n := len(students)
	if n > parentsLimit {
		n = parentsLimit
	}
	parents := make([]school.Parent, 0, n)
	for _, student := range students[:n] {
		parents = append(parents, school.Parent{
			User: school.User{
				ID:    s.newID(),
				Name:  "Parent of " + student.FirstName(),
				Email: "parent." + student.Email,
				Role:  school.RoleParent,
			},
			Children: []string{student.ID},
		})
	}
	if err := s.dir.SaveParents(ctx, parents); err != nil {
		return nil, err
	}
	s.logInfo("seeded parents: " + strconv.Itoa(len(parents)))
	return parents, nil
}

// SeedStaff persists the admins (super admin first) and the librarian.
// It returns admins followed by librarians.
func (s *Seeder) SeedStaff(ctx context.Context) ([]school.Staff, error) {
	admins := make([]school.Staff, 0, 2)
	librarians := make([]school.Staff, 0, 1)
	for _, f := range staffFixtures {
		member := school.Staff{User: school.User{
			ID:    s.newID(),
			Name:  f.name,
			Email: s.email(f.email),
			Role:  f.role,
		}}
		if f.role == school.RoleLibrarian {
			librarians = append(librarians, member)
		} else {
			admins = append(admins, member)
		}
	}
	if err := s.dir.SaveAdmins(ctx, admins); err != nil {
		return nil, err
	}
	if err := s.dir.SaveLibrarians(ctx, librarians); err != nil {
		return nil, err
	}
	s.logInfo("seeded staff: " + strconv.Itoa(len(admins)+len(librarians)))
	return append(admins, librarians...), nil
}

// SeedMessages persists one conversation between the first teacher and each of the first 5 students,
// both read back from the store. Nothing is written when either is missing.
func (s *Seeder) SeedMessages(ctx context.Context) ([]school.Conversation, error) {
	teachers, err := s.dir.Teachers(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.dir.Students(ctx)
	if err != nil {
		return nil, err
	}
	if len(teachers) == 0 || len(students) == 0 {
		return []school.Conversation{}, nil
	}

	teacher := teachers[0]
	if len(students) > conversationsLimit {
		students = students[:conversationsLimit]
	}
	now := s.now()

	convs := make([]school.Conversation, 0, len(students))
	for _, student := range students {
		participants := []string{teacher.ID, student.ID}
		count := minMessages + s.rand.Intn(extraMessages)
		msgs := make([]school.Message, 0, count)
		for j := 0; j < count; j++ {
			window := time.Duration(count-j) * messageWindowPerMessage * time.Hour
			msgs = append(msgs, school.Message{
				ID:        s.newID(),
				Content:   messageTemplates[s.rand.Intn(len(messageTemplates))],
				SenderID:  participants[s.rand.Intn(len(participants))],
				CreatedAt: now.Add(-time.Duration(s.rand.Int63n(int64(window)))).UTC(),
				Read:      s.rand.Float64() < readRatio,
			})
		}
		sort.SliceStable(msgs, func(a, b int) bool { return msgs[a].CreatedAt.Before(msgs[b].CreatedAt) })
		last := msgs[len(msgs)-1]
		convs = append(convs, school.Conversation{
			ID:           s.newID(),
			Participants: participants,
			Messages:     msgs,
			LastMessage:  last,
			UpdatedAt:    last.CreatedAt,
		})
	}
	if err := s.dir.SaveConversations(ctx, convs); err != nil {
		return nil, err
	}
	s.logInfo("seeded conversations: " + strconv.Itoa(len(convs)))
	return convs, nil
}

// SeedAll regenerates every namespace, overwriting whatever was stored.
func (s *Seeder) SeedAll(ctx context.Context) error {
	classes, err := s.SeedClasses(ctx)
	if err != nil {
		return errors.Wrap(err, "seeding classes")
	}
	if _, err = s.SeedTeachers(ctx); err != nil {
		return errors.Wrap(err, "seeding teachers")
	}
	students, err := s.SeedStudents(ctx, classes)
	if err != nil {
		return errors.Wrap(err, "seeding students")
	}
	if _, err = s.SeedParents(ctx, students); err != nil {
		return errors.Wrap(err, "seeding parents")
	}
	if _, err = s.SeedStaff(ctx); err != nil {
		return errors.Wrap(err, "seeding staff")
	}
	if _, err = s.SeedMessages(ctx); err != nil {
		return errors.Wrap(err, "seeding messages")
	}
	return nil
}

// SeedNotifications persists a couple of unread notifications for the admins,
// the first teacher and the first 5 students.
func (s *Seeder) SeedNotifications(ctx context.Context) ([]school.Notification, error) {
	recipients := make([]school.User, 0)
	admins, err := s.dir.Admins(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		recipients = append(recipients, a.User)
	}
	teachers, err := s.dir.Teachers(ctx)
	if err != nil {
		return nil, err
	}
	if len(teachers) > 0 {
		recipients = append(recipients, teachers[0].User)
	}
	students, err := s.dir.Students(ctx)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(students) && i < notifiedStudentsLimit; i++ {
		recipients = append(recipients, students[i].User)
	}

	now := s.now()
	notifs := make([]school.Notification, 0, len(recipients)*notificationsPerUser)
	for _, usr := range recipients {
		for j := 0; j < notificationsPerUser; j++ {
			tmpl := notificationTemplates[s.rand.Intn(len(notificationTemplates))]
			notifs = append(notifs, school.Notification{
				ID:          s.newID(),
				RecipientID: usr.ID,
				Title:       tmpl.title,
				Body:        tmpl.body,
				CreatedAt:   now.Add(-time.Duration(s.rand.Int63n(int64(72 * time.Hour)))).UTC(),
			})
		}
	}
	if err := s.dir.SaveNotifications(ctx, notifs); err != nil {
		return nil, err
	}
	s.logInfo("seeded notifications: " + strconv.Itoa(len(notifs)))
	return notifs, nil
}

// SeedIfEmpty seeds the whole dataset (notifications included) unless users already exist.
// It reports whether seeding happened.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	hasUsers, err := s.dir.HasUsers(ctx)
	if err != nil {
		return false, errors.Wrap(err, "checking existing users")
	}
	if hasUsers {
		s.logInfo("users found, skipping seed")
		return false, nil
	}
	if err := s.SeedAll(ctx); err != nil {
		return false, err
	}
	if _, err := s.SeedNotifications(ctx); err != nil {
		return false, errors.Wrap(err, "seeding notifications")
	}
	return true, nil
}
