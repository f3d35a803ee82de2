package school

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
)

// ErrUserNotFound is returned when no user in any namespace has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// Directory reads and writes the school collections held in a core.Store.
// Every save replaces the whole namespace.
type Directory struct {
	store core.Store
}

func NewDirectory(store core.Store) *Directory {
	return &Directory{store: store}
}

func (d *Directory) Store() core.Store { return d.store }

// load decodes the JSON array under key into dst. A missing key leaves dst empty.
func (d *Directory) load(ctx context.Context, key string, dst interface{}) error {
	data, err := d.store.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return nil
		}
		return errors.Wrapf(err, "reading %s", key)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrapf(err, "decoding %s", key)
	}
	return nil
}

func (d *Directory) save(ctx context.Context, key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return core.NewStorageWriteError(key, errors.Wrap(err, "encoding"))
	}
	if err := d.store.Put(ctx, key, data); err != nil {
		return core.NewStorageWriteError(key, err)
	}
	return nil
}

func (d *Directory) Classes(ctx context.Context) ([]Class, error) {
	classes := make([]Class, 0)
	return classes, d.load(ctx, ClassesKey, &classes)
}

func (d *Directory) SaveClasses(ctx context.Context, classes []Class) error {
	return d.save(ctx, ClassesKey, classes)
}

func (d *Directory) Teachers(ctx context.Context) ([]Teacher, error) {
	teachers := make([]Teacher, 0)
	return teachers, d.load(ctx, TeachersKey, &teachers)
}

func (d *Directory) SaveTeachers(ctx context.Context, teachers []Teacher) error {
	return d.save(ctx, TeachersKey, teachers)
}

func (d *Directory) Students(ctx context.Context) ([]Student, error) {
	students := make([]Student, 0)
	return students, d.load(ctx, StudentsKey, &students)
}

func (d *Directory) SaveStudents(ctx context.Context, students []Student) error {
	return d.save(ctx, StudentsKey, students)
}

func (d *Directory) Parents(ctx context.Context) ([]Parent, error) {
	parents := make([]Parent, 0)
	return parents, d.load(ctx, ParentsKey, &parents)
}

func (d *Directory) SaveParents(ctx context.Context, parents []Parent) error {
	return d.save(ctx, ParentsKey, parents)
}

func (d *Directory) Admins(ctx context.Context) ([]Staff, error) {
	admins := make([]Staff, 0)
	return admins, d.load(ctx, AdminsKey, &admins)
}

func (d *Directory) SaveAdmins(ctx context.Context, admins []Staff) error {
	return d.save(ctx, AdminsKey, admins)
}

func (d *Directory) Librarians(ctx context.Context) ([]Staff, error) {
	librarians := make([]Staff, 0)
	return librarians, d.load(ctx, LibrariansKey, &librarians)
}

func (d *Directory) SaveLibrarians(ctx context.Context, librarians []Staff) error {
	return d.save(ctx, LibrariansKey, librarians)
}

func (d *Directory) Conversations(ctx context.Context) ([]Conversation, error) {
	convs := make([]Conversation, 0)
	return convs, d.load(ctx, ConversationsKey, &convs)
}

func (d *Directory) SaveConversations(ctx context.Context, convs []Conversation) error {
	return d.save(ctx, ConversationsKey, convs)
}

func (d *Directory) Notifications(ctx context.Context) ([]Notification, error) {
	notifs := make([]Notification, 0)
	return notifs, d.load(ctx, NotificationsKey, &notifs)
}

func (d *Directory) SaveNotifications(ctx context.Context, notifs []Notification) error {
	return d.save(ctx, NotificationsKey, notifs)
}

// Users returns the users of every namespace, optionally restricted to the given roles.
func (d *Directory) Users(ctx context.Context, roles ...string) ([]User, error) {
	want := make(map[string]bool, len(roles))
	for _, r := range roles {
		want[r] = true
	}
	keep := func(u User) bool { return len(want) == 0 || want[u.Role] }

	users := make([]User, 0)
	if len(want) == 0 || want[RoleSuperAdmin] || want[RoleAdmin] {
		admins, err := d.Admins(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range admins {
			if keep(a.User) {
				users = append(users, a.User)
			}
		}
	}
	if keep(User{Role: RoleLibrarian}) {
		librarians, err := d.Librarians(ctx)
		if err != nil {
			return nil, err
		}
		for _, l := range librarians {
			users = append(users, l.User)
		}
	}
	if keep(User{Role: RoleTeacher}) {
		teachers, err := d.Teachers(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range teachers {
			users = append(users, t.User)
		}
	}
	if keep(User{Role: RoleStudent}) {
		students, err := d.Students(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range students {
			users = append(users, s.User)
		}
	}
	if keep(User{Role: RoleParent}) {
		parents, err := d.Parents(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range parents {
			users = append(users, p.User)
		}
	}
	return users, nil
}

// FindUser looks up a user by ID across every user namespace.
func (d *Directory) FindUser(ctx context.Context, id string) (User, error) {
	id = core.CleanString(id)
	if id == "" {
		return User{}, ErrUserNotFound
	}
	users, err := d.Users(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// HasUsers reports whether any user namespace holds at least one user.
func (d *Directory) HasUsers(ctx context.Context) (bool, error) {
	for _, key := range UserKeys {
		var users []json.RawMessage
		if err := d.load(ctx, key, &users); err != nil {
			return false, err
		}
		if len(users) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Reset removes every namespace.
func (d *Directory) Reset(ctx context.Context) error {
	for _, key := range AllKeys {
		if err := d.store.Remove(ctx, key); err != nil {
			return core.NewStorageWriteError(key, err)
		}
	}
	return nil
}
