package school

import (
	"strings"
	"time"
)

// Roles
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleLibrarian  = "LIBRARIAN"
	RoleTeacher    = "TEACHER"
	RoleStudent    = "STUDENT"
	RoleParent     = "PARENT"
)

var (
	AdminRoles = []string{RoleSuperAdmin, RoleAdmin}
	StaffRoles = []string{RoleSuperAdmin, RoleAdmin, RoleLibrarian}
	AllRoles   = []string{RoleSuperAdmin, RoleAdmin, RoleLibrarian, RoleTeacher, RoleStudent, RoleParent}
)

// IsAdminRole reports whether role grants administrative access.
func IsAdminRole(role string) bool {
	for _, r := range AdminRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Class struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name" validate:"notblank"`
	Sections   []string `json:"sections" validate:"required,min=1,dive,notblank"`
	MonthlyFee int64    `json:"monthlyFee" validate:"gte=0"`
}

func (c Class) HasSection(section string) bool {
	for _, s := range c.Sections {
		if s == section {
			return true
		}
	}
	return false
}

// User holds the fields shared by every kind of school member.
type User struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"oneof=SUPER_ADMIN ADMIN LIBRARIAN TEACHER STUDENT PARENT"`
}

// FirstName returns the first word of the user's name.
func (u User) FirstName() string {
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func (u User) IsAdmin() bool { return IsAdminRole(u.Role) }

type Teacher struct {
	User
	Subject string `json:"subject" validate:"notblank"`
}

type Student struct {
	User
	Klass   string `json:"klass" validate:"required"` // Class.ID
	Section string `json:"section" validate:"notblank"`
}

type Parent struct {
	User
	Children []string `json:"children" validate:"len=1,dive,required"` // Student.ID
}

// Staff are admins & librarians.
type Staff struct {
	User
}

type Message struct {
	ID        string    `json:"id" validate:"required"`
	Content   string    `json:"content" validate:"notblank"`
	SenderID  string    `json:"senderId" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	Read      bool      `json:"read"`
}

type Conversation struct {
	ID           string    `json:"id" validate:"required"`
	Participants []string  `json:"participants" validate:"len=2,dive,required"`
	Messages     []Message `json:"messages" validate:"min=1,dive"`
	LastMessage  Message   `json:"lastMessage"`
	UpdatedAt    time.Time `json:"updatedAt" validate:"required"`
}

func (c Conversation) HasParticipant(id string) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// UnreadFor counts the unread messages received (not sent) by the participant id.
func (c Conversation) UnreadFor(id string) int {
	var n int
	for _, m := range c.Messages {
		if !m.Read && m.SenderID != id {
			n++
		}
	}
	return n
}

type Notification struct {
	ID          string    `json:"id" validate:"required"`
	RecipientID string    `json:"recipientId" validate:"required"`
	Title       string    `json:"title" validate:"notblank"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt" validate:"required"`
}
