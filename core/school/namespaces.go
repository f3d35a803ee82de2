package school

// Namespaces are the store keys holding each collection as a JSON array.
const (
	ClassesKey       = "classes:doonites"
	TeachersKey      = "teachers:doonites"
	StudentsKey      = "students:doonites"
	ParentsKey       = "parents:doonites"
	AdminsKey        = "admins:doonites"
	LibrariansKey    = "librarians:doonites"
	ConversationsKey = "conversations:doonites"
	NotificationsKey = "notifications:doonites"
)

var (
	// UserKeys hold every namespace storing users.
	UserKeys = []string{TeachersKey, StudentsKey, ParentsKey, AdminsKey, LibrariansKey}
	AllKeys  = []string{
		ClassesKey, TeachersKey, StudentsKey, ParentsKey,
		AdminsKey, LibrariansKey, ConversationsKey, NotificationsKey,
	}
)
