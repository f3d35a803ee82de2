package notification

import (
	"context"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

// ErrNotFound is returned when the notification does not exist or belongs to another user.
var ErrNotFound = errors.New("notification not found")

var NowFunc = time.Now // mockable

// NewNotification contains the information needed to notify a user.
type NewNotification struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Title       string `json:"title" validate:"notblank,max=120"`
	Body        string `json:"body" validate:"max=2000"`
	SendEmail   bool   `json:"sendEmail"`
}

func (nn *NewNotification) Validate() error {
	nn.RecipientID = core.CleanString(nn.RecipientID)
	nn.Title = core.CleanString(nn.Title)
	nn.Body = core.CleanString(nn.Body)
	return core.Validate.Struct(nn)
}

// Service manages the notifications namespace.
// Every change rewrites the whole namespace; the mutex serializes read-modify-write cycles of this process.
type Service struct {
	dir     *school.Directory
	mailSvc core.EmailService
	logger  core.Logger
	mu      sync.Mutex
}

func NewService(store core.Store, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		dir:     school.NewDirectory(store),
		mailSvc: mailSvc,
		logger:  logger,
	}
}

// ListFor returns the user's notifications, newest first.
func (svc *Service) ListFor(ctx context.Context, userID string) ([]school.Notification, error) {
	all, err := svc.dir.Notifications(ctx)
	if err != nil {
		return nil, err
	}
	notifs := make([]school.Notification, 0)
	for _, n := range all {
		if n.RecipientID == userID {
			notifs = append(notifs, n)
		}
	}
	sort.SliceStable(notifs, func(i, j int) bool { return notifs[i].CreatedAt.After(notifs[j].CreatedAt) })
	return notifs, nil
}

// UnreadCount returns the number of unread notifications of the user (the notification badge).
func (svc *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	all, err := svc.dir.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	for _, n := range all {
		if n.RecipientID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead marks the user's notification as read.
func (svc *Service) MarkRead(ctx context.Context, userID, id string) (school.Notification, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	all, err := svc.dir.Notifications(ctx)
	if err != nil {
		return school.Notification{}, err
	}
	for i, n := range all {
		if n.ID != id || n.RecipientID != userID {
			continue
		}
		if n.Read {
			return n, nil
		}
		all[i].Read = true
		if err := svc.dir.SaveNotifications(ctx, all); err != nil {
			return school.Notification{}, err
		}
		return all[i], nil
	}
	return school.Notification{}, ErrNotFound
}

// Notify stores a new notification for the recipient and optionally emails it.
func (svc *Service) Notify(ctx context.Context, nn NewNotification) (school.Notification, error) {
	if err := nn.Validate(); err != nil {
		return school.Notification{}, err
	}
	recipient, err := svc.dir.FindUser(ctx, nn.RecipientID)
	if err != nil {
		if err == school.ErrUserNotFound {
			return school.Notification{}, core.NewValidationError(err, core.FieldError{Field: "recipientId", Error: err.Error()})
		}
		return school.Notification{}, err
	}

	notif := school.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipient.ID,
		Title:       nn.Title,
		Body:        nn.Body,
		CreatedAt:   NowFunc().UTC(),
	}

	svc.mu.Lock()
	all, err := svc.dir.Notifications(ctx)
	if err == nil {
		err = svc.dir.SaveNotifications(ctx, append(all, notif))
	}
	svc.mu.Unlock()
	if err != nil {
		return school.Notification{}, err
	}

	if nn.SendEmail && svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: recipient.Name, Address: recipient.Email}},
			Subject: notif.Title,
			Body:    strings.TrimSpace(notif.Title + "\n\n" + notif.Body),
		})
		if svc.logger != nil {
			svc.logger.Debug("notification emailed to " + recipient.Email)
		}
	}
	return notif, nil
}
