package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/notification"
	"github.com/doonites/schoolhub/core/school"
	"github.com/doonites/schoolhub/services/email"
	"github.com/doonites/schoolhub/tests"
)

var ctx = context.Background()

func setup(t *testing.T) (*notification.Service, *school.Directory, *emailsvc.Outbox) {
	store := testutil.SeededStore(t)
	outbox := new(emailsvc.Outbox)
	return notification.NewService(store, outbox, nil), school.NewDirectory(store), outbox
}

func TestService_ListFor(t *testing.T) {
	svc, dir, _ := setup(t)
	admins, _ := dir.Admins(ctx)
	parents, _ := dir.Parents(ctx)

	tests := []struct {
		name    string
		userID  string
		wantLen int
	}{
		{name: "admin", userID: admins[0].ID, wantLen: 2},
		{name: "parent without notifications", userID: parents[0].ID, wantLen: 0},
		{name: "unknown user", userID: "lol", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifs, err := svc.ListFor(ctx, tt.userID)
			if err != nil {
				t.Fatalf("ListFor() error = %v", err)
			}
			if len(notifs) != tt.wantLen {
				t.Fatalf("len(ListFor()) = %d, want %d", len(notifs), tt.wantLen)
			}
			for i := 1; i < len(notifs); i++ {
				if notifs[i].CreatedAt.After(notifs[i-1].CreatedAt) {
					t.Errorf("notifications not sorted newest first at %d", i)
				}
			}
		})
	}
}

func TestService_MarkRead(t *testing.T) {
	svc, dir, _ := setup(t)
	admins, _ := dir.Admins(ctx)
	admin, other := admins[0].ID, admins[1].ID

	notifs, _ := svc.ListFor(ctx, admin)
	before, err := svc.UnreadCount(ctx, admin)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if before != len(notifs) {
		t.Fatalf("UnreadCount() = %d, want %d", before, len(notifs))
	}

	tests := []struct {
		name       string
		userID     string
		id         string
		wantErr    error
		wantUnread int
	}{
		{name: "unknown id", userID: admin, id: "lol", wantErr: notification.ErrNotFound, wantUnread: before},
		{name: "someone else's", userID: other, id: notifs[0].ID, wantErr: notification.ErrNotFound, wantUnread: before},
		{name: "own", userID: admin, id: notifs[0].ID, wantUnread: before - 1},
		{name: "already read", userID: admin, id: notifs[0].ID, wantUnread: before - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notif, err := svc.MarkRead(ctx, tt.userID, tt.id)
			if err != tt.wantErr {
				t.Fatalf("MarkRead() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !notif.Read {
				t.Error("MarkRead() returned an unread notification")
			}
			unread, err := svc.UnreadCount(ctx, admin)
			if err != nil {
				t.Fatalf("UnreadCount() error = %v", err)
			}
			if unread != tt.wantUnread {
				t.Errorf("UnreadCount() = %d, want %d", unread, tt.wantUnread)
			}
		})
	}
}

func TestService_Notify(t *testing.T) {
	svc, dir, outbox := setup(t)
	parents, _ := dir.Parents(ctx)
	parent := parents[0]

	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	notification.NowFunc = func() time.Time { return now }
	defer func() { notification.NowFunc = time.Now }()

	t.Run("invalid", func(t *testing.T) {
		_, err := svc.Notify(ctx, notification.NewNotification{RecipientID: parent.ID, Title: "   "})
		if _, ok := err.(validator.ValidationErrors); !ok {
			t.Errorf("Notify() error = %v, want validator.ValidationErrors", err)
		}
	})

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := svc.Notify(ctx, notification.NewNotification{RecipientID: "lol", Title: "Hi"})
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		if !ok || vErr.Fields[0].Field != "recipientId" {
			t.Errorf("Notify() error = %v, want a recipientId validation error", err)
		}
	})

	t.Run("with email", func(t *testing.T) {
		notif, err := svc.Notify(ctx, notification.NewNotification{
			RecipientID: parent.ID,
			Title:       " Report cards ",
			Body:        "Report cards are out.",
			SendEmail:   true,
		})
		if err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
		if notif.Title != "Report cards" || notif.Read || !notif.CreatedAt.Equal(now) || notif.ID == "" {
			t.Errorf("Notify() = %+v", notif)
		}

		notifs, _ := svc.ListFor(ctx, parent.ID)
		if len(notifs) != 1 || notifs[0].ID != notif.ID {
			t.Errorf("ListFor() = %+v", notifs)
		}

		sent := outbox.Sent()
		if len(sent) != 1 || sent[0].To[0].Address != parent.Email || sent[0].Subject != "Report cards" {
			t.Errorf("sent emails = %+v", sent)
		}
	})
}
