package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/doonites/schoolhub/core/dashboard"
	"github.com/doonites/schoolhub/core/notification"
	"github.com/doonites/schoolhub/core/school"
)

func Test_home(t *testing.T) {
	fx := setup(t)
	req, rec := newUserRequest(http.MethodGet, "/", "")
	fx.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "Welcome to Doonites API!" {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body.String())
	}
}

func Test_currentUser(t *testing.T) {
	fx := setup(t)
	unauthorized := marshallObj(t, httpErr{Error: "user not identified"})

	runHTTPTests(t, fx.app, []httpTest{
		{name: "no header", method: http.MethodGet, path: "/v1/menu", wantCode: http.StatusUnauthorized, wantData: unauthorized},
		{name: "unknown user", method: http.MethodGet, path: "/v1/menu", userID: "lol", wantCode: http.StatusUnauthorized, wantData: unauthorized},
	})
}

func Test_dashboardApi_menu(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	admins, _ := fx.dir.Admins(ctx)
	teachers, _ := fx.dir.Teachers(ctx)
	parents, _ := fx.dir.Parents(ctx)

	runHTTPTests(t, fx.app, []httpTest{
		{
			name: "super admin", method: http.MethodGet, path: "/v1/menu", userID: admins[0].ID,
			wantCode: http.StatusOK, wantData: marshallObj(t, dashboard.MenuFor(school.RoleSuperAdmin)),
		},
		{
			name: "teacher", method: http.MethodGet, path: "/v1/menu/", userID: teachers[0].ID,
			wantCode: http.StatusOK, wantData: marshallObj(t, dashboard.MenuFor(school.RoleTeacher)),
		},
		{
			name: "parent", method: http.MethodGet, path: "/v1/menu", userID: parents[0].ID,
			wantCode: http.StatusOK, wantData: marshallObj(t, dashboard.MenuFor(school.RoleParent)),
		},
	})
}

func Test_dashboardApi_stats(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	admins, _ := fx.dir.Admins(ctx)
	classes, _ := fx.dir.Classes(ctx)

	req, rec := newUserRequest(http.MethodGet, "/v1/stats", admins[0].ID)
	fx.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
	}
	var st dashboard.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}

	var sections int
	for _, c := range classes {
		sections += len(c.Sections)
	}
	if st.Classes != len(classes) || st.Sections != sections || st.Students != sections*6 {
		t.Errorf("stats = %+v", st)
	}
	if st.Teachers != 20 || st.Parents != 20 || st.Staff != 3 || st.Conversations != 5 {
		t.Errorf("stats = %+v", st)
	}
	if st.MonthlyFees.Currency != "INR" || st.MonthlyFees.Formatted == "" {
		t.Errorf("stats.MonthlyFees = %+v", st.MonthlyFees)
	}
}

func Test_dashboardApi_departments(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	teachers, _ := fx.dir.Teachers(ctx)

	req, rec := newUserRequest(http.MethodGet, "/v1/me/departments", teachers[0].ID)
	fx.app.ServeHTTP(rec, req)
	var depts []dashboard.Department
	if err := json.Unmarshal(rec.Body.Bytes(), &depts); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v; body %s", err, rec.Body.String())
	}
	if len(depts) != 1 || depts[0].Name != teachers[0].Subject {
		t.Errorf("departments = %+v, want only %s", depts, teachers[0].Subject)
	}
}

func Test_dashboardApi_conversations(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	admins, _ := fx.dir.Admins(ctx)
	teachers, _ := fx.dir.Teachers(ctx)
	students, _ := fx.dir.Students(ctx)

	tests := []struct {
		name   string
		userID string
		want   int
	}{
		{name: "admin sees all", userID: admins[1].ID, want: 5},
		{name: "teacher", userID: teachers[0].ID, want: 5},
		{name: "student", userID: students[0].ID, want: 1},
		{name: "other teacher", userID: teachers[1].ID, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUserRequest(http.MethodGet, "/v1/conversations", tt.userID)
			fx.app.ServeHTTP(rec, req)
			var convs []school.Conversation
			if err := json.Unmarshal(rec.Body.Bytes(), &convs); err != nil {
				t.Fatalf("json.Unmarshal() failed: %v; body %s", err, rec.Body.String())
			}
			if len(convs) != tt.want {
				t.Errorf("len(conversations) = %d, want %d", len(convs), tt.want)
			}
		})
	}
}

func Test_dashboardApi_users(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	admins, _ := fx.dir.Admins(ctx)
	teachers, _ := fx.dir.Teachers(ctx)
	students, _ := fx.dir.Students(ctx)
	classes, _ := fx.dir.Classes(ctx)
	forbidden := marshallObj(t, httpErr{Error: "permission denied"})

	runHTTPTests(t, fx.app, []httpTest{
		{name: "student: forbidden", method: http.MethodGet, path: "/v1/users", userID: students[0].ID, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "bad role", method: http.MethodGet, path: "/v1/users?role=lol", userID: admins[0].ID, wantCode: http.StatusBadRequest},
		{name: "section without class", method: http.MethodGet, path: "/v1/users?section=A", userID: admins[0].ID, wantCode: http.StatusBadRequest},
	})

	count := func(t *testing.T, userID, path string) int {
		req, rec := newUserRequest(http.MethodGet, path, userID)
		fx.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body %s", rec.Code, rec.Body.String())
		}
		var users []dashboard.UserSummary
		if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		return len(users)
	}
	t.Run("teachers", func(t *testing.T) {
		if n := count(t, teachers[0].ID, "/v1/users?role=TEACHER"); n != 20 {
			t.Errorf("len(users) = %d, want 20", n)
		}
	})
	t.Run("class section", func(t *testing.T) {
		path := "/v1/users?klass=" + classes[0].ID + "&section=" + classes[0].Sections[0]
		if n := count(t, admins[0].ID, path); n != 6 {
			t.Errorf("len(users) = %d, want 6", n)
		}
	})
}

func Test_notificationApi(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	admins, _ := fx.dir.Admins(ctx)
	students, _ := fx.dir.Students(ctx)
	parents, _ := fx.dir.Parents(ctx)
	notifs, _ := fx.dir.Notifications(ctx)

	var studentNotif school.Notification
	for _, n := range notifs {
		if n.RecipientID == students[0].ID {
			studentNotif = n
			break
		}
	}

	runHTTPTests(t, fx.app, []httpTest{
		{name: "unread count", method: http.MethodGet, path: "/v1/notifications/unread-count", userID: students[0].ID, wantCode: http.StatusOK, wantData: []byte(`{"count":2}`)},
		{name: "parent has none", method: http.MethodGet, path: "/v1/notifications", userID: parents[0].ID, wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "mark someone else's", method: http.MethodPost, path: "/v1/notifications/" + studentNotif.ID + "/read", userID: students[1].ID, wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})},
		{name: "mark read", method: http.MethodPost, path: "/v1/notifications/" + studentNotif.ID + "/read", userID: students[0].ID, wantCode: http.StatusOK},
		{name: "unread count after", method: http.MethodGet, path: "/v1/notifications/unread-count", userID: students[0].ID, wantCode: http.StatusOK, wantData: []byte(`{"count":1}`)},
		{name: "create: not admin", method: http.MethodPost, path: "/v1/notifications", userID: students[0].ID, body: []byte(`{"recipientId":"x","title":"hi"}`), wantCode: http.StatusForbidden},
		{name: "create: blank title", method: http.MethodPost, path: "/v1/notifications", userID: admins[0].ID, body: []byte(`{"recipientId":"` + parents[0].ID + `","title":"  "}`), wantCode: http.StatusBadRequest},
		{name: "create: unknown recipient", method: http.MethodPost, path: "/v1/notifications", userID: admins[0].ID, body: []byte(`{"recipientId":"lol","title":"Fee reminder"}`), wantCode: http.StatusBadRequest},
		{name: "create: bad json", method: http.MethodPost, path: "/v1/notifications", userID: admins[0].ID, body: []byte(`{`), wantCode: http.StatusBadRequest},
		{name: "create", method: http.MethodPost, path: "/v1/notifications", userID: admins[0].ID, body: []byte(`{"recipientId":"` + parents[0].ID + `","title":"Fee reminder","body":"Due on the 10th.","sendEmail":true}`), wantCode: http.StatusCreated},
	})

	got, err := notification.NewService(fx.dir.Store(), nil, nil).ListFor(ctx, parents[0].ID)
	if err != nil || len(got) != 1 || got[0].Title != "Fee reminder" {
		t.Errorf("parent notifications = %+v, %v", got, err)
	}
	sent := fx.outbox.Sent()
	if len(sent) != 1 || sent[0].To[0].Address != parents[0].Email || !strings.Contains(sent[0].Body, "Due on the 10th.") {
		t.Errorf("sent emails = %+v", sent)
	}
}
