package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/doonites/schoolhub/apps/api/echo"
	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/dashboard"
	"github.com/doonites/schoolhub/core/notification"
	"github.com/doonites/schoolhub/core/school"
	"github.com/doonites/schoolhub/services/email"
	"github.com/doonites/schoolhub/tests"
)

type fixture struct {
	app    Server
	dir    *school.Directory
	outbox *emailsvc.Outbox
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testutil.SeededStore(t)

	money, err := core.NewMoneyFormatter("INR", "en-IN")
	if err != nil {
		t.Fatalf("NewMoneyFormatter() failed: %v", err)
	}
	outbox := new(emailsvc.Outbox)

	// set up server
	app := NewServer(
		&Options{
			DisableReqLogs: true,
			TestMode:       true,
			AppName:        "Doonites",
			Store:          store,
			DashboardSvc:   dashboard.NewService(store, money),
			NotifSvc:       notification.NewService(store, outbox, nil),
		},
	)
	return fixture{app: app, dir: school.NewDirectory(store), outbox: outbox}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	userID   string
	wantCode int
	wantData []byte
}

func newUserRequest(method, path, userID string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v (body %s)", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newUserRequest(tt.method, tt.path, tt.userID, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
