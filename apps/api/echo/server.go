package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/dashboard"
	"github.com/doonites/schoolhub/core/notification"
	"github.com/doonites/schoolhub/core/school"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Debug          bool
		TestMode       bool
		AppName        string
		Logger         core.Logger
		Store          core.Store
		DashboardSvc   *dashboard.Service
		NotifSvc       *notification.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = s.opts.Debug
	s.app.HideBanner = s.opts.TestMode

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1", currentUserMiddleware(school.NewDirectory(s.opts.Store)))

	registerDashboardAPI(v1, s.opts.DashboardSvc)
	registerNotificationAPI(v1, s.opts.NotifSvc)
}

func (s *server) Start() {
	go func() {
		<-s.shutdown
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Stop(ctx); err != nil {
			s.app.Logger.Error(err)
		}
	}()
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.AppName+" API!")
}
