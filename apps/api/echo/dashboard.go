package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core/dashboard"
	"github.com/doonites/schoolhub/core/school"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}

	g.GET("/menu", api.menu)
	g.GET("/stats", api.stats)
	g.GET("/me/departments", api.departments)
	g.GET("/conversations", api.conversations)
	g.GET("/users", api.users, adminMiddleware(school.RoleTeacher))
}

// Handlers

func (api *dashboardApi) menu(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dashboard.MenuFor(usr.Role))
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	st, err := api.svc.Stats(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "computing stats")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *dashboardApi) departments(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	depts, err := api.svc.Departments(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "listing departments")
	}
	return ctx.JSON(http.StatusOK, depts)
}

func (api *dashboardApi) conversations(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	convs, err := api.svc.Conversations(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "listing conversations")
	}
	return ctx.JSON(http.StatusOK, convs)
}

func (api *dashboardApi) users(ctx echo.Context) error {
	filter := dashboard.UserFilter{
		Role:    ctx.QueryParam("role"),
		Klass:   ctx.QueryParam("klass"),
		Section: ctx.QueryParam("section"),
	}
	users, err := api.svc.Users(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}
