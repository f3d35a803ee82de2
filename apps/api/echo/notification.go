package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core/notification"
)

type notificationApi struct {
	svc *notification.Service
}

func registerNotificationAPI(g *echo.Group, svc *notification.Service) {
	api := notificationApi{svc: svc}

	ng := g.Group("/notifications")
	ng.GET("", api.list)
	ng.GET("/unread-count", api.unreadCount)
	ng.POST("/:id/read", api.markRead)
	ng.POST("", api.create, adminMiddleware())
}

// Handlers

func (api *notificationApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	notifs, err := api.svc.ListFor(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing notifications")
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) unreadCount(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	count, err := api.svc.UnreadCount(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "counting unread notifications")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": count})
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	notif, err := api.svc.MarkRead(ctx.Request().Context(), usr.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notif)
}

func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	notif, err := api.svc.Notify(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, notif)
}
