package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/doonites/schoolhub/core"
	"github.com/doonites/schoolhub/core/school"
)

const (
	headerUserID   = "X-User-ID"
	contextUserKey = "user"
)

var errUsrNotFoundInCtx = errors.New("user object not found in echo.Context")

// currentUserMiddleware loads the user selected by the X-User-ID header into the context.
func currentUserMiddleware(dir *school.Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := core.CleanString(ctx.Request().Header.Get(headerUserID))
			if id == "" {
				return errUnauthorized
			}
			usr, err := dir.FindUser(ctx.Request().Context(), id)
			if err != nil {
				if err == school.ErrUserNotFound {
					return errUnauthorized
				}
				return errors.Wrap(err, "finding current user")
			}
			ctx.Set(contextUserKey, usr)
			return next(ctx)
		}
	}
}

// adminMiddleware lets admins through, along with users holding any of the extra roles.
func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx)
			if err != nil {
				return err
			}
			if usr.IsAdmin() {
				return next(ctx)
			}
			for _, role := range roles {
				if usr.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func getContextUser(ctx echo.Context) (school.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(school.User); ok {
		return usr, nil
	}
	return school.User{}, errUsrNotFoundInCtx
}
