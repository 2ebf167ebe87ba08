package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/middleware"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// performs a fast-fail check before any service call:
//   - the session must be authenticated (the guard should have redirected
//     otherwise, so a miss here means the route is wired without a guard).
//   - owner, staff and guest sessions must carry the shop they act for.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(domain.Session)
	if !sess.Authenticated() {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	if sess.Role != domain.RoleAdmin && sess.ShopID == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "session missing shop identity")
	}
	return sess, nil
}
