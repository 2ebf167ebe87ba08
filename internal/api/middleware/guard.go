package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/metrics"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/guard"
)

// Guard evaluates the route guard for every request. Disallowed requests are
// answered with a redirect to the route the session is entitled to, matching
// the navigation behaviour the web client expects.
func Guard(route guard.Route) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// The session middleware always settles resolution before this
			// point, so the session is never pending here.
			sess, _ := c.Get(SessionKey).(domain.Session)
			decision := guard.Evaluate(&sess, route)

			metrics.GuardDecisionsTotal.WithLabelValues(decisionLabel(decision.State), familyLabel(route.Family)).Inc()

			if decision.State == guard.StateRedirected {
				return c.Redirect(http.StatusFound, decision.Target)
			}
			return next(c)
		}
	}
}

func decisionLabel(s guard.State) string {
	switch s {
	case guard.StateAllowed:
		return "allowed"
	case guard.StateRedirected:
		return "redirected"
	default:
		return "loading"
	}
}

func familyLabel(f guard.Family) string {
	switch f {
	case guard.FamilyAdmin:
		return "admin"
	case guard.FamilyGuest:
		return "guest"
	default:
		return "general"
	}
}
