// Package guard decides whether a resolved session may enter a route. It is
// a pure evaluator: one ordered rule set parameterized by route family and
// required permission, replacing four near-identical ad hoc checks.
package guard

import (
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// State is the outcome kind of a guard evaluation.
type State int

const (
	// StateLoading means resolution is still in flight; render nothing and
	// do not redirect.
	StateLoading State = iota
	StateAllowed
	StateRedirected
)

// Decision is the evaluated outcome for one route. Target is set only when
// State is StateRedirected.
type Decision struct {
	State  State
	Target string
}

// Family selects which login view an unauthenticated visitor is sent to and
// which roles the route is for.
type Family int

const (
	// FamilyGeneral covers the authenticated shop views (owner, staff and,
	// for oversight, platform admins).
	FamilyGeneral Family = iota
	// FamilyAdmin covers the platform administration views.
	FamilyAdmin
	// FamilyGuest covers the guest-only views.
	FamilyGuest
)

// Route describes one guarded route.
type Route struct {
	Path   string
	Family Family
	// Permission, when set, is required of staff sessions. Owners and admins
	// hold every permission implicitly.
	Permission domain.Permission
	// AllowAnyStatus admits owners and staff whose shop is not approved.
	// Used by the account-status view, which must stay reachable or the
	// status redirect would loop.
	AllowAnyStatus bool
}

// Redirect targets.
const (
	LoginPath       = "/login"
	AdminLoginPath  = "/admin/login"
	DashboardPath   = "/dashboard"
	GuestHomePath   = "/guest-dashboard"
	AccountStatPath = "/account-status"
)

// Evaluate runs the fixed-priority rule set for a route. A nil session means
// resolution has not settled yet.
func Evaluate(sess *domain.Session, route Route) Decision {
	if sess == nil {
		return Decision{State: StateLoading}
	}

	if !sess.Authenticated() {
		if route.Family == FamilyAdmin {
			return redirect(AdminLoginPath)
		}
		return redirect(LoginPath)
	}

	if route.Family == FamilyAdmin {
		if sess.Role != domain.RoleAdmin {
			return redirect(AdminLoginPath)
		}
		return Decision{State: StateAllowed}
	}

	// Guests are pinned to their single allowed destination.
	if sess.Role == domain.RoleGuest {
		if route.Family != FamilyGuest {
			return redirect(GuestHomePath)
		}
		return Decision{State: StateAllowed}
	}
	if route.Family == FamilyGuest {
		return redirect(DashboardPath)
	}

	// Owners and staff of a non-approved shop only reach the status view.
	if sess.Role != domain.RoleAdmin && sess.Status != domain.StatusApproved && !route.AllowAnyStatus {
		return redirect(AccountStatPath)
	}

	if route.Permission != "" && sess.Role == domain.RoleStaff && !sess.Permissions.Has(route.Permission) {
		return redirect(DashboardPath)
	}

	return Decision{State: StateAllowed}
}

func redirect(target string) Decision {
	return Decision{State: StateRedirected, Target: target}
}
