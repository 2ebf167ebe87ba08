package guard

import (
	"testing"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

func ownerSession() *domain.Session {
	return &domain.Session{
		Identity:    domain.Identity{ID: "u1", Email: "owner@shop.test"},
		Role:        domain.RoleOwner,
		Status:      domain.StatusApproved,
		Permissions: domain.FullPermissions(),
		ShopID:      "u1",
	}
}

func staffSession(perms domain.PermissionSet) *domain.Session {
	return &domain.Session{
		Identity:    domain.Identity{ID: "s1", Email: "staff@shop.test"},
		Role:        domain.RoleStaff,
		Status:      domain.StatusApproved,
		Permissions: perms,
		ShopID:      "u1",
	}
}

func guestSession() *domain.Session {
	return &domain.Session{
		Identity:    domain.Identity{ID: "g1", Email: "guest@shop.test"},
		Role:        domain.RoleGuest,
		Permissions: domain.GuestPermissions(),
		ShopID:      "u1",
	}
}

func TestEvaluate_Loading(t *testing.T) {
	d := Evaluate(nil, Route{Path: DashboardPath})
	if d.State != StateLoading {
		t.Fatalf("expected loading, got %v", d)
	}
	if d.Target != "" {
		t.Fatalf("loading must not redirect, got target %q", d.Target)
	}
}

func TestEvaluate_Unauthenticated(t *testing.T) {
	unresolved := &domain.Session{}

	d := Evaluate(unresolved, Route{Path: DashboardPath, Family: FamilyGeneral})
	if d.State != StateRedirected || d.Target != LoginPath {
		t.Fatalf("expected redirect to %s, got %+v", LoginPath, d)
	}

	d = Evaluate(unresolved, Route{Path: "/admin/users", Family: FamilyAdmin})
	if d.State != StateRedirected || d.Target != AdminLoginPath {
		t.Fatalf("expected redirect to %s, got %+v", AdminLoginPath, d)
	}
}

func TestEvaluate_FailClosed(t *testing.T) {
	// An unresolved session must never reach an owner or admin view.
	unresolved := &domain.Session{}
	for _, route := range []Route{
		{Path: "/admin/users", Family: FamilyAdmin},
		{Path: DashboardPath, Family: FamilyGeneral},
		{Path: "/stock", Family: FamilyGeneral, Permission: domain.PermViewStock},
	} {
		if d := Evaluate(unresolved, route); d.State == StateAllowed {
			t.Fatalf("unresolved session allowed into %s", route.Path)
		}
	}
}

func TestEvaluate_GuestPinnedToGuestHome(t *testing.T) {
	sess := guestSession()
	for _, route := range []Route{
		{Path: DashboardPath, Family: FamilyGeneral},
		{Path: "/stock", Family: FamilyGeneral, Permission: domain.PermViewStock},
		{Path: "/receipts", Family: FamilyGeneral, Permission: domain.PermViewReceipts},
	} {
		d := Evaluate(sess, route)
		if d.State != StateRedirected || d.Target != GuestHomePath {
			t.Fatalf("guest on %s: expected redirect to %s, got %+v", route.Path, GuestHomePath, d)
		}
	}

	d := Evaluate(sess, Route{Path: GuestHomePath, Family: FamilyGuest})
	if d.State != StateAllowed {
		t.Fatalf("guest should reach %s, got %+v", GuestHomePath, d)
	}
}

func TestEvaluate_NonGuestOffGuestRoutes(t *testing.T) {
	d := Evaluate(ownerSession(), Route{Path: GuestHomePath, Family: FamilyGuest})
	if d.State != StateRedirected || d.Target != DashboardPath {
		t.Fatalf("expected redirect to %s, got %+v", DashboardPath, d)
	}
}

func TestEvaluate_StaffPermission(t *testing.T) {
	sess := staffSession(domain.PermissionSet{ViewReceipts: true})

	d := Evaluate(sess, Route{Path: "/stock", Family: FamilyGeneral, Permission: domain.PermViewStock})
	if d.State != StateRedirected || d.Target != DashboardPath {
		t.Fatalf("staff without canViewStock: expected redirect to %s, got %+v", DashboardPath, d)
	}

	d = Evaluate(sess, Route{Path: "/receipts", Family: FamilyGeneral, Permission: domain.PermViewReceipts})
	if d.State != StateAllowed {
		t.Fatalf("staff with canViewReceipts should pass, got %+v", d)
	}
}

func TestEvaluate_OwnerBypassesPermissionChecks(t *testing.T) {
	d := Evaluate(ownerSession(), Route{Path: "/stock", Family: FamilyGeneral, Permission: domain.PermViewStock})
	if d.State != StateAllowed {
		t.Fatalf("owner should pass, got %+v", d)
	}
}

func TestEvaluate_AdminFamily(t *testing.T) {
	admin := &domain.Session{
		Identity:    domain.Identity{ID: "a1", Email: "admin@platform.test"},
		Role:        domain.RoleAdmin,
		Status:      domain.StatusApproved,
		Permissions: domain.FullPermissions(),
	}

	if d := Evaluate(admin, Route{Path: "/admin/users", Family: FamilyAdmin}); d.State != StateAllowed {
		t.Fatalf("admin should pass, got %+v", d)
	}
	if d := Evaluate(ownerSession(), Route{Path: "/admin/users", Family: FamilyAdmin}); d.Target != AdminLoginPath {
		t.Fatalf("owner on admin route: expected redirect to %s, got %+v", AdminLoginPath, d)
	}
}

func TestEvaluate_StatusRedirect(t *testing.T) {
	sess := ownerSession()
	for _, status := range []domain.AccountStatus{domain.StatusPending, domain.StatusFrozen, domain.StatusRejected} {
		sess.Status = status
		d := Evaluate(sess, Route{Path: DashboardPath, Family: FamilyGeneral})
		if d.State != StateRedirected || d.Target != AccountStatPath {
			t.Fatalf("status %s: expected redirect to %s, got %+v", status, AccountStatPath, d)
		}
		// The status view itself must stay reachable.
		d = Evaluate(sess, Route{Path: AccountStatPath, Family: FamilyGeneral, AllowAnyStatus: true})
		if d.State != StateAllowed {
			t.Fatalf("status %s: account-status view unreachable, got %+v", status, d)
		}
	}
}
