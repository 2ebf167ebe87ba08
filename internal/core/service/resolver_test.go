package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

type stubStaffRepo struct {
	byIdentity map[string]*domain.StaffRecord
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{byIdentity: make(map[string]*domain.StaffRecord)}
}

func (r *stubStaffRepo) Create(_ context.Context, staff *domain.StaffRecord) (*domain.StaffRecord, error) {
	clone := *staff
	if clone.ID == "" {
		clone.ID = "staff-" + staff.IdentityID
	}
	r.byIdentity[staff.IdentityID] = &clone
	return &clone, nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, shopID, id string) (*domain.StaffRecord, error) {
	for _, staff := range r.byIdentity {
		if staff.ID == id && staff.ShopID == shopID {
			clone := *staff
			return &clone, nil
		}
	}
	return nil, domain.ErrStaffNotFound
}

func (r *stubStaffRepo) FindByIdentity(_ context.Context, identityID string) (*domain.StaffRecord, error) {
	staff, ok := r.byIdentity[identityID]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	clone := *staff
	return &clone, nil
}

func (r *stubStaffRepo) ListByShop(_ context.Context, shopID string) ([]*domain.StaffRecord, error) {
	var out []*domain.StaffRecord
	for _, staff := range r.byIdentity {
		if staff.ShopID == shopID {
			clone := *staff
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubStaffRepo) Update(_ context.Context, staff *domain.StaffRecord) error {
	r.byIdentity[staff.IdentityID] = staff
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, shopID, id string) error {
	for key, staff := range r.byIdentity {
		if staff.ID == id && staff.ShopID == shopID {
			delete(r.byIdentity, key)
			return nil
		}
	}
	return domain.ErrStaffNotFound
}

// failingShopRepo simulates a document store outage.
type failingShopRepo struct {
	stubShopRepo
}

func (r *failingShopRepo) FindByID(context.Context, string) (*domain.ShopAccount, error) {
	return nil, errors.New("deadline exceeded")
}

func newResolverFixture() (*Resolver, *stubShopRepo, *stubAdminRepo, *stubStaffRepo, *stubGuestRepo) {
	shops := newStubShopRepo()
	admins := newStubAdminRepo()
	staff := newStubStaffRepo()
	guests := newStubGuestRepo()
	r := NewResolver(shops, admins, staff, guests, "root@platform.test", zerolog.Nop())
	return r, shops, admins, staff, guests
}

func TestResolve_DesignatedAdminEmail(t *testing.T) {
	r, _, _, _, _ := newResolverFixture()

	sess := r.Resolve(context.Background(), domain.Identity{ID: "x", Email: "Root@Platform.Test"})
	if sess.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", sess.Role)
	}
	if sess.Status != domain.StatusApproved {
		t.Fatalf("designated admin must be active, got %s", sess.Status)
	}
}

func TestResolve_AdminRecord(t *testing.T) {
	r, _, admins, _, _ := newResolverFixture()
	admins.add("a1", "ops@platform.test")

	sess := r.Resolve(context.Background(), domain.Identity{ID: "a1", Email: "ops@platform.test"})
	if sess.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", sess.Role)
	}
}

func TestResolve_Owner(t *testing.T) {
	r, shops, _, _, _ := newResolverFixture()
	_, _ = shops.Create(context.Background(), &domain.ShopAccount{
		ID: "u1", Email: "owner@shop.test", ShopName: "Corner Store", Status: domain.StatusApproved,
	})

	sess := r.Resolve(context.Background(), domain.Identity{ID: "u1", Email: "owner@shop.test"})
	if sess.Role != domain.RoleOwner {
		t.Fatalf("expected owner role, got %q", sess.Role)
	}
	if !sess.Permissions.Has(domain.PermViewStock) || !sess.Permissions.Has(domain.PermMarkAttendance) {
		t.Fatalf("owner must hold full permissions")
	}
	if sess.ShopID != "u1" {
		t.Fatalf("unexpected shop id %q", sess.ShopID)
	}
}

func TestResolve_StaffInheritsShopStatus(t *testing.T) {
	r, shops, _, staff, _ := newResolverFixture()
	_, _ = shops.Create(context.Background(), &domain.ShopAccount{
		ID: "u1", Email: "owner@shop.test", Status: domain.StatusFrozen,
	})
	_, _ = staff.Create(context.Background(), &domain.StaffRecord{
		ShopID:      "u1",
		IdentityID:  "s1",
		Name:        "Clerk",
		Permissions: domain.PermissionSet{ViewReceipts: true},
		CreatedAt:   time.Now(),
	})

	sess := r.Resolve(context.Background(), domain.Identity{ID: "s1", Email: "clerk@shop.test"})
	if sess.Role != domain.RoleStaff {
		t.Fatalf("expected staff role, got %q", sess.Role)
	}
	if sess.Status != domain.StatusFrozen {
		t.Fatalf("staff must inherit the shop status, got %s", sess.Status)
	}
	if sess.Permissions.Has(domain.PermViewStock) {
		t.Fatalf("staff must not gain permissions they were not granted")
	}
	if sess.ShopID != "u1" {
		t.Fatalf("unexpected shop id %q", sess.ShopID)
	}
}

func TestResolve_Guest(t *testing.T) {
	r, _, _, _, guests := newResolverFixture()
	_, _ = guests.Create(context.Background(), &domain.GuestAccount{ID: "g1", Email: "guest@shop.test", ShopID: "u1"})

	sess := r.Resolve(context.Background(), domain.Identity{ID: "g1", Email: "guest@shop.test"})
	if sess.Role != domain.RoleGuest {
		t.Fatalf("expected guest role, got %q", sess.Role)
	}
	if !sess.Permissions.Has(domain.PermCreateReceipts) {
		t.Fatalf("guest must be able to create receipts")
	}
	if sess.Permissions.Has(domain.PermViewReceipts) {
		t.Fatalf("guest must not view receipts")
	}
}

func TestResolve_UnknownIdentity(t *testing.T) {
	r, _, _, _, _ := newResolverFixture()

	sess := r.Resolve(context.Background(), domain.Identity{ID: "nobody", Email: "nobody@nowhere.test"})
	if sess.Authenticated() {
		t.Fatalf("unknown identity resolved to role %q", sess.Role)
	}
}

func TestResolve_LookupErrorFailsClosed(t *testing.T) {
	admins := newStubAdminRepo()
	staff := newStubStaffRepo()
	guests := newStubGuestRepo()
	shops := &failingShopRepo{*newStubShopRepo()}
	r := NewResolver(shops, admins, staff, guests, "", zerolog.Nop())

	sess := r.Resolve(context.Background(), domain.Identity{ID: "u1", Email: "owner@shop.test"})
	if sess.Authenticated() {
		t.Fatalf("storage failure must never grant access, got role %q", sess.Role)
	}
	if sess.Permissions.Has(domain.PermViewStock) {
		t.Fatalf("storage failure must not grant permissions")
	}
}
