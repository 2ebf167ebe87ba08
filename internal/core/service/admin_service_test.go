package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

type capturingTrail struct {
	events []domain.AuditEvent
}

func (c *capturingTrail) Enqueue(event domain.AuditEvent) {
	c.events = append(c.events, event)
}

func newAdminFixture() (*AdminService, *stubShopRepo, *capturingTrail) {
	shops := newStubShopRepo()
	trail := &capturingTrail{}
	return NewAdminService(shops, trail, zerolog.Nop()), shops, trail
}

func TestSetShopStatus_ApprovesPendingShop(t *testing.T) {
	svc, shops, trail := newAdminFixture()
	_, _ = shops.Create(context.Background(), &domain.ShopAccount{
		ID: "shop-1", Email: "owner@example.com", Status: domain.StatusPending,
	})

	shop, err := svc.SetShopStatus(context.Background(), "root@platform.test", "shop-1", domain.StatusApproved)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if shop.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", shop.Status)
	}

	stored, _ := shops.FindByID(context.Background(), "shop-1")
	if stored.Status != domain.StatusApproved {
		t.Fatalf("status not persisted: %s", stored.Status)
	}

	if len(trail.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(trail.events))
	}
	event := trail.events[0]
	if event.Type != domain.AuditStatusChanged || event.Email != "owner@example.com" || event.Actor != "root@platform.test" {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestSetShopStatus_RejectsInvalidTransition(t *testing.T) {
	svc, shops, trail := newAdminFixture()
	_, _ = shops.Create(context.Background(), &domain.ShopAccount{
		ID: "shop-1", Email: "owner@example.com", Status: domain.StatusPending,
	})

	// A pending shop cannot be frozen before approval.
	_, err := svc.SetShopStatus(context.Background(), "root@platform.test", "shop-1", domain.StatusFrozen)
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if len(trail.events) != 0 {
		t.Fatalf("no audit event expected, got %d", len(trail.events))
	}
}

func TestSetShopStatus_FreezeAndUnfreeze(t *testing.T) {
	svc, shops, _ := newAdminFixture()
	_, _ = shops.Create(context.Background(), &domain.ShopAccount{
		ID: "shop-1", Email: "owner@example.com", Status: domain.StatusApproved,
	})

	if _, err := svc.SetShopStatus(context.Background(), "root@platform.test", "shop-1", domain.StatusFrozen); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if _, err := svc.SetShopStatus(context.Background(), "root@platform.test", "shop-1", domain.StatusApproved); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
}

func TestSetShopStatus_UnknownShop(t *testing.T) {
	svc, _, _ := newAdminFixture()

	_, err := svc.SetShopStatus(context.Background(), "root@platform.test", "missing", domain.StatusApproved)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}
