package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// AdminService implements the platform administration operations: listing
// registered shops and driving their approval lifecycle.
type AdminService struct {
	shops ports.ShopRepository
	audit ports.AuditTrail
	log   zerolog.Logger
}

func NewAdminService(shops ports.ShopRepository, audit ports.AuditTrail, log zerolog.Logger) *AdminService {
	return &AdminService{shops: shops, audit: audit, log: log}
}

func (s *AdminService) ListShops(ctx context.Context) ([]*domain.ShopAccount, error) {
	return s.shops.List(ctx)
}

// SetShopStatus applies an approve/reject/freeze/unfreeze transition. Invalid
// transitions are rejected; accounts are never hard-deleted.
func (s *AdminService) SetShopStatus(ctx context.Context, actor, shopID string, status domain.AccountStatus) (*domain.ShopAccount, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if !shop.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidStatus
	}

	if err := s.shops.UpdateStatus(ctx, shopID, status); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("shop_id", shopID).
		Str("from", string(shop.Status)).
		Str("to", string(status)).
		Msg("shop status changed")

	if s.audit != nil {
		s.audit.Enqueue(domain.AuditEvent{
			Type:      domain.AuditStatusChanged,
			Email:     shop.Email,
			Actor:     actor,
			Detail:    string(shop.Status) + " -> " + string(status),
			Timestamp: time.Now().UTC(),
		})
	}

	shop.Status = status
	return shop, nil
}
