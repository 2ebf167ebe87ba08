package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// Resolver maps an authenticated identity to a role, account status and
// permission set on every request. It checks, in order: designated admin
// email / admins collection, shop account, staff record, guest marker.
type Resolver struct {
	shops      ports.ShopRepository
	admins     ports.AdminRepository
	staff      ports.StaffRepository
	guests     ports.GuestRepository
	adminEmail string
	log        zerolog.Logger
}

func NewResolver(shops ports.ShopRepository, admins ports.AdminRepository, staff ports.StaffRepository, guests ports.GuestRepository, adminEmail string, log zerolog.Logger) *Resolver {
	return &Resolver{
		shops:      shops,
		admins:     admins,
		staff:      staff,
		guests:     guests,
		adminEmail: strings.ToLower(adminEmail),
		log:        log,
	}
}

// Resolve never returns an error: any lookup failure yields an
// unauthenticated session so a storage hiccup can only deny access, never
// grant it.
func (r *Resolver) Resolve(ctx context.Context, identity domain.Identity) domain.Session {
	unresolved := domain.Session{Identity: identity}

	if r.adminEmail != "" && strings.ToLower(identity.Email) == r.adminEmail {
		return r.adminSession(identity)
	}
	_, err := r.admins.FindByEmail(ctx, identity.Email)
	if err == nil {
		return r.adminSession(identity)
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		r.log.Error().Err(err).Str("identity", identity.ID).Msg("admin lookup failed, denying access")
		return unresolved
	}

	shop, err := r.shops.FindByID(ctx, identity.ID)
	if err == nil {
		return domain.Session{
			Identity:    identity,
			Role:        domain.RoleOwner,
			Status:      shop.Status,
			Permissions: domain.FullPermissions(),
			ShopID:      shop.ID,
		}
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		r.log.Error().Err(err).Str("identity", identity.ID).Msg("shop lookup failed, denying access")
		return unresolved
	}

	staff, err := r.staff.FindByIdentity(ctx, identity.ID)
	if err == nil {
		// Staff inherit the owning shop's lifecycle status: a frozen shop
		// freezes its staff too.
		shop, err := r.shops.FindByID(ctx, staff.ShopID)
		if err != nil {
			r.log.Error().Err(err).Str("shop_id", staff.ShopID).Msg("staff shop lookup failed, denying access")
			return unresolved
		}
		return domain.Session{
			Identity:    identity,
			Role:        domain.RoleStaff,
			Status:      shop.Status,
			Permissions: staff.Permissions,
			ShopID:      staff.ShopID,
		}
	}
	if !errors.Is(err, domain.ErrStaffNotFound) {
		r.log.Error().Err(err).Str("identity", identity.ID).Msg("staff lookup failed, denying access")
		return unresolved
	}

	guest, err := r.guests.FindByIdentity(ctx, identity.ID)
	if err == nil {
		return domain.Session{
			Identity:    identity,
			Role:        domain.RoleGuest,
			Permissions: domain.GuestPermissions(),
			ShopID:      guest.ShopID,
		}
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		r.log.Error().Err(err).Str("identity", identity.ID).Msg("guest lookup failed, denying access")
	}

	return unresolved
}

func (r *Resolver) adminSession(identity domain.Identity) domain.Session {
	return domain.Session{
		Identity:    identity,
		Role:        domain.RoleAdmin,
		Status:      domain.StatusApproved,
		Permissions: domain.FullPermissions(),
	}
}
