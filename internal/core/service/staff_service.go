package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/password"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// StaffService manages a shop's staff roster. Staff get their own credential
// so they can sign in, plus a typed permission set scoped to the shop.
type StaffService struct {
	staff ports.StaffRepository
	creds ports.CredentialStore
	log   zerolog.Logger
}

func NewStaffService(staff ports.StaffRepository, creds ports.CredentialStore, log zerolog.Logger) *StaffService {
	return &StaffService{staff: staff, creds: creds, log: log}
}

func (s *StaffService) Create(ctx context.Context, shopID string, input ports.CreateStaffInput) (*domain.StaffRecord, error) {
	if input.Name == "" || input.Email == "" {
		return nil, &domain.ValidationError{Message: "name and email are required"}
	}
	if res := password.Validate(input.Password); !res.Valid {
		return nil, &domain.ValidationError{Message: res.Message}
	}

	identity, err := s.creds.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.StaffRecord{
		ShopID:      shopID,
		IdentityID:  identity.ID,
		Name:        input.Name,
		Email:       identity.Email,
		RoleLabel:   input.RoleLabel,
		Permissions: input.Permissions,
		MonthlyPay:  input.MonthlyPay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.staff.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("shop_id", shopID).Str("staff_id", created.ID).Msg("staff member created")
	return created, nil
}

func (s *StaffService) List(ctx context.Context, shopID string) ([]*domain.StaffRecord, error) {
	return s.staff.ListByShop(ctx, shopID)
}

func (s *StaffService) Update(ctx context.Context, shopID, id string, input ports.UpdateStaffInput) (*domain.StaffRecord, error) {
	record, err := s.staff.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}

	record.Name = input.Name
	record.RoleLabel = input.RoleLabel
	record.MonthlyPay = input.MonthlyPay
	record.Permissions = input.Permissions
	record.UpdatedAt = time.Now().UTC()

	if err := s.staff.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *StaffService) Delete(ctx context.Context, shopID, id string) error {
	return s.staff.Delete(ctx, shopID, id)
}
