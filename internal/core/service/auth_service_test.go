package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

type lockRecord struct {
	attempts     int
	lockedUntil  time.Time
	lockDuration time.Duration
	lastLoginAt  time.Time
}

// stubShopRepo implements ports.ShopRepository in memory.
type stubShopRepo struct {
	shops map[string]*domain.ShopAccount
	locks map[string]*lockRecord
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{
		shops: make(map[string]*domain.ShopAccount),
		locks: make(map[string]*lockRecord),
	}
}

func (r *stubShopRepo) Create(_ context.Context, shop *domain.ShopAccount) (*domain.ShopAccount, error) {
	clone := *shop
	r.shops[shop.ID] = &clone
	r.locks[shop.Email] = &lockRecord{}
	return &clone, nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id string) (*domain.ShopAccount, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *shop
	return &clone, nil
}

func (r *stubShopRepo) FindByEmail(_ context.Context, email string) (*domain.ShopAccount, error) {
	for _, shop := range r.shops {
		if shop.Email == email {
			clone := *shop
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubShopRepo) List(_ context.Context) ([]*domain.ShopAccount, error) {
	out := make([]*domain.ShopAccount, 0, len(r.shops))
	for _, shop := range r.shops {
		clone := *shop
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubShopRepo) UpdateStatus(_ context.Context, id string, status domain.AccountStatus) error {
	shop, ok := r.shops[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	shop.Status = status
	return nil
}

func (r *stubShopRepo) LockState(_ context.Context, email string) (*domain.LockState, error) {
	rec, ok := r.locks[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.LockState{
		FailedAttempts: rec.attempts,
		LockedUntil:    rec.lockedUntil,
		LockDuration:   rec.lockDuration,
	}, nil
}

func (r *stubShopRepo) RecordFailedAttempt(_ context.Context, email string, _ time.Time) (int, error) {
	rec, ok := r.locks[email]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	rec.attempts++
	return rec.attempts, nil
}

func (r *stubShopRepo) Lock(_ context.Context, email string, at time.Time, duration time.Duration) error {
	rec, ok := r.locks[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	rec.lockedUntil = at
	rec.lockDuration = duration
	return nil
}

func (r *stubShopRepo) ClearFailures(_ context.Context, email string, at time.Time) error {
	rec, ok := r.locks[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	rec.attempts = 0
	rec.lockedUntil = time.Time{}
	rec.lockDuration = 0
	rec.lastLoginAt = at
	return nil
}

// stubAdminRepo reuses the shop repo lock bookkeeping for admins.
type stubAdminRepo struct {
	admins map[string]*domain.AdminAccount
	locks  map[string]*lockRecord
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{
		admins: make(map[string]*domain.AdminAccount),
		locks:  make(map[string]*lockRecord),
	}
}

func (r *stubAdminRepo) add(id, email string) {
	r.admins[id] = &domain.AdminAccount{ID: id, Email: email}
	r.locks[email] = &lockRecord{}
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.AdminAccount, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *admin
	return &clone, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.AdminAccount, error) {
	for _, admin := range r.admins {
		if admin.Email == email {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAdminRepo) LockState(_ context.Context, email string) (*domain.LockState, error) {
	rec, ok := r.locks[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.LockState{
		FailedAttempts: rec.attempts,
		LockedUntil:    rec.lockedUntil,
		LockDuration:   rec.lockDuration,
	}, nil
}

func (r *stubAdminRepo) RecordFailedAttempt(_ context.Context, email string, _ time.Time) (int, error) {
	rec, ok := r.locks[email]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	rec.attempts++
	return rec.attempts, nil
}

func (r *stubAdminRepo) Lock(_ context.Context, email string, at time.Time, duration time.Duration) error {
	rec, ok := r.locks[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	rec.lockedUntil = at
	rec.lockDuration = duration
	return nil
}

func (r *stubAdminRepo) ClearFailures(_ context.Context, email string, at time.Time) error {
	rec, ok := r.locks[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	rec.attempts = 0
	rec.lockedUntil = time.Time{}
	rec.lockDuration = 0
	rec.lastLoginAt = at
	return nil
}

// stubCredentialStore authenticates against an in-memory password map and
// counts SignIn calls so tests can assert it was never contacted.
type stubCredentialStore struct {
	passwords   map[string]string
	nextID      int
	signInCalls int
	failWith    error
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{passwords: make(map[string]string)}
}

func (s *stubCredentialStore) SignIn(_ context.Context, email, pass string) (*domain.Identity, error) {
	s.signInCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	stored, ok := s.passwords[email]
	if !ok || stored != pass {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{ID: "id-" + email, Email: email}, nil
}

func (s *stubCredentialStore) SignUp(_ context.Context, email, pass string) (*domain.Identity, error) {
	if _, exists := s.passwords[email]; exists {
		return nil, domain.ErrEmailExists
	}
	s.passwords[email] = pass
	s.nextID++
	return &domain.Identity{ID: "id-" + email, Email: email}, nil
}

type stubGuestRepo struct {
	guests map[string]*domain.GuestAccount
}

func newStubGuestRepo() *stubGuestRepo {
	return &stubGuestRepo{guests: make(map[string]*domain.GuestAccount)}
}

func (r *stubGuestRepo) Create(_ context.Context, guest *domain.GuestAccount) (*domain.GuestAccount, error) {
	clone := *guest
	r.guests[guest.ID] = &clone
	return &clone, nil
}

func (r *stubGuestRepo) FindByIdentity(_ context.Context, identityID string) (*domain.GuestAccount, error) {
	guest, ok := r.guests[identityID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *guest
	return &clone, nil
}

type stubRevoker struct {
	revoked map[string]bool
}

func newStubRevoker() *stubRevoker { return &stubRevoker{revoked: make(map[string]bool)} }

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r.revoked[tokenID] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], nil
}

type fixture struct {
	svc    *AuthService
	shops  *stubShopRepo
	admins *stubAdminRepo
	creds  *stubCredentialStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	shops := newStubShopRepo()
	admins := newStubAdminRepo()
	creds := newStubCredentialStore()
	svc := NewAuthService(AuthConfig{
		Credentials: creds,
		Shops:       shops,
		Admins:      admins,
		Guests:      newStubGuestRepo(),
		Revoker:     newStubRevoker(),
		ShopPolicy:  domain.LockoutPolicy{Threshold: 5, LockDuration: 15 * time.Minute},
		AdminPolicy: domain.LockoutPolicy{Threshold: 3, LockDuration: 30 * time.Minute},
		JWTSecret:   "secret",
		TokenTTL:    time.Hour,
	}, zerolog.Nop())
	return &fixture{svc: svc, shops: shops, admins: admins, creds: creds}
}

func (f *fixture) registerAdmin(t *testing.T, email, pass string) {
	t.Helper()
	if _, err := f.creds.SignUp(context.Background(), email, pass); err != nil {
		t.Fatalf("seed admin credential: %v", err)
	}
	f.admins.add("id-"+email, email)
}

func TestRegisterShop_PendingStatus(t *testing.T) {
	f := newFixture(t)

	shop, err := f.svc.RegisterShop(context.Background(), ports.RegisterShopInput{
		Email:    "Owner@Shop.Test",
		Password: "Str0ng-Pass",
		ShopName: "Corner Store",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if shop.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", shop.Status)
	}
	if shop.Email != "owner@shop.test" {
		t.Fatalf("email not normalized: %s", shop.Email)
	}
}

func TestRegisterShop_WeakPasswordRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RegisterShop(context.Background(), ports.RegisterShopInput{
		Email:    "owner@shop.test",
		Password: "short",
		ShopName: "Corner Store",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.creds.nextID != 0 {
		t.Fatalf("credential must not be created for a rejected password")
	}
}

func TestLoginAdmin_FailuresThenSuccessResets(t *testing.T) {
	f := newFixture(t)
	f.registerAdmin(t, "admin@platform.test", "Adm1n-Pass")

	for i := 0; i < 2; i++ {
		_, _, err := f.svc.LoginAdmin(context.Background(), "admin@platform.test", "wrong")
		var ae *domain.AttemptsError
		if !errors.As(err, &ae) {
			t.Fatalf("attempt %d: expected AttemptsError, got %v", i+1, err)
		}
		if ae.Remaining != 3-(i+1) {
			t.Fatalf("attempt %d: remaining = %d", i+1, ae.Remaining)
		}
	}

	token, identity, err := f.svc.LoginAdmin(context.Background(), "admin@platform.test", "Adm1n-Pass")
	if err != nil {
		t.Fatalf("login after failures: %v", err)
	}
	if token == "" || identity == nil {
		t.Fatalf("expected token and identity")
	}

	rec := f.admins.locks["admin@platform.test"]
	if rec.attempts != 0 {
		t.Fatalf("counter not reset: %d", rec.attempts)
	}
	if !rec.lockedUntil.IsZero() {
		t.Fatalf("no lock should be set after successful login")
	}
	if rec.lastLoginAt.IsZero() {
		t.Fatalf("lastLoginAt not recorded")
	}
}

func TestLoginAdmin_LockAfterThreeFailures(t *testing.T) {
	f := newFixture(t)
	f.registerAdmin(t, "admin@platform.test", "Adm1n-Pass")

	var lastErr error
	for i := 0; i < 3; i++ {
		_, _, lastErr = f.svc.LoginAdmin(context.Background(), "admin@platform.test", "wrong")
	}
	var locked *domain.LockedError
	if !errors.As(lastErr, &locked) {
		t.Fatalf("expected LockedError on third failure, got %v", lastErr)
	}
	if !locked.JustLocked {
		t.Fatalf("third failure should report the fresh lock")
	}

	// The fourth attempt must be rejected before the credential store is
	// contacted, even with the correct password.
	callsBefore := f.creds.signInCalls
	_, _, err := f.svc.LoginAdmin(context.Background(), "admin@platform.test", "Adm1n-Pass")
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError inside lock window, got %v", err)
	}
	if mins := locked.RetryMinutes(); mins < 1 || mins > 30 {
		t.Fatalf("remaining minutes out of range: %d", mins)
	}
	if f.creds.signInCalls != callsBefore {
		t.Fatalf("credential store contacted while locked")
	}
}

func TestLoginAdmin_UnknownEmailStaysGeneric(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.LoginAdmin(context.Background(), "ghost@platform.test", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected generic ErrInvalidCredentials, got %v", err)
	}
	var ae *domain.AttemptsError
	if errors.As(err, &ae) {
		t.Fatalf("unknown email must not leak attempt bookkeeping")
	}
	if len(f.admins.locks) != 0 {
		t.Fatalf("no record must be created for unknown emails")
	}
}

func TestLogin_AdapterErrorDoesNotCount(t *testing.T) {
	f := newFixture(t)
	f.registerAdmin(t, "admin@platform.test", "Adm1n-Pass")
	f.creds.failWith = errors.New("connection reset")

	_, _, err := f.svc.LoginAdmin(context.Background(), "admin@platform.test", "Adm1n-Pass")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("adapter failure must be distinct from bad credentials")
	}
	if rec := f.admins.locks["admin@platform.test"]; rec.attempts != 0 {
		t.Fatalf("adapter failure must not mutate the counter, got %d", rec.attempts)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newFixture(t)
	f.registerAdmin(t, "admin@platform.test", "Adm1n-Pass")

	token, _, err := f.svc.LoginAdmin(context.Background(), "admin@platform.test", "Adm1n-Pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	revoker := f.svc.revoker.(*stubRevoker)
	if len(revoker.revoked) != 1 {
		t.Fatalf("expected one revoked token id, got %d", len(revoker.revoked))
	}
}

func TestLockout_ExpiredLockAdmitsAttempt(t *testing.T) {
	shops := newStubShopRepo()
	shops.locks["owner@shop.test"] = &lockRecord{
		attempts:     5,
		lockedUntil:  time.Now().Add(-time.Hour),
		lockDuration: 15 * time.Minute,
	}

	tracker := NewLockout(shops, domain.LockoutPolicy{Threshold: 5, LockDuration: 15 * time.Minute}, zerolog.Nop())
	if err := tracker.Check(context.Background(), "owner@shop.test"); err != nil {
		t.Fatalf("expired lock must not block: %v", err)
	}
}

func TestLockout_RemainingMinutesRoundsUp(t *testing.T) {
	shops := newStubShopRepo()
	shops.locks["owner@shop.test"] = &lockRecord{
		attempts:     5,
		lockedUntil:  time.Now().Add(-14*time.Minute - 30*time.Second),
		lockDuration: 15 * time.Minute,
	}

	tracker := NewLockout(shops, domain.LockoutPolicy{Threshold: 5, LockDuration: 15 * time.Minute}, zerolog.Nop())
	err := tracker.Check(context.Background(), "owner@shop.test")
	var locked *domain.LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %v", err)
	}
	if locked.RetryMinutes() != 1 {
		t.Fatalf("expected 1 minute remaining, got %d", locked.RetryMinutes())
	}
}
