package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const collectionAdmins = "admins"

// AdminRepository persists platform administrator records.
type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins)}
}

type adminDoc struct {
	ID          string `bson:"_id"`
	Email       string `bson:"email"`
	Name        string `bson:"name,omitempty"`
	lockFields  `bson:",inline"`
	LastLoginAt int64 `bson:"lastLoginAt,omitempty"`
	CreatedAt   int64 `bson:"createdAt"`
}

func (d adminDoc) toDomain() *domain.AdminAccount {
	state := d.lockFields.toState()
	return &domain.AdminAccount{
		ID:             d.ID,
		Email:          d.Email,
		Name:           d.Name,
		FailedAttempts: state.FailedAttempts,
		LockedUntil:    state.LockedUntil,
		LockDuration:   state.LockDuration,
		LastLoginAt:    unixToTime(d.LastLoginAt),
		CreatedAt:      unixToTime(d.CreatedAt),
	}
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.AdminAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	if err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) LockState(ctx context.Context, email string) (*domain.LockState, error) {
	return lockStateByEmail(ctx, r.col, email)
}

func (r *AdminRepository) RecordFailedAttempt(ctx context.Context, email string, at time.Time) (int, error) {
	return recordFailedAttempt(ctx, r.col, email, at)
}

func (r *AdminRepository) Lock(ctx context.Context, email string, at time.Time, duration time.Duration) error {
	return lockAccount(ctx, r.col, email, at, duration)
}

func (r *AdminRepository) ClearFailures(ctx context.Context, email string, at time.Time) error {
	return clearFailures(ctx, r.col, email, at)
}

// EnsureIndexes creates the admins collection indexes.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
