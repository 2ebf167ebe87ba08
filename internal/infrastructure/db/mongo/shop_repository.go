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

const collectionShops = "shops"

// ShopRepository persists shop account records, including the failed-login
// bookkeeping consumed by the lockout tracker.
type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

type shopDoc struct {
	ID          string `bson:"_id"`
	Email       string `bson:"email"`
	ShopName    string `bson:"shopName"`
	Address     string `bson:"address,omitempty"`
	PhoneNumber string `bson:"phoneNumber,omitempty"`
	Status      string `bson:"status"`
	lockFields  `bson:",inline"`
	LastLoginAt int64 `bson:"lastLoginAt,omitempty"`
	CreatedAt   int64 `bson:"createdAt"`
	UpdatedAt   int64 `bson:"updatedAt"`
}

func (d shopDoc) toDomain() *domain.ShopAccount {
	state := d.lockFields.toState()
	return &domain.ShopAccount{
		ID:             d.ID,
		Email:          d.Email,
		ShopName:       d.ShopName,
		Address:        d.Address,
		PhoneNumber:    d.PhoneNumber,
		Status:         domain.AccountStatus(d.Status),
		FailedAttempts: state.FailedAttempts,
		LockedUntil:    state.LockedUntil,
		LockDuration:   state.LockDuration,
		LastLoginAt:    unixToTime(d.LastLoginAt),
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.ShopAccount) (*domain.ShopAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := shopDoc{
		ID:          shop.ID,
		Email:       strings.ToLower(shop.Email),
		ShopName:    shop.ShopName,
		Address:     shop.Address,
		PhoneNumber: shop.PhoneNumber,
		Status:      string(shop.Status),
		CreatedAt:   shop.CreatedAt.Unix(),
		UpdatedAt:   shop.UpdatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	return shop, nil
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*domain.ShopAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shopDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShopRepository) FindByEmail(ctx context.Context, email string) (*domain.ShopAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shopDoc
	if err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find shop by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.ShopAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer cur.Close(ctx)

	var shops []*domain.ShopAccount
	for cur.Next(ctx) {
		var doc shopDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode shop: %w", err)
		}
		shops = append(shops, doc.toDomain())
	}
	return shops, cur.Err()
}

func (r *ShopRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update shop status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *ShopRepository) LockState(ctx context.Context, email string) (*domain.LockState, error) {
	return lockStateByEmail(ctx, r.col, email)
}

func (r *ShopRepository) RecordFailedAttempt(ctx context.Context, email string, at time.Time) (int, error) {
	return recordFailedAttempt(ctx, r.col, email, at)
}

func (r *ShopRepository) Lock(ctx context.Context, email string, at time.Time, duration time.Duration) error {
	return lockAccount(ctx, r.col, email, at, duration)
}

func (r *ShopRepository) ClearFailures(ctx context.Context, email string, at time.Time) error {
	return clearFailures(ctx, r.col, email, at)
}

// EnsureIndexes creates the shops collection indexes.
func (r *ShopRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
