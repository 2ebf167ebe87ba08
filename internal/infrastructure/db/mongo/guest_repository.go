package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const collectionGuests = "guests"

// GuestRepository persists guest login markers, keyed by identity id.
type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection(collectionGuests)}
}

type guestDoc struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	ShopID    string `bson:"shopId"`
	CreatedAt int64  `bson:"createdAt"`
}

func (r *GuestRepository) Create(ctx context.Context, guest *domain.GuestAccount) (*domain.GuestAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := guestDoc{
		ID:        guest.ID,
		Email:     guest.Email,
		ShopID:    guest.ShopID,
		CreatedAt: guest.CreatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	return guest, nil
}

func (r *GuestRepository) FindByIdentity(ctx context.Context, identityID string) (*domain.GuestAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc guestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": identityID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return &domain.GuestAccount{
		ID:        doc.ID,
		Email:     doc.Email,
		ShopID:    doc.ShopID,
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}
