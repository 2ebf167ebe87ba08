package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const collectionStaff = "staff"

// StaffRepository persists staff records under their shop.
type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{col: db.Collection(collectionStaff)}
}

type staffDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	ShopID      string               `bson:"shopId"`
	IdentityID  string               `bson:"identityId"`
	Name        string               `bson:"name"`
	Email       string               `bson:"email"`
	RoleLabel   string               `bson:"roleLabel,omitempty"`
	Permissions domain.PermissionSet `bson:"permissions"`
	MonthlyPay  float64              `bson:"monthlyPay,omitempty"`
	CreatedAt   int64                `bson:"createdAt"`
	UpdatedAt   int64                `bson:"updatedAt"`
}

func (d staffDoc) toDomain() *domain.StaffRecord {
	return &domain.StaffRecord{
		ID:          d.ID.Hex(),
		ShopID:      d.ShopID,
		IdentityID:  d.IdentityID,
		Name:        d.Name,
		Email:       d.Email,
		RoleLabel:   d.RoleLabel,
		Permissions: d.Permissions,
		MonthlyPay:  d.MonthlyPay,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.StaffRecord) (*domain.StaffRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := staffDoc{
		ShopID:      staff.ShopID,
		IdentityID:  staff.IdentityID,
		Name:        staff.Name,
		Email:       staff.Email,
		RoleLabel:   staff.RoleLabel,
		Permissions: staff.Permissions,
		MonthlyPay:  staff.MonthlyPay,
		CreatedAt:   staff.CreatedAt.Unix(),
		UpdatedAt:   staff.UpdatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert staff: %w", err)
	}

	created := *staff
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, shopID, id string) (*domain.StaffRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStaffNotFound
	}

	var doc staffDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "shopId": shopID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("find staff: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StaffRepository) FindByIdentity(ctx context.Context, identityID string) (*domain.StaffRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc staffDoc
	if err := r.col.FindOne(ctx, bson.M{"identityId": identityID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("find staff by identity: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StaffRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.StaffRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"shopId": shopID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.StaffRecord
	for cur.Next(ctx) {
		var doc staffDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode staff: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, cur.Err()
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.StaffRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(staff.ID)
	if err != nil {
		return domain.ErrStaffNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "shopId": staff.ShopID}, bson.M{"$set": bson.M{
		"name":        staff.Name,
		"roleLabel":   staff.RoleLabel,
		"permissions": staff.Permissions,
		"monthlyPay":  staff.MonthlyPay,
		"updatedAt":   staff.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

func (r *StaffRepository) Delete(ctx context.Context, shopID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStaffNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "shopId": shopID})
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

// EnsureIndexes creates the staff collection indexes.
func (r *StaffRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shopId", Value: 1}}},
		{Keys: bson.D{{Key: "identityId", Value: 1}}},
	})
	return err
}
