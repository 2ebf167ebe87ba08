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

const collectionPurchases = "purchases"

// PurchaseRepository persists supplier purchase orders.
type PurchaseRepository struct {
	col *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{col: db.Collection(collectionPurchases)}
}

type purchaseDoc struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	ShopID       string                `bson:"shopId"`
	Supplier     string                `bson:"supplier"`
	StockItemID  string                `bson:"stockItemId,omitempty"`
	ItemName     string                `bson:"itemName"`
	Quantity     int                   `bson:"quantity"`
	UnitCost     float64               `bson:"unitCost"`
	Status       domain.PurchaseStatus `bson:"status"`
	PurchaseDate int64                 `bson:"purchaseDate"`
	CreatedAt    int64                 `bson:"createdAt"`
	UpdatedAt    int64                 `bson:"updatedAt"`
}

func (d purchaseDoc) toDomain() *domain.Purchase {
	return &domain.Purchase{
		ID:           d.ID.Hex(),
		ShopID:       d.ShopID,
		Supplier:     d.Supplier,
		StockItemID:  d.StockItemID,
		ItemName:     d.ItemName,
		Quantity:     d.Quantity,
		UnitCost:     d.UnitCost,
		Status:       d.Status,
		PurchaseDate: unixToTime(d.PurchaseDate),
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := purchaseDoc{
		ShopID:       purchase.ShopID,
		Supplier:     purchase.Supplier,
		StockItemID:  purchase.StockItemID,
		ItemName:     purchase.ItemName,
		Quantity:     purchase.Quantity,
		UnitCost:     purchase.UnitCost,
		Status:       purchase.Status,
		PurchaseDate: purchase.PurchaseDate.Unix(),
		CreatedAt:    purchase.CreatedAt.Unix(),
		UpdatedAt:    purchase.UpdatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}

	created := *purchase
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *PurchaseRepository) FindByID(ctx context.Context, shopID, id string) (*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPurchaseNotFound
	}

	var doc purchaseDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "shopId": shopID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PurchaseRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"shopId": shopID}, options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer cur.Close(ctx)

	var purchases []*domain.Purchase
	for cur.Next(ctx) {
		var doc purchaseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode purchase: %w", err)
		}
		purchases = append(purchases, doc.toDomain())
	}
	return purchases, cur.Err()
}

func (r *PurchaseRepository) Update(ctx context.Context, purchase *domain.Purchase) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(purchase.ID)
	if err != nil {
		return domain.ErrPurchaseNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "shopId": purchase.ShopID}, bson.M{"$set": bson.M{
		"supplier":     purchase.Supplier,
		"stockItemId":  purchase.StockItemID,
		"itemName":     purchase.ItemName,
		"quantity":     purchase.Quantity,
		"unitCost":     purchase.UnitCost,
		"status":       purchase.Status,
		"purchaseDate": purchase.PurchaseDate.Unix(),
		"updatedAt":    purchase.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

// EnsureIndexes creates the purchases collection indexes.
func (r *PurchaseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "purchaseDate", Value: -1}}},
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}
