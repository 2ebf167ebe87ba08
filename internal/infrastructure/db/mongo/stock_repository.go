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

const collectionStock = "stock"

// StockRepository persists a shop's inventory items.
type StockRepository struct {
	col *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *StockRepository {
	return &StockRepository{col: db.Collection(collectionStock)}
}

type stockDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ShopID     string             `bson:"shopId"`
	Name       string             `bson:"name"`
	Category   string             `bson:"category,omitempty"`
	Quantity   int                `bson:"quantity"`
	UnitPrice  float64            `bson:"unitPrice"`
	LowStockAt int                `bson:"lowStockAt,omitempty"`
	CreatedAt  int64              `bson:"createdAt"`
	UpdatedAt  int64              `bson:"updatedAt"`
}

func (d stockDoc) toDomain() *domain.StockItem {
	return &domain.StockItem{
		ID:         d.ID.Hex(),
		ShopID:     d.ShopID,
		Name:       d.Name,
		Category:   d.Category,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		LowStockAt: d.LowStockAt,
		CreatedAt:  unixToTime(d.CreatedAt),
		UpdatedAt:  unixToTime(d.UpdatedAt),
	}
}

func (r *StockRepository) Create(ctx context.Context, item *domain.StockItem) (*domain.StockItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := stockDoc{
		ShopID:     item.ShopID,
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		LowStockAt: item.LowStockAt,
		CreatedAt:  item.CreatedAt.Unix(),
		UpdatedAt:  item.UpdatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert stock item: %w", err)
	}

	created := *item
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *StockRepository) FindByID(ctx context.Context, shopID, id string) (*domain.StockItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStockItemNotFound
	}

	var doc stockDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "shopId": shopID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStockItemNotFound
		}
		return nil, fmt.Errorf("find stock item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StockRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.StockItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"shopId": shopID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.StockItem
	for cur.Next(ctx) {
		var doc stockDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode stock item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *StockRepository) Update(ctx context.Context, item *domain.StockItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrStockItemNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "shopId": item.ShopID}, bson.M{"$set": bson.M{
		"name":       item.Name,
		"category":   item.Category,
		"quantity":   item.Quantity,
		"unitPrice":  item.UnitPrice,
		"lowStockAt": item.LowStockAt,
		"updatedAt":  item.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStockItemNotFound
	}
	return nil
}

// AdjustQuantity applies a relative change atomically, so concurrent sales
// and restocks cannot lose updates.
func (r *StockRepository) AdjustQuantity(ctx context.Context, shopID, id string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStockItemNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "shopId": shopID}, bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updatedAt": time.Now().Unix()},
	})
	if err != nil {
		return fmt.Errorf("adjust stock quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStockItemNotFound
	}
	return nil
}

func (r *StockRepository) Delete(ctx context.Context, shopID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStockItemNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "shopId": shopID})
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStockItemNotFound
	}
	return nil
}

// EnsureIndexes creates the stock collection indexes.
func (r *StockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "name", Value: 1}},
	})
	return err
}
