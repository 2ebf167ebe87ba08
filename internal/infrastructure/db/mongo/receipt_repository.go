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

const collectionReceipts = "receipts"

// ReceiptRepository persists receipts.
type ReceiptRepository struct {
	col *mongo.Collection
}

func NewReceiptRepository(db *mongo.Database) *ReceiptRepository {
	return &ReceiptRepository{col: db.Collection(collectionReceipts)}
}

type receiptItemDoc struct {
	Name      string  `bson:"name"`
	Quantity  int     `bson:"quantity"`
	UnitPrice float64 `bson:"unitPrice"`
}

type receiptDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ReceiptNumber string             `bson:"receiptNumber"`
	ShopID        string             `bson:"shopId"`
	CustomerName  string             `bson:"customerName,omitempty"`
	Items         []receiptItemDoc   `bson:"items"`
	Total         float64            `bson:"total"`
	CreatedBy     string             `bson:"createdBy"`
	CreatedAt     int64              `bson:"createdAt"`
}

func (d receiptDoc) toDomain() *domain.Receipt {
	items := make([]domain.ReceiptItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = domain.ReceiptItem{Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	return &domain.Receipt{
		ID:            d.ID.Hex(),
		ReceiptNumber: d.ReceiptNumber,
		ShopID:        d.ShopID,
		CustomerName:  d.CustomerName,
		Items:         items,
		Total:         d.Total,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     unixToTime(d.CreatedAt),
	}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	items := make([]receiptItemDoc, len(receipt.Items))
	for i, item := range receipt.Items {
		items[i] = receiptItemDoc{Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	doc := receiptDoc{
		ReceiptNumber: receipt.ReceiptNumber,
		ShopID:        receipt.ShopID,
		CustomerName:  receipt.CustomerName,
		Items:         items,
		Total:         receipt.Total,
		CreatedBy:     receipt.CreatedBy,
		CreatedAt:     receipt.CreatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert receipt: %w", err)
	}

	created := *receipt
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *ReceiptRepository) FindByID(ctx context.Context, shopID, id string) (*domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReceiptNotFound
	}

	var doc receiptDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "shopId": shopID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("find receipt: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReceiptRepository) ListByShop(ctx context.Context, shopID string) ([]*domain.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"shopId": shopID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer cur.Close(ctx)

	var receipts []*domain.Receipt
	for cur.Next(ctx) {
		var doc receiptDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode receipt: %w", err)
		}
		receipts = append(receipts, doc.toDomain())
	}
	return receipts, cur.Err()
}

// EnsureIndexes creates the receipts collection indexes.
func (r *ReceiptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "receiptNumber", Value: 1}}},
	})
	return err
}
