package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const (
	collectionExpenses          = "expenses"
	collectionExpenseCategories = "expenseCategories"
)

// ExpenseRepository persists expenses and their categories.
type ExpenseRepository struct {
	expenses   *mongo.Collection
	categories *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{
		expenses:   db.Collection(collectionExpenses),
		categories: db.Collection(collectionExpenseCategories),
	}
}

type categoryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ShopID    string             `bson:"shopId"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"createdAt"`
}

type expenseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ShopID      string             `bson:"shopId"`
	CategoryID  string             `bson:"categoryId,omitempty"`
	Description string             `bson:"description"`
	Amount      float64            `bson:"amount"`
	ExpenseDate int64              `bson:"expenseDate"`
	CreatedAt   int64              `bson:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt"`
}

func (d expenseDoc) toDomain() *domain.Expense {
	return &domain.Expense{
		ID:          d.ID.Hex(),
		ShopID:      d.ShopID,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		Amount:      d.Amount,
		ExpenseDate: unixToTime(d.ExpenseDate),
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *ExpenseRepository) CreateCategory(ctx context.Context, category *domain.ExpenseCategory) (*domain.ExpenseCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := categoryDoc{
		ShopID:    category.ShopID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt.Unix(),
	}
	res, err := r.categories.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense category: %w", err)
	}

	created := *category
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *ExpenseRepository) ListCategories(ctx context.Context, shopID string) ([]*domain.ExpenseCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{"shopId": shopID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer cur.Close(ctx)

	var categories []*domain.ExpenseCategory
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense category: %w", err)
		}
		categories = append(categories, &domain.ExpenseCategory{
			ID:        doc.ID.Hex(),
			ShopID:    doc.ShopID,
			Name:      doc.Name,
			CreatedAt: unixToTime(doc.CreatedAt),
		})
	}
	return categories, cur.Err()
}

func (r *ExpenseRepository) DeleteCategory(ctx context.Context, shopID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCategoryNotFound
	}

	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": oid, "shopId": shopID})
	if err != nil {
		return fmt.Errorf("delete expense category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := expenseDoc{
		ShopID:      expense.ShopID,
		CategoryID:  expense.CategoryID,
		Description: expense.Description,
		Amount:      expense.Amount,
		ExpenseDate: expense.ExpenseDate.Unix(),
		CreatedAt:   expense.CreatedAt.Unix(),
		UpdatedAt:   expense.UpdatedAt.Unix(),
	}
	res, err := r.expenses.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	created := *expense
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = id.Hex()
	}
	return &created, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, shopID, id string) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	var doc expenseDoc
	if err := r.expenses.FindOne(ctx, bson.M{"_id": oid, "shopId": shopID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByShop returns expenses newest-first. When the server cannot apply the
// sort (e.g. a missing index), results are re-sorted client-side, mirroring
// how callers of the document service are expected to behave.
func (r *ExpenseRepository) ListByShop(ctx context.Context, shopID, categoryID string) ([]*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"shopId": shopID}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}

	cur, err := r.expenses.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "expenseDate", Value: -1}}))
	if err != nil {
		// Retry unsorted and order client-side.
		cur, err = r.expenses.Find(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
	}
	defer cur.Close(ctx)

	var expenses []*domain.Expense
	for cur.Next(ctx) {
		var doc expenseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
	})
	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(expense.ID)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	res, err := r.expenses.UpdateOne(ctx, bson.M{"_id": oid, "shopId": expense.ShopID}, bson.M{"$set": bson.M{
		"categoryId":  expense.CategoryID,
		"description": expense.Description,
		"amount":      expense.Amount,
		"expenseDate": expense.ExpenseDate.Unix(),
		"updatedAt":   expense.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, shopID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	res, err := r.expenses.DeleteOne(ctx, bson.M{"_id": oid, "shopId": shopID})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// EnsureIndexes creates the expense collection indexes.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.expenses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "expenseDate", Value: -1}}},
		{Keys: bson.D{{Key: "shopId", Value: 1}, {Key: "categoryId", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "shopId", Value: 1}},
	})
	return err
}
