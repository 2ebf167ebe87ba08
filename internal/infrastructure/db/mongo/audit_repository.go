package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

// AuditRepository persists the security audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	Type      domain.AuditEventType `bson:"type"`
	Email     string                `bson:"email"`
	Actor     string                `bson:"actor,omitempty"`
	Detail    string                `bson:"detail,omitempty"`
	Timestamp int64                 `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		Type:      event.Type,
		Email:     event.Email,
		Actor:     event.Actor,
		Detail:    event.Detail,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the audit collection indexes.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
