package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

const collectionAttendance = "attendance"

// AttendanceRepository persists daily attendance marks. A mark is unique per
// (shopId, staffId, date) and re-marking a day replaces the previous value.
type AttendanceRepository struct {
	col *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(collectionAttendance)}
}

type attendanceDoc struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	ShopID    string                `bson:"shopId"`
	StaffID   string                `bson:"staffId"`
	Date      string                `bson:"date"`
	Mark      domain.AttendanceMark `bson:"mark"`
	CreatedAt int64                 `bson:"createdAt"`
}

func (d attendanceDoc) toDomain() *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:        d.ID.Hex(),
		ShopID:    d.ShopID,
		StaffID:   d.StaffID,
		Date:      d.Date,
		Mark:      d.Mark,
		CreatedAt: unixToTime(d.CreatedAt),
	}
}

func (r *AttendanceRepository) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"shopId":  record.ShopID,
		"staffId": record.StaffID,
		"date":    record.Date,
	}
	update := bson.M{
		"$set":         bson.M{"mark": record.Mark},
		"$setOnInsert": bson.M{"createdAt": record.CreatedAt.Unix()},
	}
	if _, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// ListByMonth returns all marks for a shop whose date falls in the given
// month ("2006-01"). Dates sort lexicographically, so a prefix range works.
func (r *AttendanceRepository) ListByMonth(ctx context.Context, shopID, month string) ([]*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"shopId": shopID,
		"date": bson.M{
			"$gte": month + "-01",
			"$lte": month + "-31",
		},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.AttendanceRecord
	for cur.Next(ctx) {
		var doc attendanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, doc.toDomain())
	}
	return records, cur.Err()
}

// EnsureIndexes creates the attendance collection indexes.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
