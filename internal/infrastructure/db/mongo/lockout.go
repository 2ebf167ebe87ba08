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

// Failed-login bookkeeping shared by the shops and admins collections. Field
// names match the original documents: lockedUntil holds the instant the lock
// was applied and lockDuration its length in minutes.
type lockFields struct {
	FailedAttempts int   `bson:"failedLoginAttempts"`
	LockedUntil    int64 `bson:"lockedUntil,omitempty"`
	LockDuration   int   `bson:"lockDuration,omitempty"`
}

func (f lockFields) toState() *domain.LockState {
	state := &domain.LockState{
		FailedAttempts: f.FailedAttempts,
		LockDuration:   time.Duration(f.LockDuration) * time.Minute,
	}
	if f.LockedUntil > 0 {
		state.LockedUntil = time.Unix(f.LockedUntil, 0).UTC()
	}
	return state
}

func lockStateByEmail(ctx context.Context, col *mongo.Collection, email string) (*domain.LockState, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var fields lockFields
	err := col.FindOne(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		options.FindOne().SetProjection(bson.M{
			"failedLoginAttempts": 1,
			"lockedUntil":         1,
			"lockDuration":        1,
		}),
	).Decode(&fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lock state: %w", err)
	}
	return fields.toState(), nil
}

// recordFailedAttempt increments the counter atomically and returns the new
// value, so concurrent failures cannot lose an increment.
func recordFailedAttempt(ctx context.Context, col *mongo.Collection, email string, at time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var fields lockFields
	err := col.FindOneAndUpdate(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{
			"$inc": bson.M{"failedLoginAttempts": 1},
			"$set": bson.M{"lastFailedLoginAt": at.Unix()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("record failed attempt: %w", err)
	}
	return fields.FailedAttempts, nil
}

func lockAccount(ctx context.Context, col *mongo.Collection, email string, at time.Time, duration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{
			"lockedUntil":  at.Unix(),
			"lockDuration": int(duration / time.Minute),
		}},
	)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func clearFailures(ctx context.Context, col *mongo.Collection, email string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{
			"$set":   bson.M{"failedLoginAttempts": 0, "lastLoginAt": at.Unix()},
			"$unset": bson.M{"lockedUntil": "", "lockDuration": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("clear failed attempts: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
