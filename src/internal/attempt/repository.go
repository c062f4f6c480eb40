package attempt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/models"
)

// Repository is the append-only login attempt ledger. Records are written
// once by the login flow and never mutated afterwards.
type Repository interface {
	Insert(ctx context.Context, attempt *models.LoginAttempt) error
	FindByUser(ctx context.Context, userID, tenantID string, filter models.AttemptFilter) ([]*models.LoginAttempt, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewAttemptRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) Insert(ctx context.Context, attempt *models.LoginAttempt) error {
	if attempt.AttemptID == "" {
		attempt.AttemptID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, attempt)
	if err != nil {
		logrus.WithError(err).WithField("user_id", attempt.UserID).Error("Failed to insert login attempt")
		return models.ErrDatabaseInsert
	}

	return nil
}

func (r *repository) FindByUser(ctx context.Context, userID, tenantID string, filter models.AttemptFilter) ([]*models.LoginAttempt, error) {
	query := bson.M{
		"user_id":   userID,
		"tenant_id": tenantID,
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CreatedAfter != nil {
		query["created_at"] = bson.M{"$gte": *filter.CreatedAfter}
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if filter.Limit > 0 {
		opts = opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to find login attempts")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var attempts []*models.LoginAttempt
	for cursor.Next(ctx) {
		var a models.LoginAttempt
		if err := cursor.Decode(&a); err != nil {
			logrus.WithError(err).Error("Failed to decode login attempt")
			continue
		}
		attempts = append(attempts, &a)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return attempts, nil
}
