package user

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/models"
)

type Repository interface {
	GetByEmail(ctx context.Context, email, tenantID string) (*User, error)
	GetByID(ctx context.Context, userID, tenantID string) (*User, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	collection := mongoClient.Database.Collection(collectionName)
	return &userRepository{collection: collection}
}

func (r *userRepository) GetByEmail(ctx context.Context, email, tenantID string) (*User, error) {
	filter := bson.M{
		"email":      email,
		"tenant_id":  tenantID,
		"deleted_at": bson.M{"$exists": false},
	}
	return r.findOne(ctx, filter)
}

func (r *userRepository) GetByID(ctx context.Context, userID, tenantID string) (*User, error) {
	filter := bson.M{
		"user_id":    userID,
		"tenant_id":  tenantID,
		"deleted_at": bson.M{"$exists": false},
	}
	return r.findOne(ctx, filter)
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		logrus.WithError(err).Error("Failed to get user")
		return nil, models.ErrDatabaseQuery
	}

	return &user, nil
}
