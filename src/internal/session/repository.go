package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"sentra-identity-svc/src/clients"
	"sentra-identity-svc/src/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, sessionID, tenantID string) (*models.Session, error)
	UpdateActivity(ctx context.Context, sessionID string, at time.Time) error
	Save(ctx context.Context, session *models.Session) error
	ListActiveByUser(ctx context.Context, userID, tenantID string, now time.Time) ([]*models.Session, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) GetByID(ctx context.Context, sessionID, tenantID string) (*models.Session, error) {
	var session models.Session
	filter := bson.M{
		"session_id": sessionID,
		"tenant_id":  tenantID,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get session")
		return nil, models.ErrDatabaseQuery
	}

	return &session, nil
}

// UpdateActivity bumps last_activity_at. Concurrent bumps for the same
// session race harmlessly since the timestamp only moves forward;
// last-writer-wins is acceptable here and no version check is done.
func (r *repository) UpdateActivity(ctx context.Context, sessionID string, at time.Time) error {
	filter := bson.M{"session_id": sessionID}

	update := bson.M{
		"$set": bson.M{
			"last_activity_at": at,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to update session activity")
		return models.ErrSessionUpdating
	}

	return nil
}

// Save persists any other session mutation with a compare-and-swap on the
// version field, so status transitions never lose concurrent updates.
func (r *repository) Save(ctx context.Context, session *models.Session) error {
	filter := bson.M{
		"session_id": session.SessionID,
		"tenant_id":  session.TenantID,
		"version":    session.Version,
	}

	next := *session
	next.Version = session.Version + 1

	update := bson.M{"$set": &next}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", session.SessionID).Error("Failed to save session")
		return models.ErrSessionUpdating
	}
	if result.MatchedCount == 0 {
		logrus.WithFields(logrus.Fields{
			"session_id": session.SessionID,
			"version":    session.Version,
		}).Warn("Session version conflict on save")
		return models.ErrVersionConflict
	}

	session.Version = next.Version
	return nil
}

func (r *repository) ListActiveByUser(ctx context.Context, userID, tenantID string, now time.Time) ([]*models.Session, error) {
	filter := bson.M{
		"user_id":    userID,
		"tenant_id":  tenantID,
		"status":     models.SessionActive,
		"expires_at": bson.M{"$gt": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list active sessions")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var sessions []*models.Session
	for cursor.Next(ctx) {
		var session models.Session
		if err := cursor.Decode(&session); err != nil {
			logrus.WithError(err).Error("Failed to decode session")
			continue
		}
		sessions = append(sessions, &session)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return sessions, nil
}
