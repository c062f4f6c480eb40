package clients

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/models"
)

// ActivityPublisher pushes security activity messages to RabbitMQ.
// Audit formatting and storage belong to the consumer on the other side
// of the exchange; publishing is fire-and-forget from the caller's view.
type ActivityPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

func NewActivityPublisher(cfg *config.Configuration, channel *amqp.Channel) *ActivityPublisher {
	return &ActivityPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

// PublishActivity publishes a security activity message.
func (p *ActivityPublisher) PublishActivity(userID, sessionID, tenantID, serviceName, action string) error {
	return p.PublishActivityWithDetails(userID, sessionID, tenantID, serviceName, action, "", "")
}

// PublishActivityWithDetails publishes a security activity message with IP and UserAgent.
func (p *ActivityPublisher) PublishActivityWithDetails(userID, sessionID, tenantID, serviceName, action, ipAddress, userAgent string) error {
	message := models.ActivityMessage{
		UserID:      userID,
		SessionID:   sessionID,
		TenantID:    tenantID,
		ServiceName: serviceName,
		Action:      action,
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Timestamp:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal activity message: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish activity message")
		return fmt.Errorf("failed to publish activity message: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"session_id":  sessionID,
		"tenant_id":   tenantID,
		"service":     serviceName,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Activity message published")

	return nil
}
