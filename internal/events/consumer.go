package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/config"
	"github.com/dealflow-labs/sponsorship-board/internal/notification"
)

const groupName = "notifications"

var errEmptyTitle = errors.New("notification without title")

type Notifier interface {
	AddNotification(d notification.Draft) notification.Notification
}

type NotificationEvent struct {
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Severity  string  `json:"severity"`
	ActionURL *string `json:"actionUrl,omitempty"`
}

// Consumer turns notification events reported by other services into store
// notifications.
type Consumer struct {
	conn     *nats.Conn
	notifier Notifier
	subject  string
}

func NewConsumer(nc *nats.Conn, n Notifier, prefix string) *Consumer {
	return &Consumer{
		conn:     nc,
		notifier: n,
		subject:  NotificationSubject(prefix),
	}
}

func NotificationSubject(prefix string) string {
	return fmt.Sprintf("%s.notifications", prefix)
}

func (c *Consumer) Start(ctx context.Context) error {
	group := config.GenerateGroupName(groupName)
	sub, err := c.conn.QueueSubscribe(c.subject, group, c.handle)
	if err != nil {
		return fmt.Errorf("subscribe for %s/%s: %w", group, c.subject, err)
	}

	log.Info().Str("subject", c.subject).Msg("notification consumer is started")

	<-ctx.Done()

	if err = sub.Drain(); err != nil {
		log.Error().Err(err).Msg("drain notification consumer")
	}

	return nil
}

func (c *Consumer) handle(msg *nats.Msg) {
	if err := c.process(msg.Data); err != nil {
		log.Warn().Err(err).Str("subject", msg.Subject).Msg("skip notification event")
	}
}

func (c *Consumer) process(data []byte) error {
	var event NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	if event.Title == "" {
		return errEmptyTitle
	}

	severity := notification.Severity(event.Severity)
	if !severity.Valid() {
		log.Warn().Str("severity", event.Severity).Msg("unknown notification severity, using info")
		severity = notification.SeverityInfo
	}

	c.notifier.AddNotification(notification.Draft{
		Title:     event.Title,
		Message:   event.Message,
		Type:      severity,
		ActionURL: event.ActionURL,
	})

	return nil
}
