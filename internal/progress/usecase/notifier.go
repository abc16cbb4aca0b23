package usecase

import (
	"context"
	"strconv"

	authdomain "buddy-backend/internal/auth/domain"
	"buddy-backend/internal/progress/domain"
	"buddy-backend/pkg/fcm"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TokenStore is the part of the device token repository the push notifier needs.
type TokenStore interface {
	GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, token string) error
}

// Pusher sends push notifications to device tokens.
type Pusher interface {
	SendToDevices(ctx context.Context, tokens []string, n fcm.NotificationData) ([]string, error)
}

// PushNotifier delivers milestones as push notifications to every registered device.
type PushNotifier struct {
	tokens TokenStore
	pusher Pusher
	log    *zap.Logger
}

func NewPushNotifier(tokens TokenStore, pusher Pusher, log *zap.Logger) *PushNotifier {
	return &PushNotifier{tokens: tokens, pusher: pusher, log: log.Named("push")}
}

func (n *PushNotifier) NotifyMilestone(ctx context.Context, userID string, m domain.Milestone) error {
	tokens, err := n.tokens.GetTokensByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "loading device tokens")
	}
	if len(tokens) == 0 {
		n.log.Debug("no devices registered", zap.String("user_id", userID))
		return nil
	}

	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}

	failed, err := n.pusher.SendToDevices(ctx, values, fcm.NotificationData{
		Title: m.Title,
		Body:  m.Message,
		Data: map[string]string{
			"type":         "streak_milestone",
			"streak":       strconv.Itoa(m.Streak),
			"click_action": "/progress",
		},
	})
	if err != nil {
		return errors.Wrap(err, "sending push")
	}

	for _, token := range failed {
		if err := n.tokens.DeleteToken(ctx, token); err != nil {
			n.log.Warn("removing rejected token failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// LogNotifier records milestones in the log. Used when push is not configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("milestones")}
}

func (n *LogNotifier) NotifyMilestone(ctx context.Context, userID string, m domain.Milestone) error {
	n.log.Info("streak milestone",
		zap.String("user_id", userID),
		zap.Int("streak", m.Streak),
		zap.String("title", m.Title))
	return nil
}
