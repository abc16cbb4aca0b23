package fcm

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client wraps Firebase Cloud Messaging.
type Client struct {
	messagingClient *messaging.Client
	log             *zap.Logger
}

// NewClient creates an FCM client from a service account credentials file.
func NewClient(ctx context.Context, credentialsFile string, log *zap.Logger) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting messaging client")
	}

	return &Client{
		messagingClient: messagingClient,
		log:             log.Named("fcm"),
	}, nil
}

// NotificationData is the payload of one push notification.
type NotificationData struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendToDevices sends one notification to many device tokens and returns the
// tokens that were rejected.
func (c *Client) SendToDevices(ctx context.Context, tokens []string, n NotificationData) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: n.Title,
				Body:  n.Body,
				Icon:  "/icon-192.svg",
			},
		},
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, errors.Wrap(err, "sending multicast message")
	}

	var failed []string
	for i, resp := range response.Responses {
		if !resp.Success {
			failed = append(failed, tokens[i])
			c.log.Debug("token rejected", zap.Int("index", i), zap.Error(resp.Error))
		}
	}
	c.log.Info("multicast sent",
		zap.Int("success", response.SuccessCount),
		zap.Int("failure", response.FailureCount))

	return failed, nil
}
