package trigger

import (
	"context"
	"time"

	"buddy-backend/internal/digest/domain"

	"cloud.google.com/go/pubsub"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Runner runs one digest pass.
type Runner interface {
	Run(ctx context.Context) (*domain.Report, error)
}

// PubSubTrigger runs the dispatcher once for every message published to the
// digest topic, e.g. by an hourly Cloud Scheduler job.
type PubSubTrigger struct {
	client    *pubsub.Client
	runner    Runner
	topicName string
	subName   string
	log       *zap.Logger
}

func NewPubSubTrigger(ctx context.Context, projectID, topicName, credentialsFile string, runner Runner, log *zap.Logger) (*PubSubTrigger, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating pubsub client")
	}

	return newWithClient(client, topicName, runner, log), nil
}

func newWithClient(client *pubsub.Client, topicName string, runner Runner, log *zap.Logger) *PubSubTrigger {
	return &PubSubTrigger{
		client:    client,
		runner:    runner,
		topicName: topicName,
		subName:   topicName + "-sub",
		log:       log.Named("pubsub"),
	}
}

// Start blocks receiving messages until ctx is cancelled.
func (t *PubSubTrigger) Start(ctx context.Context) error {
	sub, err := t.subscription(ctx)
	if err != nil {
		return err
	}
	// One dispatch at a time; the dispatcher serializes runs anyway.
	sub.ReceiveSettings.MaxOutstandingMessages = 1

	t.log.Info("listening for digest triggers", zap.String("subscription", t.subName))
	err = sub.Receive(ctx, t.handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "receiving digest triggers")
	}
	return nil
}

func (t *PubSubTrigger) Close() error {
	return t.client.Close()
}

func (t *PubSubTrigger) subscription(ctx context.Context) (*pubsub.Subscription, error) {
	sub := t.client.Subscription(t.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "checking subscription")
	}
	if exists {
		return sub, nil
	}

	topic := t.client.Topic(t.topicName)
	topicExists, err := topic.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "checking topic")
	}
	if !topicExists {
		return nil, errors.Errorf("topic %s does not exist", t.topicName)
	}

	sub, err = t.client.CreateSubscription(ctx, t.subName, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: 10 * time.Minute,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating subscription")
	}
	t.log.Info("created subscription", zap.String("subscription", t.subName))
	return sub, nil
}

// handle acks every message after one run, including failed runs.
func (t *PubSubTrigger) handle(ctx context.Context, msg *pubsub.Message) {
	defer msg.Ack()

	log := t.log.With(zap.String("message_id", msg.ID))
	report, err := t.runner.Run(ctx)
	if err != nil {
		log.Error("triggered digest run failed", zap.Error(err))
		return
	}
	log.Info("triggered digest run done",
		zap.Int("digests_sent", report.DigestsSent),
		zap.Int("total_users", report.TotalUsers))
}
