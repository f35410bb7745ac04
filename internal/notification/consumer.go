package notification

import (
	"context"
	"encoding/json"

	"worklane/internal/domain"
	"worklane/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeReviewEvents reads review-completed events and emails the record
// owner. Delivery failures are logged and the message is committed anyway:
// a notification is never worth replaying into a mail storm.
func ConsumeReviewEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	recipients domain.PrincipalSource,
	mailer Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.review")
	log.Info("review notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("review notification consumer stopped")
				return
			}
			log.Error("fetch review message failed", zap.Error(err))
			continue
		}

		var event events.ReviewCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode review event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		recipient, err := recipients.PrincipalByID(ctx, event.OwnerID)
		if err != nil {
			log.Warn("review event owner not found, skipping",
				zap.String("owner_id", event.OwnerID),
				zap.String("entity_id", event.EntityID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailer.SendReviewNotification(recipient.Email, recipient.Name, event); err != nil {
			log.Error("send review notification failed",
				zap.String("owner_id", event.OwnerID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit review message failed", zap.Error(err))
		}
	}
}
