// Package eventbridge publishes domain events to an EventBridge bus. The
// event type becomes the detail-type, so consumers subscribe by rule without
// parsing the payload.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"pulse-backend/application/ports"
	"pulse-backend/domain/events"
	appErrors "pulse-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// maxEntriesPerRequest is the PutEvents ceiling
const maxEntriesPerRequest = 10

// Publisher implements ports.EventBus on EventBridge
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventBus {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single domain event to the bus
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends events to the bus in PutEvents-sized chunks. A partial
// failure within a request is surfaced as an error so the caller can decide
// whether to retry; events carry stable identifiers, so consumers tolerate
// duplicates.
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if len(batch) == 0 {
		return nil
	}

	for start := 0; start < len(batch); start += maxEntriesPerRequest {
		end := start + maxEntriesPerRequest
		if end > len(batch) {
			end = len(batch)
		}

		entries := make([]types.PutEventsRequestEntry, 0, end-start)
		for _, event := range batch[start:end] {
			detail, err := json.Marshal(event)
			if err != nil {
				return appErrors.Wrapf(err, "failed to marshal event %s", event.GetEventType())
			}
			entries = append(entries, types.PutEventsRequestEntry{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(events.SourceBackend),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.GetTimestamp()),
			})
		}

		result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
			Entries: entries,
		})
		if err != nil {
			p.logger.Error("Failed to publish events",
				zap.Error(err),
				zap.Int("count", len(entries)),
			)
			return appErrors.Wrap(err, "failed to publish events")
		}

		if result.FailedEntryCount > 0 {
			for _, entry := range result.Entries {
				if entry.ErrorCode != nil {
					p.logger.Error("Event entry rejected",
						zap.String("errorCode", aws.ToString(entry.ErrorCode)),
						zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
					)
				}
			}
			return appErrors.NewInternalError(
				fmt.Sprintf("%d event entries failed to publish", result.FailedEntryCount))
		}
	}

	p.logger.Debug("Published events", zap.Int("count", len(batch)))
	return nil
}
