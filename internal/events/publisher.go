package events

import (
	"context"

	"ideaforge/internal/domain/workflow"
	"ideaforge/internal/metrics"
	"ideaforge/pkg/errors"
	"ideaforge/pkg/logger"
)

// Producer is the transport the publisher writes to (kafka.Producer in production)
type Producer interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}

// WorkflowCompleted is the payload of a workflow.completed event
type WorkflowCompleted struct {
	BaseEvent
	workflow.CompletedEvent
}

// Publisher publishes workflow events to Kafka
type Publisher struct {
	producer Producer
	topic    string
	log      *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(producer Producer, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		log:      logger.Get().With("component", "event_publisher"),
	}
}

// PublishWorkflowCompleted publishes a summary of a completed run keyed by the workflow key
func (p *Publisher) PublishWorkflowCompleted(ctx context.Context, r *workflow.Result) error {
	if r == nil || r.CurrentStep != workflow.StepCompleted {
		return errors.Wrap(errors.ErrInvalidInput, "workflow not completed")
	}

	event := WorkflowCompleted{
		BaseEvent:      NewBaseEvent(TypeWorkflowCompleted),
		CompletedEvent: newCompletedEvent(r),
	}

	err := p.producer.Publish(ctx, p.topic, event.Key, event)
	metrics.RecordEvent(p.topic, err)
	if err != nil {
		return errors.Wrap(err, "publish workflow completed")
	}

	p.log.Debugw("published workflow event", "key", event.Key, "topic", p.topic)
	return nil
}

func newCompletedEvent(r *workflow.Result) workflow.CompletedEvent {
	e := workflow.CompletedEvent{
		Key:           r.Key(),
		CompanyName:   SanitizeUTF8(r.CompanyName),
		IdeaTitle:     SanitizeUTF8(r.IdeaTitle),
		QuestionCount: len(r.DevelopmentQuestions),
	}
	if r.ResourceEstimation != nil {
		e.TeamRoles = len(r.ResourceEstimation.TeamResources)
	}
	if r.IdeaResearch != nil {
		e.Workable = r.IdeaResearch.Workability.Verdict
	}
	if r.CompletedAt != nil {
		e.CompletedAt = r.CompletedAt.Unix()
	}
	return e
}
