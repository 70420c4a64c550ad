package service

import (
	"context"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryCache is a read-through cache for the category listing
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	StoreCategories(ctx context.Context, categories []domain.Category) error
}

// Events published when the question bank changes
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)

// EventPublisher notifies live subscribers about question-bank changes
type EventPublisher interface {
	Publish(eventType string, category int, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, int, any) {}

// NopPublisher discards every event
var NopPublisher EventPublisher = nopPublisher{}
