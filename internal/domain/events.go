package domain

import (
	"context"
	"time"
)

const (
	EventContentPublished = "content.published"
	EventContentUpdated   = "content.updated"
	EventReactionCreated  = "reaction.created"
	EventReactionDeleted  = "reaction.deleted"
)

// Event 领域事件，payload 是变更后的聚合快照加操作者，
// 投递通道（消息总线 topic）由外部决定
type Event interface {
	EventName() string
}

// ContentSnapshot 事件载荷里的聚合快照
type ContentSnapshot struct {
	ID          string        `json:"id"`
	Type        ContentType   `json:"type"`
	Status      ContentStatus `json:"status"`
	CreatedBy   string        `json:"createdBy"`
	Title       string        `json:"title,omitempty"`
	GroupIDs    []string      `json:"groupIds"`
	SeriesIDs   []string      `json:"seriesIds,omitempty"`
	TagIDs      []string      `json:"tagIds,omitempty"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
}

type ReactionSnapshot struct {
	ID           string         `json:"id"`
	Target       ReactionTarget `json:"target"`
	TargetID     string         `json:"targetId"`
	ReactionName string         `json:"reactionName"`
	CreatedBy    string         `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type ContentPublishedEvent struct {
	Content ContentSnapshot `json:"content"`
	ActorID string          `json:"actorId"`
}

func (ContentPublishedEvent) EventName() string { return EventContentPublished }

type ContentUpdatedEvent struct {
	Content ContentSnapshot `json:"content"`
	ActorID string          `json:"actorId"`
}

func (ContentUpdatedEvent) EventName() string { return EventContentUpdated }

type ReactionCreatedEvent struct {
	Reaction ReactionSnapshot `json:"reaction"`
	ActorID  string           `json:"actorId"`
}

func (ReactionCreatedEvent) EventName() string { return EventReactionCreated }

type ReactionDeletedEvent struct {
	Reaction ReactionSnapshot `json:"reaction"`
	ActorID  string           `json:"actorId"`
}

func (ReactionDeletedEvent) EventName() string { return EventReactionDeleted }

// EventPublisher 领域事件出口，发布失败由调用方记日志，不阻塞主流程
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
