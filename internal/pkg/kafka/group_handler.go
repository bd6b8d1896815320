package kafka

import (
	"Trellis/internal/model"
	"Trellis/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// groupSyncMessage 上游群组服务广播的快照消息
type groupSyncMessage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Privacy    string `json:"privacy"`
	IsArchived bool   `json:"isArchived"`
}

// GroupHandler 把上游群组变更同步进本地副本表。
// 群组隐私级别变化会影响内容的可见级别推导，副本必须尽快跟上
type GroupHandler struct {
	groupRepo repository.GroupRepo
}

func NewGroupHandler(groupRepo repository.GroupRepo) *GroupHandler {
	return &GroupHandler{
		groupRepo: groupRepo,
	}
}

func (s *GroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("group consumer setup")
	return nil
}

func (s *GroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("group consumer cleanup")
	return nil
}

func (s *GroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-group consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-group consume claim end")
	return nil
}

func (s *GroupHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload groupSyncMessage
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		log.Error("unmarshal group sync message error", "err", err)
		return nil
	}
	if payload.ID == "" {
		return nil
	}
	return s.groupRepo.Upsert(ctx, &model.Group{
		ID:         payload.ID,
		Name:       payload.Name,
		Privacy:    payload.Privacy,
		IsArchived: payload.IsArchived,
		UpdatedAt:  time.Now(),
	})
}
