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

// userSyncMessage 上游用户服务广播的快照消息
type userSyncMessage struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Avatar    string `json:"avatar"`
	IsDeleted bool   `json:"isDeleted"`
}

// UserHandler 把上游用户变更同步进本地副本表
type UserHandler struct {
	userRepo repository.UserRepo
}

func NewUserHandler(userRepo repository.UserRepo) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
	}
}

func (s *UserHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UserHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UserHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UserHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload userSyncMessage
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		log.Error("unmarshal user sync message error", "err", err)
		// 格式错误的消息重试也没用，跳过
		return nil
	}
	if payload.ID == "" {
		return nil
	}
	return s.userRepo.Upsert(ctx, &model.User{
		ID:        payload.ID,
		Username:  payload.Username,
		FullName:  payload.FullName,
		Avatar:    payload.Avatar,
		IsDeleted: payload.IsDeleted,
		UpdatedAt: time.Now(),
	})
}
