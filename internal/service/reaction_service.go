package service

import (
	"Trellis/internal/cache"
	"Trellis/internal/domain"
	"Trellis/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

type CreateReactionInput struct {
	Target       domain.ReactionTarget
	TargetID     string
	ReactionName string
	ActorID      string
}

type DeleteReactionInput struct {
	Target domain.ReactionTarget
	// ReactionID 与 ReactionName 二选一，按 id 删时做归属校验
	ReactionID   string
	TargetID     string
	ReactionName string
	ActorID      string
}

type ReactionService interface {
	CreateReaction(ctx context.Context, input CreateReactionInput) (*domain.Reaction, error)
	DeleteReaction(ctx context.Context, input DeleteReactionInput) error
}

type reactionServiceImpl struct {
	reactionRepo repository.ReactionRepo
	contentRepo  repository.ContentRepo
	users        UserProvider
	countCache   cache.ReactionCountCache
	publisher    domain.EventPublisher
}

func NewReactionService(
	reactionRepo repository.ReactionRepo,
	contentRepo repository.ContentRepo,
	users UserProvider,
	countCache cache.ReactionCountCache,
	publisher domain.EventPublisher,
) ReactionService {
	return &reactionServiceImpl{
		reactionRepo: reactionRepo,
		contentRepo:  contentRepo,
		users:        users,
		countCache:   countCache,
		publisher:    publisher,
	}
}

// CreateReaction 幂等创建：同名重复表态返回已存在错误而不会重复计数。
// 表态名在入库前归一化，+1 和 thumbsup 算同一个
func (s *reactionServiceImpl) CreateReaction(ctx context.Context, input CreateReactionInput) (*domain.Reaction, error) {
	if !input.Target.IsValid() {
		return nil, domain.ErrReactionNotSupported
	}
	if input.ReactionName == "" {
		return nil, ErrParamInvalid
	}
	actor, err := s.users.FindUser(ctx, input.ActorID)
	if err != nil {
		log.ErrorContext(ctx, "查询表态用户失败", "error", err, "actorID", input.ActorID)
		return nil, UnExpectedError
	}
	if actor == nil {
		return nil, UnauthorizedError
	}
	if err := s.checkTarget(ctx, input.Target, input.TargetID); err != nil {
		return nil, err
	}

	reaction := domain.NewReaction(input.Target, input.TargetID, input.ReactionName, input.ActorID, time.Now())
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		if errors.Is(err, repository.ErrReactionExists) {
			return nil, ErrReactionDuplicate
		}
		log.ErrorContext(ctx, "创建表态失败", "error", err, "targetID", input.TargetID)
		return nil, UnExpectedError
	}

	s.invalidateCount(ctx, input.Target, input.TargetID)
	s.publishEvent(ctx, domain.ReactionCreatedEvent{
		Reaction: reactionSnapshotOf(reaction),
		ActorID:  input.ActorID,
	})
	return reaction, nil
}

// DeleteReaction 只能删自己的表态。目标上不存在该表态时视为未找到
func (s *reactionServiceImpl) DeleteReaction(ctx context.Context, input DeleteReactionInput) error {
	if !input.Target.IsValid() {
		return domain.ErrReactionNotSupported
	}
	var reaction *domain.Reaction
	var err error
	if input.ReactionID != "" {
		reaction, err = s.reactionRepo.FindByID(ctx, input.Target, input.ReactionID)
	} else {
		reaction, err = s.reactionRepo.FindOne(ctx, input.Target, input.TargetID, input.ActorID, input.ReactionName)
	}
	if err != nil {
		log.ErrorContext(ctx, "查询表态失败", "error", err)
		return UnExpectedError
	}
	if reaction == nil {
		return ErrReactionNotFound
	}
	if reaction.CreatedBy != input.ActorID {
		return ErrReactionNotHaveAuthority
	}

	if err := s.reactionRepo.Delete(ctx, reaction); err != nil {
		log.ErrorContext(ctx, "删除表态失败", "error", err, "reactionID", reaction.ID)
		return UnExpectedError
	}

	s.invalidateCount(ctx, reaction.Target, reaction.TargetID)
	s.publishEvent(ctx, domain.ReactionDeletedEvent{
		Reaction: reactionSnapshotOf(reaction),
		ActorID:  input.ActorID,
	})
	return nil
}

// checkTarget 内容目标要求已发布且开启表态。评论目标由评论模块自行把关，
// 这里只校验内容维度
func (s *reactionServiceImpl) checkTarget(ctx context.Context, target domain.ReactionTarget, targetID string) error {
	if target == domain.ReactionTargetComment {
		return nil
	}
	content, err := s.contentRepo.FindOne(ctx, repository.FindContentOptions{ID: targetID})
	if err != nil {
		log.ErrorContext(ctx, "查询表态目标失败", "error", err, "targetID", targetID)
		return UnExpectedError
	}
	if content == nil {
		return ErrContentNotFound
	}
	if !content.IsVisible() {
		return ErrContentNotPublished
	}
	if !content.AllowReact() {
		return ErrReactionTargetDisabled
	}
	return nil
}

// invalidateCount 缓存失效失败不阻塞写路径，等 TTL 到期自愈
func (s *reactionServiceImpl) invalidateCount(ctx context.Context, target domain.ReactionTarget, targetID string) {
	if err := s.countCache.Invalidate(ctx, target, targetID); err != nil {
		log.WarnContext(ctx, "表态计数缓存失效失败", "error", err, "targetID", targetID)
	}
}

func (s *reactionServiceImpl) publishEvent(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "领域事件发布失败", "error", err, "event", event.EventName())
	}
}

func reactionSnapshotOf(r *domain.Reaction) domain.ReactionSnapshot {
	return domain.ReactionSnapshot{
		ID:           r.ID,
		Target:       r.Target,
		TargetID:     r.TargetID,
		ReactionName: r.ReactionName,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
	}
}
