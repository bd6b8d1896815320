package service

import (
	"Trellis/internal/cache"
	"Trellis/internal/domain"
	"Trellis/internal/repository"
	"context"
	log "log/slog"
)

// ReactionCountService 表态计数的读服务，旁路缓存。
// 每个请求过的目标 id 在结果里都有条目，无表态的目标是空列表而不是缺失
type ReactionCountService interface {
	GetContentReactionCounts(ctx context.Context, contentIDs []string) (map[string][]domain.NameCount, error)
	GetCommentReactionCounts(ctx context.Context, commentIDs []string) (map[string][]domain.NameCount, error)
}

type reactionCountServiceImpl struct {
	reactionRepo repository.ReactionRepo
	countCache   cache.ReactionCountCache
}

func NewReactionCountService(
	reactionRepo repository.ReactionRepo,
	countCache cache.ReactionCountCache,
) ReactionCountService {
	return &reactionCountServiceImpl{
		reactionRepo: reactionRepo,
		countCache:   countCache,
	}
}

func (s *reactionCountServiceImpl) GetContentReactionCounts(ctx context.Context, contentIDs []string) (map[string][]domain.NameCount, error) {
	return s.getCounts(ctx, domain.ReactionTargetPost, contentIDs, s.reactionRepo.GetAndCountByContents)
}

func (s *reactionCountServiceImpl) GetCommentReactionCounts(ctx context.Context, commentIDs []string) (map[string][]domain.NameCount, error) {
	return s.getCounts(ctx, domain.ReactionTargetComment, commentIDs, s.reactionRepo.GetAndCountByComments)
}

// getCounts 先批量查缓存，未命中的回源计数表，回源结果异步性不做要求，
// 直接在请求路径里回写。缓存读写失败都降级为全量回源，不影响正确性
func (s *reactionCountServiceImpl) getCounts(
	ctx context.Context,
	target domain.ReactionTarget,
	ids []string,
	loadFromDB func(context.Context, []string) (map[string][]domain.NameCount, error),
) (map[string][]domain.NameCount, error) {
	if len(ids) == 0 {
		return map[string][]domain.NameCount{}, nil
	}

	result := make(map[string][]domain.NameCount, len(ids))
	missing := ids
	hits, cacheMissing, err := s.countCache.Get(ctx, target, ids)
	if err != nil {
		log.WarnContext(ctx, "表态计数缓存读取失败", "error", err)
	} else {
		for id, counts := range hits {
			result[id] = counts
		}
		missing = cacheMissing
	}

	if len(missing) > 0 {
		fromDB, err := loadFromDB(ctx, missing)
		if err != nil {
			log.ErrorContext(ctx, "表态计数回源失败", "error", err)
			return nil, UnExpectedError
		}
		toCache := make(map[string][]domain.NameCount, len(missing))
		for _, id := range missing {
			counts, ok := fromDB[id]
			if !ok {
				counts = []domain.NameCount{}
			}
			result[id] = counts
			toCache[id] = counts
		}
		if err := s.countCache.Set(ctx, target, toCache); err != nil {
			log.WarnContext(ctx, "表态计数缓存写入失败", "error", err)
		}
	}

	for _, id := range ids {
		if _, ok := result[id]; !ok {
			result[id] = []domain.NameCount{}
		}
	}
	return result, nil
}
