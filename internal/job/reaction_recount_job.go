package job

import (
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/logger"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ReactionRecountJob 定期从原始表态行重建计数表，
// 修正增量维护期间可能漂移的计数，同时把热缓存失效掉
type ReactionRecountJob struct {
	contentRepo  repository.ContentRepo
	reactionRepo repository.ReactionRepo
	pageSize     int
}

func NewReactionRecountJob(contentRepo repository.ContentRepo, reactionRepo repository.ReactionRepo, pageSize int) *ReactionRecountJob {
	return &ReactionRecountJob{
		contentRepo:  contentRepo,
		reactionRepo: reactionRepo,
		pageSize:     pageSize,
	}
}

func (s *ReactionRecountJob) Run() {
	traceID := "job-recount-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	locked, err := redis.TryLock(ctx, consts.ReactionRecountLock, traceID, time.Minute*30, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.ReactionRecountLock, traceID)

	cursor := ""
	recounted := 0
	for {
		page, err := s.contentRepo.FindPublishedAfter(ctx, cursor, s.pageSize)
		if err != nil {
			log.ErrorContext(ctx, "扫描已发布内容失败", "err", err)
			return
		}
		for _, id := range page {
			cursor = id
			if err := s.reactionRepo.RecountContent(ctx, id); err != nil {
				log.ErrorContext(ctx, "重算表态计数失败", "contentID", id, "err", err)
				continue
			}
			_ = redis.DeleteKey(ctx, consts.ContentReactionCountKey+id)
			recounted++
		}
		if len(page) < s.pageSize {
			break
		}
	}

	log.InfoContext(ctx, "ReactionRecountJob done", "recounted", recounted)
}
