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

// ContentPurgeJob 物理清理软删超过保留期的内容及其关联行
type ContentPurgeJob struct {
	contentRepo   repository.ContentRepo
	pageSize      int
	retentionDays int
}

func NewContentPurgeJob(contentRepo repository.ContentRepo, pageSize, retentionDays int) *ContentPurgeJob {
	return &ContentPurgeJob{
		contentRepo:   contentRepo,
		pageSize:      pageSize,
		retentionDays: retentionDays,
	}
}

func (s *ContentPurgeJob) Run() {
	traceID := "job-purge-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	locked, err := redis.TryLock(ctx, consts.ContentPurgeLock, traceID, time.Minute*10, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.ContentPurgeLock, traceID)

	before := time.Now().AddDate(0, 0, -s.retentionDays)
	cursor := ""
	purged := 0
	for {
		ids, err := s.contentRepo.FindTombstonedBefore(ctx, before, cursor, s.pageSize)
		if err != nil {
			log.ErrorContext(ctx, "扫描待清理内容失败", "err", err)
			return
		}
		if len(ids) == 0 {
			break
		}
		cursor = ids[len(ids)-1]
		if err := s.contentRepo.HardDelete(ctx, ids); err != nil {
			log.ErrorContext(ctx, "物理删除内容失败", "err", err)
			return
		}
		purged += len(ids)
		if len(ids) < s.pageSize {
			break
		}
	}

	log.InfoContext(ctx, "ContentPurgeJob done", "purged", purged)
}
