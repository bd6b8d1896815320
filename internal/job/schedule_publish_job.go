package job

import (
	"Trellis/internal/domain"
	"Trellis/internal/pkg/consts"
	"Trellis/internal/pkg/logger"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SchedulePublishJob 扫描到点的定时内容并发布。
// 发布失败的内容标记为 SCHEDULE_FAILED，等待作者处理，任务继续扫后面的
type SchedulePublishJob struct {
	contentRepo repository.ContentRepo
	publisher   domain.EventPublisher
	pageSize    int
}

func NewSchedulePublishJob(contentRepo repository.ContentRepo, publisher domain.EventPublisher, pageSize int) *SchedulePublishJob {
	return &SchedulePublishJob{
		contentRepo: contentRepo,
		publisher:   publisher,
		pageSize:    pageSize,
	}
}

func (s *SchedulePublishJob) Run() {
	traceID := "job-schedule-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	locked, err := redis.TryLock(ctx, consts.SchedulePublishLock, traceID, time.Minute*5, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.SchedulePublishLock, traceID)

	now := time.Now()
	cursor := ""
	published, failed := 0, 0
	for {
		page, err := s.contentRepo.FindScheduledBefore(ctx, now, cursor, s.pageSize)
		if err != nil {
			log.ErrorContext(ctx, "扫描定时内容失败", "err", err)
			return
		}
		for _, content := range page {
			cursor = content.ID
			if err := s.publishOne(ctx, content, now); err != nil {
				failed++
				continue
			}
			published++
		}
		if len(page) < s.pageSize {
			break
		}
	}

	log.InfoContext(ctx, "SchedulePublishJob done", "published", published, "failed", failed)
}

func (s *SchedulePublishJob) publishOne(ctx context.Context, content *domain.ContentAggregate, now time.Time) error {
	if err := content.Publish(now); err != nil {
		log.WarnContext(ctx, "定时发布不满足条件", "contentID", content.ID, "err", err)
		content.MarkScheduleFailed()
		if err := s.contentRepo.Update(ctx, content); err != nil {
			log.ErrorContext(ctx, "标记发布失败状态出错", "contentID", content.ID, "err", err)
		}
		return err
	}
	if err := s.contentRepo.Update(ctx, content); err != nil {
		log.ErrorContext(ctx, "定时发布落库失败", "contentID", content.ID, "err", err)
		return err
	}
	if content.IsPublished() && s.publisher != nil {
		event := domain.ContentPublishedEvent{
			Content: domain.ContentSnapshot{
				ID:          content.ID,
				Type:        content.Type,
				Status:      content.Status,
				CreatedBy:   content.CreatedBy,
				Title:       content.Title,
				GroupIDs:    content.GroupIDs,
				SeriesIDs:   content.SeriesIDs,
				TagIDs:      content.TagIDs,
				PublishedAt: content.PublishedAt,
			},
			ActorID: content.CreatedBy,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WarnContext(ctx, "定时发布事件投递失败", "contentID", content.ID, "err", err)
		}
	}
	return nil
}
