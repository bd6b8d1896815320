package service

import (
	"Trellis/internal/domain"
	"Trellis/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

// CreateDraftInput 新建草稿的最小输入，正文在后续更新里补
type CreateDraftInput struct {
	Type     domain.ContentType
	ActorID  string
	GroupIDs []string
}

// UpdateContentInput 除受众外均为可选，nil 表示不改
type UpdateContentInput struct {
	ContentID string
	ActorID   string

	GroupIDs    []string
	SeriesIDs   []string
	TagIDs      []string
	TagNames    []string
	CategoryIDs []string
	ItemIDs     []string

	Title   *string
	Summary *string
	Content *string
	Cover   *string
	Media   *domain.MediaBundle
	Setting *domain.ContentSetting
}

type ContentService interface {
	CreateDraft(ctx context.Context, input CreateDraftInput) (*domain.ContentAggregate, error)
	UpdateContent(ctx context.Context, input UpdateContentInput) (*domain.ContentAggregate, error)
	Publish(ctx context.Context, contentID, actorID string) (*domain.ContentAggregate, error)
	Schedule(ctx context.Context, contentID, actorID string, at time.Time) error
	CompleteProcessing(ctx context.Context, contentID string) error
	GetContent(ctx context.Context, contentID, actorID string) (*domain.ContentAggregate, error)
	GetContents(ctx context.Context, contentIDs []string, actorID string) ([]*domain.ContentAggregate, error)
	GetContentRelations(ctx context.Context, contentIDs []string) ([]domain.ContentRelations, error)
	DeleteContent(ctx context.Context, contentID, actorID string) error
	MarkSeen(ctx context.Context, contentID, actorID string) error
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepo
	tagRepo     repository.TagRepo
	groups      GroupProvider
	authority   ContentAuthority
	publisher   domain.EventPublisher
}

func NewContentService(
	contentRepo repository.ContentRepo,
	tagRepo repository.TagRepo,
	groups GroupProvider,
	authority ContentAuthority,
	publisher domain.EventPublisher,
) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
		tagRepo:     tagRepo,
		groups:      groups,
		authority:   authority,
		publisher:   publisher,
	}
}

// CreateDraft 建草稿即校验受众，隐私级别立刻按群组推导，
// 后续每次改受众都会重新推导
func (s *contentServiceImpl) CreateDraft(ctx context.Context, input CreateDraftInput) (*domain.ContentAggregate, error) {
	groups, err := s.resolveGroups(ctx, input.GroupIDs)
	if err != nil {
		return nil, err
	}

	var content *domain.ContentAggregate
	now := time.Now()
	switch input.Type {
	case domain.ContentTypePost:
		content, err = domain.NewPost(input.ActorID, input.GroupIDs, now)
	case domain.ContentTypeArticle:
		content, err = domain.NewArticle(input.ActorID, input.GroupIDs, now)
	case domain.ContentTypeSeries:
		content, err = domain.NewSeries(input.ActorID, input.GroupIDs, now)
	default:
		return nil, ErrParamInvalid
	}
	if err != nil {
		return nil, translateDomainErr(err)
	}
	content.SetPrivacyFromGroups(groups)

	if err := s.contentRepo.Create(ctx, content); err != nil {
		log.ErrorContext(ctx, "创建内容失败", "error", err, "type", input.Type)
		return nil, UnExpectedError
	}
	return content, nil
}

func (s *contentServiceImpl) UpdateContent(ctx context.Context, input UpdateContentInput) (*domain.ContentAggregate, error) {
	content, err := s.loadForWrite(ctx, input.ContentID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.GroupIDs != nil {
		groups, err := s.resolveGroups(ctx, input.GroupIDs)
		if err != nil {
			return nil, err
		}
		if err := content.SetAudience(input.GroupIDs); err != nil {
			return nil, translateDomainErr(err)
		}
		content.SetPrivacyFromGroups(groups)
	}
	if input.SeriesIDs != nil {
		if err := s.checkSeriesExist(ctx, input.SeriesIDs); err != nil {
			return nil, err
		}
		if err := content.SetSeries(input.SeriesIDs); err != nil {
			return nil, translateDomainErr(err)
		}
	}
	if input.TagIDs != nil {
		tags, err := s.tagRepo.FindByIDs(ctx, input.TagIDs)
		if err != nil {
			return nil, UnExpectedError
		}
		if len(tags) != len(input.TagIDs) {
			return nil, ErrTagNotFound
		}
		content.SetTags(input.TagIDs)
	}
	if input.TagNames != nil {
		// 标签按名字在主群组维度去重建档，已有的直接复用
		tags, err := s.tagRepo.GetOrCreateTags(ctx, content.GroupIDs[0], input.TagNames)
		if err != nil {
			log.ErrorContext(ctx, "创建标签失败", "error", err, "contentID", content.ID)
			return nil, UnExpectedError
		}
		tagIDs := make([]string, 0, len(tags))
		for _, tag := range tags {
			tagIDs = append(tagIDs, tag.ID)
		}
		content.SetTags(tagIDs)
	}
	if input.CategoryIDs != nil {
		if err := content.SetCategories(input.CategoryIDs); err != nil {
			return nil, translateDomainErr(err)
		}
	}
	if input.ItemIDs != nil {
		if err := s.checkSeriesItems(ctx, input.ItemIDs); err != nil {
			return nil, err
		}
		if err := content.SetItems(input.ItemIDs); err != nil {
			return nil, translateDomainErr(err)
		}
	}

	if input.Title != nil {
		content.Title = *input.Title
	}
	if input.Summary != nil {
		content.Summary = *input.Summary
	}
	if input.Content != nil {
		content.Content = *input.Content
	}
	if input.Cover != nil {
		content.Cover = input.Cover
	}
	if input.Media != nil {
		content.Media = *input.Media
	}
	if input.Setting != nil {
		content.SetSetting(*input.Setting)
	}
	content.Update(input.ActorID, time.Now())

	if err := s.contentRepo.Update(ctx, content); err != nil {
		log.ErrorContext(ctx, "更新内容失败", "error", err, "contentID", content.ID)
		return nil, UnExpectedError
	}

	if content.IsPublished() {
		s.publishEvent(ctx, domain.ContentUpdatedEvent{
			Content: snapshotOf(content),
			ActorID: input.ActorID,
		})
	}
	return content, nil
}

// Publish 发布或定时内容到点后的统一出口。
// 含处理中视频的帖子先进 PROCESSING，转码完成回调再入 PUBLISHED
func (s *contentServiceImpl) Publish(ctx context.Context, contentID, actorID string) (*domain.ContentAggregate, error) {
	content, err := s.loadForWrite(ctx, contentID, actorID)
	if err != nil {
		return nil, err
	}

	groups, err := s.resolveGroups(ctx, content.GroupIDs)
	if err != nil {
		return nil, err
	}
	content.SetPrivacyFromGroups(groups)

	if err := content.Publish(time.Now()); err != nil {
		return nil, translateDomainErr(err)
	}
	if err := s.contentRepo.Update(ctx, content); err != nil {
		log.ErrorContext(ctx, "发布内容失败", "error", err, "contentID", content.ID)
		return nil, UnExpectedError
	}
	if len(content.TagIDs) > 0 {
		if err := s.tagRepo.IncreaseTotalUsed(ctx, content.TagIDs); err != nil {
			log.WarnContext(ctx, "更新标签使用数失败", "error", err, "contentID", content.ID)
		}
	}

	if content.IsPublished() {
		s.publishEvent(ctx, domain.ContentPublishedEvent{
			Content: snapshotOf(content),
			ActorID: actorID,
		})
	}
	return content, nil
}

func (s *contentServiceImpl) Schedule(ctx context.Context, contentID, actorID string, at time.Time) error {
	content, err := s.loadForWrite(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	if err := content.Schedule(at, time.Now()); err != nil {
		return translateDomainErr(err)
	}
	if err := s.contentRepo.Update(ctx, content); err != nil {
		log.ErrorContext(ctx, "定时发布设置失败", "error", err, "contentID", content.ID)
		return UnExpectedError
	}
	return nil
}

// CompleteProcessing 视频转码完成的回调入口，没有操作者概念
func (s *contentServiceImpl) CompleteProcessing(ctx context.Context, contentID string) error {
	content, err := s.findContent(ctx, contentID)
	if err != nil {
		return err
	}
	if err := content.CompleteProcessing(time.Now()); err != nil {
		return translateDomainErr(err)
	}
	if err := s.contentRepo.Update(ctx, content); err != nil {
		log.ErrorContext(ctx, "完成转码状态更新失败", "error", err, "contentID", content.ID)
		return UnExpectedError
	}
	if content.IsPublished() {
		s.publishEvent(ctx, domain.ContentPublishedEvent{
			Content: snapshotOf(content),
			ActorID: content.CreatedBy,
		})
	}
	return nil
}

func (s *contentServiceImpl) GetContent(ctx context.Context, contentID, actorID string) (*domain.ContentAggregate, error) {
	content, err := s.findContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.CheckRead(ctx, actorID, content); err != nil {
		return nil, err
	}
	return content, nil
}

// GetContents 不可见的条目静默剔除，结果保持入参顺序
func (s *contentServiceImpl) GetContents(ctx context.Context, contentIDs []string, actorID string) ([]*domain.ContentAggregate, error) {
	if len(contentIDs) == 0 {
		return nil, nil
	}
	contents, err := s.contentRepo.FindAll(ctx, repository.FindContentOptions{
		IDs:           contentIDs,
		IncludeGroups: true,
		IncludeSeries: true,
		IncludeTags:   true,
		IncludeItems:  true,
	})
	if err != nil {
		log.ErrorContext(ctx, "批量查询内容失败", "error", err)
		return nil, UnExpectedError
	}
	out := make([]*domain.ContentAggregate, 0, len(contents))
	for _, c := range contents {
		if c.IsVisibleTo(actorID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *contentServiceImpl) GetContentRelations(ctx context.Context, contentIDs []string) ([]domain.ContentRelations, error) {
	relations, err := s.contentRepo.FindRelationsByIDs(ctx, contentIDs)
	if err != nil {
		log.ErrorContext(ctx, "查询内容关系失败", "error", err)
		return nil, UnExpectedError
	}
	return relations, nil
}

func (s *contentServiceImpl) DeleteContent(ctx context.Context, contentID, actorID string) error {
	content, err := s.loadForWrite(ctx, contentID, actorID)
	if err != nil {
		return err
	}
	if err := s.contentRepo.Delete(ctx, content.ID); err != nil {
		log.ErrorContext(ctx, "删除内容失败", "error", err, "contentID", content.ID)
		return UnExpectedError
	}
	if content.IsPublished() && len(content.TagIDs) > 0 {
		if err := s.tagRepo.DecreaseTotalUsed(ctx, content.TagIDs); err != nil {
			log.WarnContext(ctx, "更新标签使用数失败", "error", err, "contentID", content.ID)
		}
	}
	return nil
}

// MarkSeen 已读计数只增不减，作者看自己的内容不计
func (s *contentServiceImpl) MarkSeen(ctx context.Context, contentID, actorID string) error {
	content, err := s.findContent(ctx, contentID)
	if err != nil {
		return err
	}
	if content.IsOwner(actorID) {
		return nil
	}
	if err := s.contentRepo.IncreaseTotalSeen(ctx, content.ID); err != nil {
		log.WarnContext(ctx, "更新已读计数失败", "error", err, "contentID", content.ID)
		return UnExpectedError
	}
	return nil
}

func (s *contentServiceImpl) findContent(ctx context.Context, contentID string) (*domain.ContentAggregate, error) {
	content, err := s.contentRepo.FindOne(ctx, repository.FindContentOptions{
		ID:                 contentID,
		IncludeGroups:      true,
		IncludeSeries:      true,
		IncludeTags:        true,
		IncludeCategories:  true,
		IncludeItems:       true,
		IncludeLinkPreview: true,
	})
	if err != nil {
		log.ErrorContext(ctx, "查询内容失败", "error", err, "contentID", contentID)
		return nil, UnExpectedError
	}
	if content == nil {
		return nil, ErrContentNotFound
	}
	return content, nil
}

func (s *contentServiceImpl) loadForWrite(ctx context.Context, contentID, actorID string) (*domain.ContentAggregate, error) {
	content, err := s.findContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.CheckCRUD(ctx, actorID, content); err != nil {
		return nil, err
	}
	return content, nil
}

// resolveGroups 受众群组必须全部存在且未归档
func (s *contentServiceImpl) resolveGroups(ctx context.Context, groupIDs []string) ([]domain.Group, error) {
	if len(groupIDs) == 0 {
		return nil, ErrContentEmptyGroup
	}
	groups, err := s.groups.FindGroups(ctx, groupIDs)
	if err != nil {
		log.ErrorContext(ctx, "查询群组失败", "error", err)
		return nil, UnExpectedError
	}
	if len(groups) != len(groupIDs) {
		return nil, ErrParamInvalid
	}
	out := make([]domain.Group, 0, len(groups))
	for _, g := range groups {
		if g.IsArchived {
			return nil, ErrContentGroupArchived
		}
		out = append(out, *g)
	}
	return out, nil
}

func (s *contentServiceImpl) checkSeriesExist(ctx context.Context, seriesIDs []string) error {
	if len(seriesIDs) == 0 {
		return nil
	}
	found, err := s.contentRepo.FindAll(ctx, repository.FindContentOptions{
		IDs:  seriesIDs,
		Type: domain.ContentTypeSeries,
	})
	if err != nil {
		return UnExpectedError
	}
	if len(found) != len(seriesIDs) {
		return ErrSeriesNotFound
	}
	return nil
}

// checkSeriesItems 系列项只能是帖子或文章，系列不能嵌套系列
func (s *contentServiceImpl) checkSeriesItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	found, err := s.contentRepo.FindAll(ctx, repository.FindContentOptions{IDs: itemIDs})
	if err != nil {
		return UnExpectedError
	}
	if len(found) != len(itemIDs) {
		return ErrContentNotFound
	}
	for _, item := range found {
		if item.Type == domain.ContentTypeSeries {
			return ErrSeriesItemInvalid
		}
	}
	return nil
}

func (s *contentServiceImpl) publishEvent(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "领域事件发布失败", "error", err, "event", event.EventName())
	}
}

func snapshotOf(c *domain.ContentAggregate) domain.ContentSnapshot {
	return domain.ContentSnapshot{
		ID:          c.ID,
		Type:        c.Type,
		Status:      c.Status,
		CreatedBy:   c.CreatedBy,
		Title:       c.Title,
		GroupIDs:    c.GroupIDs,
		SeriesIDs:   c.SeriesIDs,
		TagIDs:      c.TagIDs,
		PublishedAt: c.PublishedAt,
	}
}

// translateDomainErr 聚合抛出的领域错误直接透传给 ErrorMap，
// 只有受众为空换成服务层统一的提示
func translateDomainErr(err error) error {
	if errors.Is(err, domain.ErrContentEmptyAudience) {
		return ErrContentEmptyGroup
	}
	return err
}
