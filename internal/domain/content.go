package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypePost    ContentType = "POST"
	ContentTypeArticle ContentType = "ARTICLE"
	ContentTypeSeries  ContentType = "SERIES"
)

type ContentStatus string

const (
	ContentStatusDraft           ContentStatus = "DRAFT"
	ContentStatusProcessing      ContentStatus = "PROCESSING"
	ContentStatusPublished       ContentStatus = "PUBLISHED"
	ContentStatusWaitingSchedule ContentStatus = "WAITING_SCHEDULE"
	ContentStatusScheduleFailed  ContentStatus = "SCHEDULE_FAILED"
)

type ContentPrivacy string

const (
	PrivacyOpen    ContentPrivacy = "OPEN"
	PrivacyClosed  ContentPrivacy = "CLOSED"
	PrivacyPrivate ContentPrivacy = "PRIVATE"
	PrivacySecret  ContentPrivacy = "SECRET"
)

// ContentSetting 内容互动设置
type ContentSetting struct {
	IsImportant        bool
	ImportantExpiredAt *time.Time
	CanComment         bool
	CanReact           bool
}

// ContentAggregation 副作用维护的聚合计数，读路径不会重算
type ContentAggregation struct {
	CommentsCount  int
	TotalUsersSeen int
}

// SeriesItem 系列内的一项，Zindex 决定展示顺序
type SeriesItem struct {
	ID     string
	Zindex int
}

// Video 处理中的视频会阻塞发布流程
type Video struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	IsProcessed bool   `json:"is_processed"`
}

type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type File struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// MediaBundle 以 JSON 列的形式挂在内容行上
type MediaBundle struct {
	Files  []File  `json:"files,omitempty"`
	Images []Image `json:"images,omitempty"`
	Videos []Video `json:"videos,omitempty"`
}

// ContentState 描述自加载以来关系集合的增量变化，
// 仓储按它生成最小的 insert/delete，而不是整表重建
type ContentState struct {
	AttachGroupIDs    []string
	DetachGroupIDs    []string
	AttachSeriesIDs   []string
	DetachSeriesIDs   []string
	AttachTagIDs      []string
	DetachTagIDs      []string
	AttachCategoryIDs []string
	DetachCategoryIDs []string
	StatusChanged     bool
}

// loadedRelations 是加载时刻的关系快照，增量始终相对它计算，
// 同一聚合连续多次 set 不会互相覆盖
type loadedRelations struct {
	groupIDs    []string
	seriesIDs   []string
	tagIDs      []string
	categoryIDs []string
}

// ContentAggregate 是 Post/Article/Series 的聚合根，
// 按 Type 判别，仓储边界负责和存储行互转
type ContentAggregate struct {
	ID        string
	Type      ContentType
	Status    ContentStatus
	Privacy   ContentPrivacy
	CreatedBy string
	UpdatedBy string

	IsHidden   bool
	IsReported bool

	Setting     ContentSetting
	Aggregation ContentAggregation

	GroupIDs  []string
	SeriesIDs []string
	TagIDs    []string
	Items     []SeriesItem

	Title         string
	Summary       string
	Content       string
	Cover         *string
	CategoryIDs   []string
	Media         MediaBundle
	LinkPreviewID *string
	WordCount     int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
	ScheduledAt *time.Time
	DeletedAt   *time.Time

	loaded        loadedRelations
	statusChanged bool
}

func newContent(ownerID string, contentType ContentType, groupIDs []string, now time.Time) (*ContentAggregate, error) {
	if len(groupIDs) == 0 {
		return nil, ErrContentEmptyAudience
	}
	c := &ContentAggregate{
		ID:        uuid.NewString(),
		Type:      contentType,
		Status:    ContentStatusDraft,
		CreatedBy: ownerID,
		UpdatedBy: ownerID,
		Setting: ContentSetting{
			CanComment: true,
			CanReact:   true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.GroupIDs = append(c.GroupIDs, groupIDs...)
	return c, nil
}

// MarkLoaded 由仓储在重建聚合后调用，固定关系快照基线
func (c *ContentAggregate) MarkLoaded() {
	c.loaded = loadedRelations{
		groupIDs:    cloneIDs(c.GroupIDs),
		seriesIDs:   cloneIDs(c.SeriesIDs),
		tagIDs:      cloneIDs(c.TagIDs),
		categoryIDs: cloneIDs(c.CategoryIDs),
	}
	c.statusChanged = false
}

func NewPost(ownerID string, groupIDs []string, now time.Time) (*ContentAggregate, error) {
	return newContent(ownerID, ContentTypePost, groupIDs, now)
}

func NewArticle(ownerID string, groupIDs []string, now time.Time) (*ContentAggregate, error) {
	return newContent(ownerID, ContentTypeArticle, groupIDs, now)
}

func NewSeries(ownerID string, groupIDs []string, now time.Time) (*ContentAggregate, error) {
	return newContent(ownerID, ContentTypeSeries, groupIDs, now)
}

// State 返回相对加载基线的增量，仓储持久化成功后调用 ResetState
func (c *ContentAggregate) State() ContentState {
	s := ContentState{StatusChanged: c.statusChanged}
	s.AttachGroupIDs, s.DetachGroupIDs = DiffIDs(c.loaded.groupIDs, c.GroupIDs)
	s.AttachSeriesIDs, s.DetachSeriesIDs = DiffIDs(c.loaded.seriesIDs, c.SeriesIDs)
	s.AttachTagIDs, s.DetachTagIDs = DiffIDs(c.loaded.tagIDs, c.TagIDs)
	s.AttachCategoryIDs, s.DetachCategoryIDs = DiffIDs(c.loaded.categoryIDs, c.CategoryIDs)
	return s
}

func (c *ContentAggregate) ResetState() {
	c.MarkLoaded()
}

// SetAudience 空受众直接拒绝，原集合保持不变
func (c *ContentAggregate) SetAudience(groupIDs []string) error {
	if len(groupIDs) == 0 {
		return ErrContentEmptyAudience
	}
	c.GroupIDs = cloneIDs(groupIDs)
	return nil
}

func (c *ContentAggregate) SetSeries(seriesIDs []string) error {
	if c.Type == ContentTypeSeries {
		return ErrSeriesInvalidItem
	}
	c.SeriesIDs = cloneIDs(seriesIDs)
	return nil
}

func (c *ContentAggregate) SetTags(tagIDs []string) {
	c.TagIDs = cloneIDs(tagIDs)
}

func (c *ContentAggregate) SetCategories(categoryIDs []string) error {
	if c.Type != ContentTypeArticle {
		return ErrContentInvalidType
	}
	c.CategoryIDs = cloneIDs(categoryIDs)
	return nil
}

// SetItems 仅系列可用，项的顺序即 z-index 顺序。
// 项只能指向 Post/Article，类型校验在领域服务完成（需要查库）。
func (c *ContentAggregate) SetItems(itemIDs []string) error {
	if c.Type != ContentTypeSeries {
		return ErrContentInvalidType
	}
	items := make([]SeriesItem, 0, len(itemIDs))
	for i, id := range itemIDs {
		items = append(items, SeriesItem{ID: id, Zindex: i})
	}
	c.Items = items
	return nil
}

func (c *ContentAggregate) AddItem(itemID string) error {
	if c.Type != ContentTypeSeries {
		return ErrContentInvalidType
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			return nil
		}
	}
	c.Items = append(c.Items, SeriesItem{ID: itemID, Zindex: len(c.Items)})
	return nil
}

func (c *ContentAggregate) canPublishFrom() bool {
	switch c.Status {
	case ContentStatusDraft, ContentStatusWaitingSchedule, ContentStatusScheduleFailed:
		return true
	}
	return false
}

// Publish 状态机推进：DRAFT/WAITING_SCHEDULE/SCHEDULE_FAILED -> PUBLISHED。
// 存在未转码完成的视频时落到 PROCESSING，由 CompleteProcessing 收尾。
func (c *ContentAggregate) Publish(now time.Time) error {
	if !c.canPublishFrom() {
		return ErrContentInvalidStatus
	}
	if c.Type == ContentTypeSeries && c.Cover == nil {
		return ErrSeriesRequiredCover
	}
	if c.HasVideoProcessing() {
		c.Status = ContentStatusProcessing
		c.statusChanged = true
		return nil
	}
	c.Status = ContentStatusPublished
	c.statusChanged = true
	if c.PublishedAt == nil {
		c.PublishedAt = &now
	}
	return nil
}

// CompleteProcessing 异步媒体处理完成后的收尾转移
func (c *ContentAggregate) CompleteProcessing(now time.Time) error {
	if c.Status != ContentStatusProcessing {
		return ErrContentInvalidStatus
	}
	c.Status = ContentStatusPublished
	c.statusChanged = true
	if c.PublishedAt == nil {
		c.PublishedAt = &now
	}
	return nil
}

func (c *ContentAggregate) Schedule(at time.Time, now time.Time) error {
	if !at.After(now) {
		return ErrContentInvalidScheduledTime
	}
	if c.IsPublished() {
		return ErrContentInvalidStatus
	}
	c.Status = ContentStatusWaitingSchedule
	c.ScheduledAt = &at
	c.statusChanged = true
	return nil
}

func (c *ContentAggregate) MarkScheduleFailed() {
	if c.Status != ContentStatusWaitingSchedule {
		return
	}
	c.Status = ContentStatusScheduleFailed
	c.statusChanged = true
}

// SetPrivacyFromGroups 从受众群组推导内容可见级别：
// 任一 OPEN 群组直接是 OPEN，其次 CLOSED > PRIVATE > SECRET
func (c *ContentAggregate) SetPrivacyFromGroups(groups []Group) {
	if len(groups) == 0 {
		return
	}
	totalPrivate, totalClosed := 0, 0
	for _, g := range groups {
		switch g.Privacy {
		case PrivacyOpen:
			c.Privacy = PrivacyOpen
			return
		case PrivacyClosed:
			totalClosed++
		case PrivacyPrivate:
			totalPrivate++
		}
	}
	if totalClosed > 0 {
		c.Privacy = PrivacyClosed
		return
	}
	if totalPrivate > 0 {
		c.Privacy = PrivacyPrivate
		return
	}
	c.Privacy = PrivacySecret
}

func (c *ContentAggregate) SetSetting(setting ContentSetting) {
	c.Setting = setting
}

func (c *ContentAggregate) Update(updatedBy string, now time.Time) {
	c.UpdatedBy = updatedBy
	c.UpdatedAt = now
}

func (c *ContentAggregate) Hide() {
	c.IsHidden = true
}

func (c *ContentAggregate) SetReported(reported bool) {
	c.IsReported = reported
}

func (c *ContentAggregate) IncreaseTotalSeen() {
	c.Aggregation.TotalUsersSeen++
}

func (c *ContentAggregate) IncreaseCommentsCount() {
	c.Aggregation.CommentsCount++
}

func (c *ContentAggregate) DecreaseCommentsCount() {
	if c.Aggregation.CommentsCount > 0 {
		c.Aggregation.CommentsCount--
	}
}

func (c *ContentAggregate) HasVideoProcessing() bool {
	for _, v := range c.Media.Videos {
		if !v.IsProcessed {
			return true
		}
	}
	return false
}

func (c *ContentAggregate) IsOwner(userID string) bool {
	return c.CreatedBy == userID
}

func (c *ContentAggregate) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

func (c *ContentAggregate) IsDraft() bool {
	return c.Status == ContentStatusDraft
}

func (c *ContentAggregate) IsProcessing() bool {
	return c.Status == ContentStatusProcessing
}

func (c *ContentAggregate) IsWaitingSchedule() bool {
	return c.Status == ContentStatusWaitingSchedule
}

func (c *ContentAggregate) IsDeleted() bool {
	return c.DeletedAt != nil
}

// IsVisible 对读者可见：未隐藏、未删除、已发布；
// 草稿只有作者自己可见，由 IsVisibleTo 判定
func (c *ContentAggregate) IsVisible() bool {
	return !c.IsHidden && !c.IsDeleted() && c.IsPublished()
}

func (c *ContentAggregate) IsVisibleTo(userID string) bool {
	if c.IsVisible() {
		return true
	}
	return !c.IsDeleted() && c.IsOwner(userID)
}

func (c *ContentAggregate) AllowComment() bool {
	return c.Setting.CanComment
}

func (c *ContentAggregate) AllowReact() bool {
	return c.Setting.CanReact
}

func (c *ContentAggregate) ItemIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
