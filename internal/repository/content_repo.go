package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindContentOptions 查询条件与可选关联加载，每个 include 独立 join，按需取数
type FindContentOptions struct {
	ID        string
	IDs       []string
	Type      domain.ContentType
	Status    domain.ContentStatus
	CreatedBy string

	ExcludeArchivedGroups bool

	IncludeGroups      bool
	IncludeSeries      bool
	IncludeTags        bool
	IncludeCategories  bool
	IncludeItems       bool
	IncludeLinkPreview bool
}

type ContentRepo interface {
	Create(ctx context.Context, content *domain.ContentAggregate) error
	Update(ctx context.Context, content *domain.ContentAggregate) error
	FindOne(ctx context.Context, opts FindContentOptions) (*domain.ContentAggregate, error)
	FindAll(ctx context.Context, opts FindContentOptions) ([]*domain.ContentAggregate, error)
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, ids []string) error
	FindTombstonedBefore(ctx context.Context, before time.Time, cursorID string, limit int) ([]string, error)
	FindPublishedAfter(ctx context.Context, cursorID string, limit int) ([]string, error)
	FindScheduledBefore(ctx context.Context, before time.Time, cursorID string, limit int) ([]*domain.ContentAggregate, error)
	FindRelationsByIDs(ctx context.Context, ids []string) ([]domain.ContentRelations, error)
	IncreaseTotalSeen(ctx context.Context, id string) error
	IncreaseCommentsCount(ctx context.Context, id string) error
	DecreaseCommentsCount(ctx context.Context, id string) error
}

type ContentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) ContentRepo {
	return &ContentRepoImpl{db: db}
}

// Create 标量行与三类关系增量在同一事务内落库，任一失败整体回滚
func (s *ContentRepoImpl) Create(ctx context.Context, content *domain.ContentAggregate) error {
	m, err := contentToModel(content)
	if err != nil {
		return wrapDB("content create", err)
	}
	state := content.State()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.applyRelationState(tx, content, state)
	})
	if err != nil {
		return wrapDB("content create", err)
	}
	content.ResetState()
	return nil
}

func (s *ContentRepoImpl) Update(ctx context.Context, content *domain.ContentAggregate) error {
	m, err := contentToModel(content)
	if err != nil {
		return wrapDB("content update", err)
	}
	state := content.State()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Content{}).Where("id = ?", m.ID).
			Select("*").Omit("id", "created_at", "deleted_at").Updates(m).Error; err != nil {
			return err
		}
		return s.applyRelationState(tx, content, state)
	})
	if err != nil {
		return wrapDB("content update", err)
	}
	content.ResetState()
	return nil
}

// applyRelationState 按增量做最小化 insert/delete。
// 三类关系之间顺序无关，但必须与标量行同事务提交
func (s *ContentRepoImpl) applyRelationState(tx *gorm.DB, content *domain.ContentAggregate, state domain.ContentState) error {
	id := content.ID
	if len(state.AttachGroupIDs) > 0 {
		rows := make([]model.ContentGroup, 0, len(state.AttachGroupIDs))
		for _, gid := range state.AttachGroupIDs {
			rows = append(rows, model.ContentGroup{PostID: id, GroupID: gid})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(state.DetachGroupIDs) > 0 {
		if err := tx.Where("post_id = ? AND group_id IN ?", id, state.DetachGroupIDs).
			Delete(&model.ContentGroup{}).Error; err != nil {
			return err
		}
	}

	if len(state.AttachSeriesIDs) > 0 {
		rows := make([]model.ContentSeries, 0, len(state.AttachSeriesIDs))
		for _, sid := range state.AttachSeriesIDs {
			rows = append(rows, model.ContentSeries{SeriesID: sid, PostID: id})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(state.DetachSeriesIDs) > 0 {
		if err := tx.Where("post_id = ? AND series_id IN ?", id, state.DetachSeriesIDs).
			Delete(&model.ContentSeries{}).Error; err != nil {
			return err
		}
	}

	if len(state.AttachTagIDs) > 0 {
		rows := make([]model.ContentTag, 0, len(state.AttachTagIDs))
		for _, tid := range state.AttachTagIDs {
			rows = append(rows, model.ContentTag{PostID: id, TagID: tid})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(state.DetachTagIDs) > 0 {
		if err := tx.Where("post_id = ? AND tag_id IN ?", id, state.DetachTagIDs).
			Delete(&model.ContentTag{}).Error; err != nil {
			return err
		}
	}

	if len(state.AttachCategoryIDs) > 0 {
		rows := make([]model.ContentCategory, 0, len(state.AttachCategoryIDs))
		for _, cid := range state.AttachCategoryIDs {
			rows = append(rows, model.ContentCategory{PostID: id, CategoryID: cid})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(state.DetachCategoryIDs) > 0 {
		if err := tx.Where("post_id = ? AND category_id IN ?", id, state.DetachCategoryIDs).
			Delete(&model.ContentCategory{}).Error; err != nil {
			return err
		}
	}

	// 系列项整组重排：z-index 变化面大，直接对账而不是做增量
	if content.Type == domain.ContentTypeSeries {
		if err := s.syncSeriesItems(tx, content); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentRepoImpl) syncSeriesItems(tx *gorm.DB, content *domain.ContentAggregate) error {
	keep := content.ItemIDs()
	q := tx.Where("series_id = ?", content.ID)
	if len(keep) > 0 {
		q = q.Where("post_id NOT IN ?", keep)
	}
	if err := q.Delete(&model.ContentSeries{}).Error; err != nil {
		return err
	}
	for _, it := range content.Items {
		row := model.ContentSeries{SeriesID: content.ID, PostID: it.ID, Zindex: it.Zindex}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "series_id"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"zindex": it.Zindex}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ContentRepoImpl) buildQuery(ctx context.Context, opts FindContentOptions) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Content{})
	if opts.ID != "" {
		q = q.Where("posts.id = ?", opts.ID)
	}
	if len(opts.IDs) > 0 {
		q = q.Where("posts.id IN ?", opts.IDs)
	}
	if opts.Type != "" {
		q = q.Where("posts.type = ?", string(opts.Type))
	}
	if opts.Status != "" {
		q = q.Where("posts.status = ?", string(opts.Status))
	}
	if opts.CreatedBy != "" {
		q = q.Where("posts.created_by = ?", opts.CreatedBy)
	}
	if opts.ExcludeArchivedGroups {
		q = q.Where("EXISTS (SELECT 1 FROM posts_groups pg WHERE pg.post_id = posts.id AND pg.is_archived = ?)", false)
	}
	if opts.IncludeGroups {
		q = q.Preload("Groups")
	}
	if opts.IncludeSeries {
		q = q.Preload("Series")
	}
	if opts.IncludeTags {
		q = q.Preload("Tags")
	}
	if opts.IncludeCategories {
		q = q.Preload("Categories")
	}
	if opts.IncludeItems {
		q = q.Preload("Items")
	}
	if opts.IncludeLinkPreview {
		q = q.Preload("LinkPreview")
	}
	return q
}

// FindOne 未命中返回 (nil, nil)，是否视作错误由领域服务决定
func (s *ContentRepoImpl) FindOne(ctx context.Context, opts FindContentOptions) (*domain.ContentAggregate, error) {
	var m model.Content
	err := s.buildQuery(ctx, opts).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDB("content find", err)
	}
	c, err := contentToDomain(&m)
	if err != nil {
		return nil, wrapDB("content find", err)
	}
	return c, nil
}

// FindAll 结果按入参 id 列表顺序重建，调用方可能依赖插入序
func (s *ContentRepoImpl) FindAll(ctx context.Context, opts FindContentOptions) ([]*domain.ContentAggregate, error) {
	var ms []model.Content
	if err := s.buildQuery(ctx, opts).Find(&ms).Error; err != nil {
		return nil, wrapDB("content find all", err)
	}
	byID := make(map[string]*domain.ContentAggregate, len(ms))
	out := make([]*domain.ContentAggregate, 0, len(ms))
	for i := range ms {
		c, err := contentToDomain(&ms[i])
		if err != nil {
			return nil, wrapDB("content find all", err)
		}
		byID[c.ID] = c
	}
	if len(opts.IDs) > 0 {
		for _, id := range opts.IDs {
			if c, ok := byID[id]; ok {
				out = append(out, c)
			}
		}
		return out, nil
	}
	for i := range ms {
		out = append(out, byID[ms[i].ID])
	}
	return out, nil
}

func (s *ContentRepoImpl) Delete(ctx context.Context, id string) error {
	return wrapDB("content delete", s.db.WithContext(ctx).Delete(&model.Content{}, "id = ?", id).Error)
}

// HardDelete 墓碑清理专用，连同三张关联表一并清掉
func (s *ContentRepoImpl) HardDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN ?", ids).Delete(&model.ContentGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ? OR series_id IN ?", ids, ids).Delete(&model.ContentSeries{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&model.ContentTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&model.ContentCategory{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id IN ?", ids).Delete(&model.Content{}).Error
	})
	return wrapDB("content hard delete", err)
}

func (s *ContentRepoImpl) FindTombstonedBefore(ctx context.Context, before time.Time, cursorID string, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&model.Content{}).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ? AND id > ?", before, cursorID).
		Order("id ASC").Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, wrapDB("content find tombstoned", err)
	}
	return ids, nil
}

// FindPublishedAfter 游标翻页取已发布内容 id，游标为上一页最后一个 id
func (s *ContentRepoImpl) FindPublishedAfter(ctx context.Context, cursorID string, limit int) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&model.Content{}).
		Where("status = ? AND id > ?", string(domain.ContentStatusPublished), cursorID).
		Order("id ASC").Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, wrapDB("content find published", err)
	}
	return ids, nil
}

func (s *ContentRepoImpl) FindScheduledBefore(ctx context.Context, before time.Time, cursorID string, limit int) ([]*domain.ContentAggregate, error) {
	var ms []model.Content
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ? AND id > ?", string(domain.ContentStatusWaitingSchedule), before, cursorID).
		Order("id ASC").Limit(limit).
		Preload("Groups").Preload("Series").Preload("Tags").
		Find(&ms).Error
	if err != nil {
		return nil, wrapDB("content find scheduled", err)
	}
	out := make([]*domain.ContentAggregate, 0, len(ms))
	for i := range ms {
		c, err := contentToDomain(&ms[i])
		if err != nil {
			return nil, wrapDB("content find scheduled", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// FindRelationsByIDs 搜索索引批处理的读接口：每个内容 id 的完整关系集合
func (s *ContentRepoImpl) FindRelationsByIDs(ctx context.Context, ids []string) ([]domain.ContentRelations, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	contents, err := s.FindAll(ctx, FindContentOptions{
		IDs:           ids,
		IncludeGroups: true,
		IncludeSeries: true,
		IncludeTags:   true,
		IncludeItems:  true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ContentRelations, 0, len(contents))
	for _, c := range contents {
		out = append(out, domain.ContentRelations{
			ContentID: c.ID,
			Type:      c.Type,
			GroupIDs:  c.GroupIDs,
			TagIDs:    c.TagIDs,
			SeriesIDs: c.SeriesIDs,
			Items:     c.Items,
		})
	}
	return out, nil
}

func (s *ContentRepoImpl) IncreaseTotalSeen(ctx context.Context, id string) error {
	return wrapDB("content increase seen", s.db.WithContext(ctx).Model(&model.Content{}).
		Where("id = ?", id).
		UpdateColumn("total_users_seen", gorm.Expr("total_users_seen + 1")).Error)
}

func (s *ContentRepoImpl) IncreaseCommentsCount(ctx context.Context, id string) error {
	return wrapDB("content increase comments", s.db.WithContext(ctx).Model(&model.Content{}).
		Where("id = ?", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error)
}

func (s *ContentRepoImpl) DecreaseCommentsCount(ctx context.Context, id string) error {
	return wrapDB("content decrease comments", s.db.WithContext(ctx).Model(&model.Content{}).
		Where("id = ? AND comments_count > 0", id).
		UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error)
}
