package repository

import (
	"Trellis/internal/model"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo interface {
	GetOrCreateTags(ctx context.Context, groupID string, tagNames []string) ([]*model.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Tag, error)
	IncreaseTotalUsed(ctx context.Context, ids []string) error
	DecreaseTotalUsed(ctx context.Context, ids []string) error
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

// GetOrCreateTags 标签在社群维度上去重，使用 OnConflict DoNothing 避免重复创建
func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, groupID string, tagNames []string) ([]*model.Tag, error) {
	for _, tagName := range tagNames {
		tag := model.Tag{
			ID:        uuid.NewString(),
			GroupID:   groupID,
			Name:      tagName,
			Slug:      slugify(tagName),
			CreatedAt: time.Now(),
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error
		if err != nil {
			return nil, wrapDB("tag create", err)
		}
	}

	// 查询所有请求的标签
	var tags []*model.Tag
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND name IN ?", groupID, tagNames).
		Find(&tags).Error
	if err != nil {
		return nil, wrapDB("tag find", err)
	}

	return tags, nil
}

func (s *tagRepoImpl) FindByIDs(ctx context.Context, ids []string) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*model.Tag
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	if err != nil {
		return nil, wrapDB("tag find by ids", err)
	}
	return tags, nil
}

func (s *tagRepoImpl) IncreaseTotalUsed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return wrapDB("tag increase used", s.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id IN ?", ids).
		UpdateColumn("total_used", gorm.Expr("total_used + 1")).Error)
}

func (s *tagRepoImpl) DecreaseTotalUsed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return wrapDB("tag decrease used", s.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id IN ? AND total_used > 0", ids).
		UpdateColumn("total_used", gorm.Expr("total_used - 1")).Error)
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
