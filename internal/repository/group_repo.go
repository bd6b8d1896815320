package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupRepo 读取群组本地副本，同时承接上游同步的 upsert
type GroupRepo interface {
	FindGroups(ctx context.Context, ids []string) ([]*domain.Group, error)
	Upsert(ctx context.Context, group *model.Group) error
}

type groupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &groupRepoImpl{db: db}
}

func (s *groupRepoImpl) FindGroups(ctx context.Context, ids []string) ([]*domain.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.Group
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, wrapDB("group find", err)
	}
	out := make([]*domain.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.Group{
			ID:         row.ID,
			Name:       row.Name,
			Privacy:    domain.ContentPrivacy(row.Privacy),
			IsArchived: row.IsArchived,
		})
	}
	return out, nil
}

func (s *groupRepoImpl) Upsert(ctx context.Context, group *model.Group) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "privacy", "is_archived", "updated_at"}),
	}).Create(group).Error
	return wrapDB("group upsert", err)
}
