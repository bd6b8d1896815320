package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepo 读取用户本地副本，同时承接上游同步的 upsert
type UserRepo interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
	FindUsers(ctx context.Context, ids []string) ([]*domain.User, error)
	Upsert(ctx context.Context, user *model.User) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

func (s *userRepoImpl) FindUser(ctx context.Context, id string) (*domain.User, error) {
	var row model.User
	err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDB("user find", err)
	}
	return userToDomain(&row), nil
}

func (s *userRepoImpl) FindUsers(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.User
	err := s.db.WithContext(ctx).Where("id IN ? AND is_deleted = ?", ids, false).Find(&rows).Error
	if err != nil {
		return nil, wrapDB("user find batch", err)
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, userToDomain(&rows[i]))
	}
	return out, nil
}

func (s *userRepoImpl) Upsert(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "full_name", "avatar", "is_deleted", "updated_at"}),
	}).Create(user).Error
	return wrapDB("user upsert", err)
}

func userToDomain(row *model.User) *domain.User {
	return &domain.User{
		ID:       row.ID,
		Username: row.Username,
		FullName: row.FullName,
		Avatar:   row.Avatar,
	}
}
