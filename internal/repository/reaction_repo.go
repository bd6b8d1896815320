package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReactionExists 同一用户对同一目标重复创建同名表态
var ErrReactionExists = errors.New("表态已存在")

type ReactionRepo interface {
	Create(ctx context.Context, reaction *domain.Reaction) error
	Delete(ctx context.Context, reaction *domain.Reaction) error
	FindOne(ctx context.Context, target domain.ReactionTarget, targetID, createdBy, reactionName string) (*domain.Reaction, error)
	FindByID(ctx context.Context, target domain.ReactionTarget, id string) (*domain.Reaction, error)
	GetAndCountByContents(ctx context.Context, contentIDs []string) (map[string][]domain.NameCount, error)
	GetAndCountByComments(ctx context.Context, commentIDs []string) (map[string][]domain.NameCount, error)
	RecountContent(ctx context.Context, contentID string) error
}

type ReactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) ReactionRepo {
	return &ReactionRepoImpl{db: db}
}

// Create 查重、插入表态行、维护计数行在同一事务内完成。
// 并发双写由唯一索引仲裁，败者拿到 ErrReactionExists 而不会重复计数
func (s *ReactionRepoImpl) Create(ctx context.Context, reaction *domain.Reaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reaction.IsContentTarget() {
			row := model.PostReaction{
				ID:           reaction.ID,
				PostID:       reaction.TargetID,
				CreatedBy:    reaction.CreatedBy,
				ReactionName: reaction.ReactionName,
				CreatedAt:    reaction.CreatedAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			return upsertContentCount(tx, reaction, 1)
		}
		row := model.CommentReaction{
			ID:           reaction.ID,
			CommentID:    reaction.TargetID,
			CreatedBy:    reaction.CreatedBy,
			ReactionName: reaction.ReactionName,
			CreatedAt:    reaction.CreatedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return upsertCommentCount(tx, reaction, 1)
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrReactionExists
		}
		return wrapDB("reaction create", err)
	}
	return nil
}

// upsertContentCount 首次出现时插入计数行并记下时间，之后只做原子加
func upsertContentCount(tx *gorm.DB, reaction *domain.Reaction, delta int64) error {
	row := model.ReactionContentDetail{
		ID:           uuid.NewString(),
		ContentID:    reaction.TargetID,
		ReactionName: reaction.ReactionName,
		Count:        delta,
		CreatedAt:    reaction.CreatedAt,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}, {Name: "reaction_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", delta)}),
	}).Create(&row).Error
}

func upsertCommentCount(tx *gorm.DB, reaction *domain.Reaction, delta int64) error {
	row := model.ReactionCommentDetail{
		ID:           uuid.NewString(),
		CommentID:    reaction.TargetID,
		ReactionName: reaction.ReactionName,
		Count:        delta,
		CreatedAt:    reaction.CreatedAt,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "reaction_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", delta)}),
	}).Create(&row).Error
}

// Delete 删除表态行并把计数减一，减到零的计数行直接清除,
// 这样完全无人表态的名字不会再出现在查询结果里
func (s *ReactionRepoImpl) Delete(ctx context.Context, reaction *domain.Reaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reaction.IsContentTarget() {
			res := tx.Where("id = ?", reaction.ID).Delete(&model.PostReaction{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			if err := tx.Model(&model.ReactionContentDetail{}).
				Where("content_id = ? AND reaction_name = ?", reaction.TargetID, reaction.ReactionName).
				UpdateColumn("count", gorm.Expr("count - 1")).Error; err != nil {
				return err
			}
			return tx.Where("content_id = ? AND reaction_name = ? AND count <= 0",
				reaction.TargetID, reaction.ReactionName).
				Delete(&model.ReactionContentDetail{}).Error
		}
		res := tx.Where("id = ?", reaction.ID).Delete(&model.CommentReaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&model.ReactionCommentDetail{}).
			Where("comment_id = ? AND reaction_name = ?", reaction.TargetID, reaction.ReactionName).
			UpdateColumn("count", gorm.Expr("count - 1")).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ? AND reaction_name = ? AND count <= 0",
			reaction.TargetID, reaction.ReactionName).
			Delete(&model.ReactionCommentDetail{}).Error
	})
	return wrapDB("reaction delete", err)
}

// FindOne 按唯一键查找，未命中返回 (nil, nil)
func (s *ReactionRepoImpl) FindOne(ctx context.Context, target domain.ReactionTarget, targetID, createdBy, reactionName string) (*domain.Reaction, error) {
	name := domain.NormalizeReactionName(reactionName)
	if target == domain.ReactionTargetComment {
		var row model.CommentReaction
		err := s.db.WithContext(ctx).
			Where("comment_id = ? AND created_by = ? AND reaction_name = ?", targetID, createdBy, name).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, wrapDB("reaction find", err)
		}
		return commentReactionToDomain(&row), nil
	}
	var row model.PostReaction
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND created_by = ? AND reaction_name = ?", targetID, createdBy, name).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDB("reaction find", err)
	}
	return postReactionToDomain(target, &row), nil
}

func (s *ReactionRepoImpl) FindByID(ctx context.Context, target domain.ReactionTarget, id string) (*domain.Reaction, error) {
	if target == domain.ReactionTargetComment {
		var row model.CommentReaction
		err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, wrapDB("reaction find by id", err)
		}
		return commentReactionToDomain(&row), nil
	}
	var row model.PostReaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDB("reaction find by id", err)
	}
	return postReactionToDomain(target, &row), nil
}

// GetAndCountByContents 从计数表批量读取，按首次出现时间升序。
// 未知 id 不会出现在 map 里，空列表语义由上层补齐
func (s *ReactionRepoImpl) GetAndCountByContents(ctx context.Context, contentIDs []string) (map[string][]domain.NameCount, error) {
	if len(contentIDs) == 0 {
		return map[string][]domain.NameCount{}, nil
	}
	var rows []model.ReactionContentDetail
	err := s.db.WithContext(ctx).
		Where("content_id IN ?", contentIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapDB("reaction count by contents", err)
	}
	out := make(map[string][]domain.NameCount, len(contentIDs))
	for _, row := range rows {
		out[row.ContentID] = append(out[row.ContentID], domain.NameCount{
			ReactionName: row.ReactionName,
			Count:        row.Count,
		})
	}
	return out, nil
}

func (s *ReactionRepoImpl) GetAndCountByComments(ctx context.Context, commentIDs []string) (map[string][]domain.NameCount, error) {
	if len(commentIDs) == 0 {
		return map[string][]domain.NameCount{}, nil
	}
	var rows []model.ReactionCommentDetail
	err := s.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapDB("reaction count by comments", err)
	}
	out := make(map[string][]domain.NameCount, len(commentIDs))
	for _, row := range rows {
		out[row.CommentID] = append(out[row.CommentID], domain.NameCount{
			ReactionName: row.ReactionName,
			Count:        row.Count,
		})
	}
	return out, nil
}

// RecountContent 对账任务用：从原始表态行重算计数表,
// 首次出现时间取 MIN(created_at)，与增量维护的语义一致
func (s *ReactionRepoImpl) RecountContent(ctx context.Context, contentID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type recountRow struct {
			ReactionName string
			Count        int64
			FirstAt      string
		}
		var rows []recountRow
		err := tx.Model(&model.PostReaction{}).
			Select("reaction_name, COUNT(*) AS count, MIN(created_at) AS first_at").
			Where("post_id = ?", contentID).
			Group("reaction_name").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", contentID).Delete(&model.ReactionContentDetail{}).Error; err != nil {
			return err
		}
		for _, row := range rows {
			var firstReaction model.PostReaction
			err := tx.Where("post_id = ? AND reaction_name = ?", contentID, row.ReactionName).
				Order("created_at ASC").First(&firstReaction).Error
			if err != nil {
				return err
			}
			detail := model.ReactionContentDetail{
				ID:           uuid.NewString(),
				ContentID:    contentID,
				ReactionName: row.ReactionName,
				Count:        row.Count,
				CreatedAt:    firstReaction.CreatedAt,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return wrapDB("reaction recount", err)
}

func postReactionToDomain(target domain.ReactionTarget, row *model.PostReaction) *domain.Reaction {
	return &domain.Reaction{
		ID:           row.ID,
		Target:       target,
		TargetID:     row.PostID,
		ReactionName: row.ReactionName,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
	}
}

func commentReactionToDomain(row *model.CommentReaction) *domain.Reaction {
	return &domain.Reaction{
		ID:           row.ID,
		Target:       domain.ReactionTargetComment,
		TargetID:     row.CommentID,
		ReactionName: row.ReactionName,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
	}
}
