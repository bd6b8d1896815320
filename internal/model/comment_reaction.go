package model

import "time"

// CommentReaction 评论表态行，形状与 PostReaction 一致，存储分表
type CommentReaction struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	CommentID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_comment_reaction_unique"`
	CreatedBy    string    `gorm:"type:char(36);not null;uniqueIndex:idx_comment_reaction_unique"`
	ReactionName string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_comment_reaction_unique"`
	CreatedAt    time.Time `gorm:"index:idx_comment_reaction_created_at"`
}

func (CommentReaction) TableName() string {
	return "comments_reactions"
}
