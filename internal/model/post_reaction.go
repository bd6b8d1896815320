package model

import "time"

// PostReaction 帖子/文章的表态行。
// 唯一索引保证并发创建同一 (post, user, name) 只会落库一条
type PostReaction struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	PostID       string    `gorm:"type:char(36);not null;uniqueIndex:idx_post_reaction_unique"`
	CreatedBy    string    `gorm:"type:char(36);not null;uniqueIndex:idx_post_reaction_unique"`
	ReactionName string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_post_reaction_unique"`
	CreatedAt    time.Time `gorm:"index:idx_post_reaction_created_at"`
}

func (PostReaction) TableName() string {
	return "posts_reactions"
}
