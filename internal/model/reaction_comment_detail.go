package model

import "time"

type ReactionCommentDetail struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	CommentID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_reaction_comment_unique"`
	ReactionName string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reaction_comment_unique"`
	Count        int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (ReactionCommentDetail) TableName() string {
	return "reaction_comment_details"
}
