package model

import "time"

// ReactionContentDetail 去范化的表态计数表，增量维护，
// 读路径不再对原始表态行做 COUNT(*) 扫描。
// CreatedAt 是该表态名在该内容下的首次出现时间，驱动徽章排序
type ReactionContentDetail struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	ContentID    string    `gorm:"type:char(36);not null;uniqueIndex:idx_reaction_content_unique"`
	ReactionName string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reaction_content_unique"`
	Count        int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (ReactionContentDetail) TableName() string {
	return "reaction_content_details"
}
