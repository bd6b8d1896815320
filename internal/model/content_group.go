package model

import "time"

// ContentGroup 内容与受众群组的关联，IsArchived 跟随群组归档状态
type ContentGroup struct {
	PostID     string    `gorm:"type:char(36);primaryKey" json:"postId"`
	GroupID    string    `gorm:"type:char(36);primaryKey;index:idx_group_id" json:"groupId"`
	IsArchived bool      `gorm:"type:tinyint(1);not null;default:0" json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ContentGroup) TableName() string {
	return "posts_groups"
}
