package model

import "time"

type Tag struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	GroupID   string `gorm:"type:char(36);not null;uniqueIndex:idx_tag_group_name"`
	Name      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_tag_group_name"`
	Slug      string `gorm:"type:varchar(64);not null"`
	TotalUsed int    `gorm:"not null;default:0"`
	CreatedBy string `gorm:"type:char(36)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tag) TableName() string {
	return "tags"
}
