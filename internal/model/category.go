package model

import "time"

type Category struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	ParentID  *string `gorm:"type:char(36)"`
	Name      string `gorm:"type:varchar(64);not null;uniqueIndex:idx_category_name"`
	Slug      string `gorm:"type:varchar(64);not null"`
	Level     int    `gorm:"not null;default:1"`
	IsActive  bool   `gorm:"type:tinyint(1);not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}
