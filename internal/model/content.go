package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content posts 表的多态行，Post/Article/Series 共用一张表，
// 类型不适用的列置空
type Content struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	Type       string `gorm:"type:varchar(16);not null;index:idx_type"`
	Status     string `gorm:"type:varchar(24);not null;default:DRAFT;index:idx_status"`
	Privacy    string `gorm:"type:varchar(16)"`
	CreatedBy  string `gorm:"type:char(36);not null;index:idx_created_by"`
	UpdatedBy  string `gorm:"type:char(36);not null"`
	IsHidden   bool   `gorm:"type:tinyint(1);not null;default:0"`
	IsReported bool   `gorm:"type:tinyint(1);not null;default:0"`

	IsImportant        bool `gorm:"type:tinyint(1);not null;default:0"`
	ImportantExpiredAt *time.Time
	CanComment         bool `gorm:"type:tinyint(1);not null;default:1"`
	CanReact           bool `gorm:"type:tinyint(1);not null;default:1"`

	CommentsCount  int `gorm:"not null;default:0"`
	TotalUsersSeen int `gorm:"not null;default:0"`

	Title         string  `gorm:"type:varchar(500)"`
	Summary       string  `gorm:"type:text"`
	Content       string  `gorm:"type:longtext"`
	Cover         *string `gorm:"type:varchar(1024)"`
	WordCount     int     `gorm:"not null;default:0"`
	Media         datatypes.JSON
	LinkPreviewID *string `gorm:"type:char(36)"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
	ScheduledAt *time.Time `gorm:"index:idx_scheduled_at"`
	DeletedAt   gorm.DeletedAt

	// 关联关系
	Groups      []ContentGroup    `gorm:"foreignKey:PostID;references:ID"`
	Series      []ContentSeries   `gorm:"foreignKey:PostID;references:ID"`
	Tags        []ContentTag      `gorm:"foreignKey:PostID;references:ID"`
	Categories  []ContentCategory `gorm:"foreignKey:PostID;references:ID"`
	Items       []ContentSeries   `gorm:"foreignKey:SeriesID;references:ID"`
	LinkPreview *LinkPreview      `gorm:"foreignKey:LinkPreviewID;references:ID"`
}

func (Content) TableName() string {
	return "posts"
}
