package model

import "time"

// LinkPreview 链接预览值对象，抓取后不再修改
type LinkPreview struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	URL         string `gorm:"type:varchar(2048);not null;uniqueIndex:idx_link_preview_url,length:255"`
	Domain      string `gorm:"type:varchar(255)"`
	Title       string `gorm:"type:varchar(500)"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"type:varchar(2048)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LinkPreview) TableName() string {
	return "link_previews"
}
