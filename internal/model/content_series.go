package model

import "time"

// ContentSeries 帖子/文章与系列的关联，Zindex 是系列内的展示顺序
type ContentSeries struct {
	SeriesID  string    `gorm:"type:char(36);primaryKey" json:"seriesId"`
	PostID    string    `gorm:"type:char(36);primaryKey;index:idx_post_id" json:"postId"`
	Zindex    int       `gorm:"not null;default:0" json:"zindex"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContentSeries) TableName() string {
	return "posts_series"
}
