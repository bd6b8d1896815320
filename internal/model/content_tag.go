package model

type ContentTag struct {
	PostID string `gorm:"type:char(36);primaryKey" json:"postId"`
	TagID  string `gorm:"type:char(36);primaryKey;index:idx_tag_id" json:"tagId"`
}

func (ContentTag) TableName() string {
	return "posts_tags"
}
