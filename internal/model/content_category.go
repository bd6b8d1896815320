package model

// ContentCategory 仅文章使用
type ContentCategory struct {
	PostID     string `gorm:"type:char(36);primaryKey" json:"postId"`
	CategoryID string `gorm:"type:char(36);primaryKey;index:idx_category_id" json:"categoryId"`
}

func (ContentCategory) TableName() string {
	return "posts_categories"
}
