package model

import "time"

// User 上游用户服务同步过来的本地副本，只读
type User struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Username  string `gorm:"type:varchar(64);not null;uniqueIndex:idx_username"`
	FullName  string `gorm:"type:varchar(128)"`
	Avatar    string `gorm:"type:varchar(2048)"`
	IsDeleted bool   `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
