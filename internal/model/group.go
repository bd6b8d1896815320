package model

import "time"

// Group 上游群组服务同步过来的本地副本，只读。
// Privacy 取值与内容隐私级别一致
type Group struct {
	ID         string `gorm:"type:char(36);primaryKey"`
	Name       string `gorm:"type:varchar(128);not null"`
	Privacy    string `gorm:"type:varchar(16);not null;default:'OPEN'"`
	IsArchived bool   `gorm:"type:tinyint(1);default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Group) TableName() string {
	return "groups"
}
