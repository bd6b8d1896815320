package testutil

import (
	"Trellis/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB 每个测试一个独立的内存库。
// TranslateError 让唯一约束冲突在 sqlite 下也表现为 gorm.ErrDuplicatedKey
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 内存库只允许单连接，连接池开第二条连接会拿到另一个空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Content{},
		&model.ContentGroup{},
		&model.ContentSeries{},
		&model.ContentTag{},
		&model.ContentCategory{},
		&model.Tag{},
		&model.Category{},
		&model.LinkPreview{},
		&model.PostReaction{},
		&model.CommentReaction{},
		&model.ReactionContentDetail{},
		&model.ReactionCommentDetail{},
		&model.Group{},
		&model.User{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
