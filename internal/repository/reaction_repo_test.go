package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"Trellis/internal/testutil"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepo_CreateMaintainsCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	r1 := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", time.Now())
	require.NoError(t, repo.Create(ctx, r1))
	r2 := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u2", time.Now())
	require.NoError(t, repo.Create(ctx, r2))

	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, counts["p1"], 1)
	assert.Equal(t, "heart", counts["p1"][0].ReactionName)
	assert.EqualValues(t, 2, counts["p1"][0].Count)
}

// 并发抢同一条表态，唯一索引裁决出唯一赢家，输家拿到重复错误
func TestReactionRepo_ConcurrentCreateSingleWinner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	const racers = 8
	results := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", time.Now())
			results <- repo.Create(ctx, r)
		}()
	}
	wg.Wait()
	close(results)

	created, duplicated := 0, 0
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrReactionExists):
			duplicated++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, racers-1, duplicated)

	var rows int64
	require.NoError(t, db.Model(&model.PostReaction{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, counts["p1"], 1)
	assert.EqualValues(t, 1, counts["p1"][0].Count)
}

func TestReactionRepo_DuplicateReturnsErrReactionExists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	r1 := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", time.Now())
	require.NoError(t, repo.Create(ctx, r1))

	dup := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", time.Now())
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrReactionExists)

	// 重复创建不会重复计数
	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts["p1"][0].Count)
}

func TestReactionRepo_DeleteRemovesEmptyCountRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	r := domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", time.Now())
	require.NoError(t, repo.Create(ctx, r))
	require.NoError(t, repo.Delete(ctx, r))

	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, counts["p1"])

	var rows int64
	require.NoError(t, db.Model(&model.ReactionContentDetail{}).Where("content_id = ?", "p1").Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestReactionRepo_CountsOrderedByFirstOccurrence(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	// smile 先出现，之后 heart 即便数量更多也排在后面
	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "smile", "u1", base)))
	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u2", base.Add(2*time.Minute))))
	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u3", base.Add(3*time.Minute))))

	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, counts["p1"], 2)
	assert.Equal(t, "smile", counts["p1"][0].ReactionName)
	assert.Equal(t, "heart", counts["p1"][1].ReactionName)
	assert.EqualValues(t, 3, counts["p1"][1].Count)
}

func TestReactionRepo_CommentTargetRouting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	r := domain.NewReaction(domain.ReactionTargetComment, "c1", "heart", "u1", time.Now())
	require.NoError(t, repo.Create(ctx, r))

	// 内容侧查不到评论的表态
	contentCounts, err := repo.GetAndCountByContents(ctx, []string{"c1"})
	require.NoError(t, err)
	assert.Empty(t, contentCounts["c1"])

	commentCounts, err := repo.GetAndCountByComments(ctx, []string{"c1"})
	require.NoError(t, err)
	require.Len(t, commentCounts["c1"], 1)
	assert.EqualValues(t, 1, commentCounts["c1"][0].Count)
}

func TestReactionRepo_FindOneByUniqueKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()

	created := domain.NewReaction(domain.ReactionTargetPost, "p1", "+1", "u1", time.Now())
	require.NoError(t, repo.Create(ctx, created))

	// 查找时同样走归一化，+1 和 thumbsup 命中同一条
	found, err := repo.FindOne(ctx, domain.ReactionTargetPost, "p1", "u1", "+1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "thumbsup", found.ReactionName)

	missing, err := repo.FindOne(ctx, domain.ReactionTargetPost, "p1", "u2", "thumbsup")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReactionRepo_RecountContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewReactionRepo(db)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u1", base)))
	require.NoError(t, repo.Create(ctx, domain.NewReaction(domain.ReactionTargetPost, "p1", "heart", "u2", base.Add(time.Minute))))

	// 人为弄脏计数行
	require.NoError(t, db.Model(&model.ReactionContentDetail{}).
		Where("content_id = ?", "p1").
		UpdateColumn("count", 99).Error)

	require.NoError(t, repo.RecountContent(ctx, "p1"))

	counts, err := repo.GetAndCountByContents(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, counts["p1"], 1)
	assert.EqualValues(t, 2, counts["p1"][0].Count)
}
