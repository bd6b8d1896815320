package repository

import (
	"Trellis/internal/domain"
	"Trellis/internal/model"
	"Trellis/internal/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoPost(t *testing.T, groupIDs ...string) *domain.ContentAggregate {
	t.Helper()
	if len(groupIDs) == 0 {
		groupIDs = []string{"g1"}
	}
	post, err := domain.NewPost("owner-1", groupIDs, time.Now())
	require.NoError(t, err)
	return post
}

func TestContentRepo_CreateAndFindOne(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t, "g1", "g2")
	post.Title = "标题"
	post.SetTags([]string{"t1"})
	require.NoError(t, repo.Create(ctx, post))

	found, err := repo.FindOne(ctx, FindContentOptions{
		ID:            post.ID,
		IncludeGroups: true,
		IncludeTags:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "标题", found.Title)
	assert.Equal(t, domain.ContentTypePost, found.Type)
	assert.ElementsMatch(t, []string{"g1", "g2"}, found.GroupIDs)
	assert.ElementsMatch(t, []string{"t1"}, found.TagIDs)
}

func TestContentRepo_FindOne_MissingReturnsNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)

	found, err := repo.FindOne(context.Background(), FindContentOptions{ID: "missing"})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestContentRepo_UpdateAppliesRelationDiff(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t, "g1", "g2")
	require.NoError(t, repo.Create(ctx, post))

	// 换掉一个群组，DB 里应该只动变化的行
	require.NoError(t, post.SetAudience([]string{"g2", "g3"}))
	require.NoError(t, repo.Update(ctx, post))

	found, err := repo.FindOne(ctx, FindContentOptions{ID: post.ID, IncludeGroups: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"g2", "g3"}, found.GroupIDs)

	var count int64
	require.NoError(t, db.Model(&model.ContentGroup{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestContentRepo_UpdateAfterReload(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t, "g1")
	post.SetTags([]string{"t1", "t2"})
	require.NoError(t, repo.Create(ctx, post))

	// 重新加载后基于快照做增量
	loaded, err := repo.FindOne(ctx, FindContentOptions{ID: post.ID, IncludeGroups: true, IncludeTags: true})
	require.NoError(t, err)
	loaded.SetTags([]string{"t2", "t3"})
	require.NoError(t, repo.Update(ctx, loaded))

	again, err := repo.FindOne(ctx, FindContentOptions{ID: post.ID, IncludeTags: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t2", "t3"}, again.TagIDs)
}

func TestContentRepo_SeriesItemsKeepZindexOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	series, err := domain.NewSeries("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, series.SetItems([]string{"c3", "c1", "c2"}))
	require.NoError(t, repo.Create(ctx, series))

	found, err := repo.FindOne(ctx, FindContentOptions{ID: series.ID, IncludeItems: true})
	require.NoError(t, err)
	require.Len(t, found.Items, 3)
	assert.Equal(t, "c3", found.Items[0].ID)
	assert.Equal(t, "c1", found.Items[1].ID)
	assert.Equal(t, "c2", found.Items[2].ID)

	// 重排后全量对账
	require.NoError(t, found.SetItems([]string{"c1", "c3"}))
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindOne(ctx, FindContentOptions{ID: series.ID, IncludeItems: true})
	require.NoError(t, err)
	require.Len(t, again.Items, 2)
	assert.Equal(t, "c1", again.Items[0].ID)
	assert.Equal(t, "c3", again.Items[1].ID)
}

func TestContentRepo_FindAllPreservesRequestedOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		post := newRepoPost(t)
		require.NoError(t, repo.Create(ctx, post))
		ids = append(ids, post.ID)
	}

	requested := []string{ids[2], ids[0], ids[1]}
	found, err := repo.FindAll(ctx, FindContentOptions{IDs: requested})
	require.NoError(t, err)
	require.Len(t, found, 3)
	for i, c := range found {
		assert.Equal(t, requested[i], c.ID)
	}
}

func TestContentRepo_SoftDeleteAndPurge(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t)
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Delete(ctx, post.ID))

	found, err := repo.FindOne(ctx, FindContentOptions{ID: post.ID})
	require.NoError(t, err)
	assert.Nil(t, found)

	// 刚删的内容还在保留期内
	ids, err := repo.FindTombstonedBefore(ctx, time.Now().AddDate(0, 0, -30), "", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = repo.FindTombstonedBefore(ctx, time.Now().Add(time.Hour), "", 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	require.NoError(t, repo.HardDelete(ctx, ids))

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Content{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&model.ContentGroup{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestContentRepo_FindScheduledBefore(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()
	now := time.Now()

	due := newRepoPost(t)
	require.NoError(t, due.Schedule(now.Add(time.Minute), now))
	require.NoError(t, repo.Create(ctx, due))

	notDue := newRepoPost(t)
	require.NoError(t, notDue.Schedule(now.Add(time.Hour), now))
	require.NoError(t, repo.Create(ctx, notDue))

	page, err := repo.FindScheduledBefore(ctx, now.Add(30*time.Minute), "", 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, due.ID, page[0].ID)
}

func TestContentRepo_Counters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t)
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.IncreaseTotalSeen(ctx, post.ID))
	require.NoError(t, repo.IncreaseCommentsCount(ctx, post.ID))
	require.NoError(t, repo.IncreaseCommentsCount(ctx, post.ID))
	require.NoError(t, repo.DecreaseCommentsCount(ctx, post.ID))

	found, err := repo.FindOne(ctx, FindContentOptions{ID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, found.Aggregation.TotalUsersSeen)
	assert.Equal(t, 1, found.Aggregation.CommentsCount)

	// 评论数不会减到负数
	require.NoError(t, repo.DecreaseCommentsCount(ctx, post.ID))
	require.NoError(t, repo.DecreaseCommentsCount(ctx, post.ID))
	found, err = repo.FindOne(ctx, FindContentOptions{ID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, found.Aggregation.CommentsCount)
}

func TestContentRepo_FindRelationsByIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContentRepo(db)
	ctx := context.Background()

	post := newRepoPost(t, "g1")
	post.SetTags([]string{"t1"})
	require.NoError(t, post.SetSeries([]string{"s1"}))
	require.NoError(t, repo.Create(ctx, post))

	relations, err := repo.FindRelationsByIDs(ctx, []string{post.ID})
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, post.ID, relations[0].ContentID)
	assert.ElementsMatch(t, []string{"g1"}, relations[0].GroupIDs)
	assert.ElementsMatch(t, []string{"t1"}, relations[0].TagIDs)
	assert.ElementsMatch(t, []string{"s1"}, relations[0].SeriesIDs)
}
