package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(t *testing.T, groupIDs ...string) *ContentAggregate {
	t.Helper()
	if len(groupIDs) == 0 {
		groupIDs = []string{"g1"}
	}
	post, err := NewPost("owner-1", groupIDs, time.Now())
	require.NoError(t, err)
	return post
}

func TestNewPost_StartsAsDraft(t *testing.T) {
	post := newTestPost(t)

	assert.Equal(t, ContentTypePost, post.Type)
	assert.Equal(t, ContentStatusDraft, post.Status)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "owner-1", post.CreatedBy)
	assert.True(t, post.IsDraft())
	assert.False(t, post.IsVisible())
}

func TestNewContent_RejectsEmptyAudience(t *testing.T) {
	_, err := NewPost("owner-1", nil, time.Now())
	assert.ErrorIs(t, err, ErrContentEmptyAudience)

	_, err = NewArticle("owner-1", []string{}, time.Now())
	assert.ErrorIs(t, err, ErrContentEmptyAudience)
}

func TestSetAudience_EmptyKeepsOriginal(t *testing.T) {
	post := newTestPost(t, "g1", "g2")

	err := post.SetAudience(nil)
	assert.ErrorIs(t, err, ErrContentEmptyAudience)
	assert.ElementsMatch(t, []string{"g1", "g2"}, post.GroupIDs)
}

func TestState_ComputesRelationDiff(t *testing.T) {
	post := newTestPost(t, "g1", "g2")
	post.GroupIDs = []string{"g1", "g2"}
	post.MarkLoaded()

	require.NoError(t, post.SetAudience([]string{"g2", "g3"}))

	state := post.State()
	assert.ElementsMatch(t, []string{"g3"}, state.AttachGroupIDs)
	assert.ElementsMatch(t, []string{"g1"}, state.DetachGroupIDs)
}

func TestState_AttachThenDetachCancelsOut(t *testing.T) {
	post := newTestPost(t, "g1")
	post.MarkLoaded()

	// 先加 g2 再移除，相对基线没有变化
	require.NoError(t, post.SetAudience([]string{"g1", "g2"}))
	require.NoError(t, post.SetAudience([]string{"g1"}))

	state := post.State()
	assert.Empty(t, state.AttachGroupIDs)
	assert.Empty(t, state.DetachGroupIDs)
}

func TestResetState_MovesBaseline(t *testing.T) {
	post := newTestPost(t, "g1")
	post.MarkLoaded()

	require.NoError(t, post.SetAudience([]string{"g1", "g2"}))
	post.ResetState()

	state := post.State()
	assert.Empty(t, state.AttachGroupIDs)
	assert.Empty(t, state.DetachGroupIDs)
}

func TestPublish_FromDraft(t *testing.T) {
	post := newTestPost(t)
	now := time.Now()

	require.NoError(t, post.Publish(now))

	assert.Equal(t, ContentStatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, now, *post.PublishedAt, time.Second)
	assert.True(t, post.IsVisible())
}

func TestPublish_RejectsFromPublished(t *testing.T) {
	post := newTestPost(t)
	require.NoError(t, post.Publish(time.Now()))

	err := post.Publish(time.Now())
	assert.ErrorIs(t, err, ErrContentInvalidStatus)
}

func TestPublish_WithProcessingVideoEntersProcessing(t *testing.T) {
	post := newTestPost(t)
	post.Media.Videos = []Video{{ID: "v1", IsProcessed: false}}

	require.NoError(t, post.Publish(time.Now()))

	assert.Equal(t, ContentStatusProcessing, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.False(t, post.IsVisible())
}

func TestCompleteProcessing_MovesToPublished(t *testing.T) {
	post := newTestPost(t)
	post.Media.Videos = []Video{{ID: "v1", IsProcessed: false}}
	require.NoError(t, post.Publish(time.Now()))

	require.NoError(t, post.CompleteProcessing(time.Now()))

	assert.Equal(t, ContentStatusPublished, post.Status)
	assert.NotNil(t, post.PublishedAt)
}

func TestCompleteProcessing_RejectsFromDraft(t *testing.T) {
	post := newTestPost(t)
	err := post.CompleteProcessing(time.Now())
	assert.ErrorIs(t, err, ErrContentInvalidStatus)
}

func TestSchedule_RequiresFutureTime(t *testing.T) {
	post := newTestPost(t)
	now := time.Now()

	err := post.Schedule(now.Add(-time.Hour), now)
	assert.ErrorIs(t, err, ErrContentInvalidScheduledTime)

	require.NoError(t, post.Schedule(now.Add(time.Hour), now))
	assert.Equal(t, ContentStatusWaitingSchedule, post.Status)
	require.NotNil(t, post.ScheduledAt)
}

func TestPublish_FromWaitingScheduleAndScheduleFailed(t *testing.T) {
	post := newTestPost(t)
	now := time.Now()
	require.NoError(t, post.Schedule(now.Add(time.Hour), now))

	post.MarkScheduleFailed()
	assert.Equal(t, ContentStatusScheduleFailed, post.Status)

	require.NoError(t, post.Publish(now.Add(2*time.Hour)))
	assert.Equal(t, ContentStatusPublished, post.Status)
}

func TestSeriesPublish_RequiresCover(t *testing.T) {
	series, err := NewSeries("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)

	err = series.Publish(time.Now())
	assert.ErrorIs(t, err, ErrSeriesRequiredCover)

	cover := "cover.png"
	series.Cover = &cover
	require.NoError(t, series.Publish(time.Now()))
}

func TestSetItems_OnlyForSeries(t *testing.T) {
	post := newTestPost(t)
	err := post.SetItems([]string{"c1"})
	assert.ErrorIs(t, err, ErrContentInvalidType)

	series, err := NewSeries("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, series.SetItems([]string{"c1", "c2"}))

	// z-index 按传入顺序赋值
	require.Len(t, series.Items, 2)
	assert.Equal(t, 0, series.Items[0].Zindex)
	assert.Equal(t, 1, series.Items[1].Zindex)
}

func TestAddItem_AppendsAtEnd(t *testing.T) {
	series, err := NewSeries("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, series.SetItems([]string{"c1"}))

	require.NoError(t, series.AddItem("c2"))
	require.Len(t, series.Items, 2)
	assert.Equal(t, "c2", series.Items[1].ID)
	assert.Equal(t, 1, series.Items[1].Zindex)
}

func TestSetSeries_RejectedForSeries(t *testing.T) {
	series, err := NewSeries("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)

	err = series.SetSeries([]string{"s1"})
	assert.ErrorIs(t, err, ErrSeriesInvalidItem)
}

func TestSetCategories_ArticleOnly(t *testing.T) {
	post := newTestPost(t)
	err := post.SetCategories([]string{"cat1"})
	assert.ErrorIs(t, err, ErrContentInvalidType)

	article, err := NewArticle("owner-1", []string{"g1"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, article.SetCategories([]string{"cat1"}))
}

func TestSetPrivacyFromGroups(t *testing.T) {
	post := newTestPost(t)

	// 只要有一个 OPEN 群组整体就是 OPEN
	post.SetPrivacyFromGroups([]Group{
		{ID: "g1", Privacy: PrivacySecret},
		{ID: "g2", Privacy: PrivacyOpen},
	})
	assert.Equal(t, PrivacyOpen, post.Privacy)

	// 否则取最宽的一档：CLOSED > PRIVATE > SECRET
	post.SetPrivacyFromGroups([]Group{
		{ID: "g1", Privacy: PrivacySecret},
		{ID: "g2", Privacy: PrivacyPrivate},
	})
	assert.Equal(t, PrivacyPrivate, post.Privacy)

	post.SetPrivacyFromGroups([]Group{
		{ID: "g1", Privacy: PrivacyClosed},
		{ID: "g2", Privacy: PrivacySecret},
	})
	assert.Equal(t, PrivacyClosed, post.Privacy)

	post.SetPrivacyFromGroups([]Group{
		{ID: "g1", Privacy: PrivacySecret},
	})
	assert.Equal(t, PrivacySecret, post.Privacy)
}

func TestVisibility(t *testing.T) {
	post := newTestPost(t)

	assert.True(t, post.IsVisibleTo("owner-1"))
	assert.False(t, post.IsVisibleTo("someone-else"))

	require.NoError(t, post.Publish(time.Now()))
	assert.True(t, post.IsVisibleTo("someone-else"))

	post.Hide()
	assert.False(t, post.IsVisible())
	assert.True(t, post.IsVisibleTo("owner-1"))
}

func TestCommentsCounter(t *testing.T) {
	post := newTestPost(t)
	post.IncreaseCommentsCount()
	post.IncreaseCommentsCount()
	post.DecreaseCommentsCount()
	assert.Equal(t, 1, post.Aggregation.CommentsCount)

	// 不会减到负数
	post.DecreaseCommentsCount()
	post.DecreaseCommentsCount()
	assert.Equal(t, 0, post.Aggregation.CommentsCount)
}
