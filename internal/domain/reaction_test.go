package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReactionName(t *testing.T) {
	assert.Equal(t, "thumbsup", NormalizeReactionName("+1"))
	assert.Equal(t, "thumbsdown", NormalizeReactionName("-1"))
	assert.Equal(t, "heart", NormalizeReactionName("heart"))
}

func TestNewReaction_NormalizesName(t *testing.T) {
	r := NewReaction(ReactionTargetPost, "p1", "+1", "u1", time.Now())

	assert.Equal(t, "thumbsup", r.ReactionName)
	assert.NotEmpty(t, r.ID)
	assert.True(t, r.IsContentTarget())

	c := NewReaction(ReactionTargetComment, "c1", "smile", "u1", time.Now())
	assert.False(t, c.IsContentTarget())
}
