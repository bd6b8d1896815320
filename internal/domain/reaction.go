package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReactionTarget string

const (
	ReactionTargetPost    ReactionTarget = "POST"
	ReactionTargetArticle ReactionTarget = "ARTICLE"
	ReactionTargetComment ReactionTarget = "COMMENT"
)

// Reaction 表态实体，创建后不可修改，只能删除。
// 唯一性约束：(targetId, createdBy, reactionName) 至多一条
type Reaction struct {
	ID           string
	Target       ReactionTarget
	TargetID     string
	ReactionName string
	CreatedBy    string
	CreatedAt    time.Time
}

// NewReaction 生成 id 并在入库前归一化表态名
func NewReaction(target ReactionTarget, targetID, reactionName, createdBy string, now time.Time) *Reaction {
	return &Reaction{
		ID:           uuid.NewString(),
		Target:       target,
		TargetID:     targetID,
		ReactionName: NormalizeReactionName(reactionName),
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
}

// NormalizeReactionName emoji 短名归一化：+1/-1 统一为 thumbsup/thumbsdown，
// 持久化和查重都使用归一化后的名字
func NormalizeReactionName(name string) string {
	switch name {
	case "+1":
		return "thumbsup"
	case "-1":
		return "thumbsdown"
	}
	return name
}

// IsValid 表态目标只认 POST/ARTICLE/COMMENT 三种
func (t ReactionTarget) IsValid() bool {
	switch t {
	case ReactionTargetPost, ReactionTargetArticle, ReactionTargetComment:
		return true
	}
	return false
}

func (r *Reaction) IsContentTarget() bool {
	return r.Target == ReactionTargetPost || r.Target == ReactionTargetArticle
}

// NameCount 某个表态名的计数。结果列表按该表态名首次出现时间升序排列，
// 这是面向用户的契约：徽章按首次使用顺序展示，而不是按热度
type NameCount struct {
	ReactionName string `json:"reactionName"`
	Count        int64  `json:"count"`
}
