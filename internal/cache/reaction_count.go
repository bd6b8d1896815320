package cache

import (
	"Trellis/internal/domain"
	"Trellis/internal/pkg/consts"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var reactionCountTTL = time.Hour * 24 * consts.ReactionCountCacheTTLDays

// ReactionCountCache 表态计数的旁路缓存。缓存的是"该目标的完整计数列表",
// 空列表也会被缓存，避免无表态内容反复穿透到数据库
type ReactionCountCache interface {
	Get(ctx context.Context, target domain.ReactionTarget, ids []string) (hits map[string][]domain.NameCount, missing []string, err error)
	Set(ctx context.Context, target domain.ReactionTarget, counts map[string][]domain.NameCount) error
	Invalidate(ctx context.Context, target domain.ReactionTarget, id string) error
}

type reactionCountCacheImpl struct {
	rdb *redis.Client
}

func NewReactionCountCache(rdb *redis.Client) ReactionCountCache {
	return &reactionCountCacheImpl{rdb: rdb}
}

func countKey(target domain.ReactionTarget, id string) string {
	if target == domain.ReactionTargetComment {
		return consts.CommentReactionCountKey + id
	}
	return consts.ContentReactionCountKey + id
}

// Get 单次 MGET 批量读取。反序列化失败的条目按未命中处理，由回源覆盖修复
func (s *reactionCountCacheImpl) Get(ctx context.Context, target domain.ReactionTarget, ids []string) (map[string][]domain.NameCount, []string, error) {
	if len(ids) == 0 {
		return map[string][]domain.NameCount{}, nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, countKey(target, id))
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	hits := make(map[string][]domain.NameCount, len(ids))
	var missing []string
	for i, id := range ids {
		raw, ok := values[i].(string)
		if !ok {
			missing = append(missing, id)
			continue
		}
		counts := make([]domain.NameCount, 0)
		if err := json.Unmarshal([]byte(raw), &counts); err != nil {
			missing = append(missing, id)
			continue
		}
		hits[id] = counts
	}
	return hits, missing, nil
}

// Set pipeline 批量写入，带过期时间
func (s *reactionCountCacheImpl) Set(ctx context.Context, target domain.ReactionTarget, counts map[string][]domain.NameCount) error {
	if len(counts) == 0 {
		return nil
	}
	pipe := s.rdb.Pipeline()
	for id, list := range counts {
		if list == nil {
			list = []domain.NameCount{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return err
		}
		pipe.Set(ctx, countKey(target, id), data, reactionCountTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate 写路径只删缓存不回填，下一次读重新回源
func (s *reactionCountCacheImpl) Invalidate(ctx context.Context, target domain.ReactionTarget, id string) error {
	return s.rdb.Del(ctx, countKey(target, id)).Err()
}
