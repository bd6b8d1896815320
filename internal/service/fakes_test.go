package service

import (
	"Trellis/internal/domain"
	"context"
	"errors"
	"sync"
)

// memoryCountCache 进程内的缓存替身，可注入读写失败
type memoryCountCache struct {
	mu      sync.Mutex
	data    map[string][]domain.NameCount
	getErr  error
	setErr  error
	setHits int
	getHits int
}

func newMemoryCountCache() *memoryCountCache {
	return &memoryCountCache{data: make(map[string][]domain.NameCount)}
}

func cacheKey(target domain.ReactionTarget, id string) string {
	if target == domain.ReactionTargetComment {
		return "comment:" + id
	}
	return "content:" + id
}

func (c *memoryCountCache) Get(ctx context.Context, target domain.ReactionTarget, ids []string) (map[string][]domain.NameCount, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getHits++
	if c.getErr != nil {
		return nil, nil, c.getErr
	}
	hits := make(map[string][]domain.NameCount)
	var missing []string
	for _, id := range ids {
		if counts, ok := c.data[cacheKey(target, id)]; ok {
			hits[id] = counts
		} else {
			missing = append(missing, id)
		}
	}
	return hits, missing, nil
}

func (c *memoryCountCache) Set(ctx context.Context, target domain.ReactionTarget, counts map[string][]domain.NameCount) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	for id, list := range counts {
		c.data[cacheKey(target, id)] = list
		c.setHits++
	}
	return nil
}

func (c *memoryCountCache) Invalidate(ctx context.Context, target domain.ReactionTarget, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, cacheKey(target, id))
	return nil
}

// recordingPublisher 记录发出的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) eventNames() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.EventName())
	}
	return names
}

// staticGroupProvider 固定群组表
type staticGroupProvider struct {
	groups map[string]*domain.Group
}

func newStaticGroupProvider(groups ...*domain.Group) *staticGroupProvider {
	m := make(map[string]*domain.Group)
	for _, g := range groups {
		m[g.ID] = g
	}
	return &staticGroupProvider{groups: m}
}

func (p *staticGroupProvider) FindGroups(ctx context.Context, ids []string) ([]*domain.Group, error) {
	out := make([]*domain.Group, 0, len(ids))
	for _, id := range ids {
		if g, ok := p.groups[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// staticUserProvider 固定用户表
type staticUserProvider struct {
	users map[string]*domain.User
}

func newStaticUserProvider(users ...*domain.User) *staticUserProvider {
	m := make(map[string]*domain.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &staticUserProvider{users: m}
}

func (p *staticUserProvider) FindUser(ctx context.Context, id string) (*domain.User, error) {
	return p.users[id], nil
}

func (p *staticUserProvider) FindUsers(ctx context.Context, ids []string) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := p.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

var errCacheDown = errors.New("cache down")
