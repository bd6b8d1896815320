package service

import (
	"Trellis/internal/domain"
	"context"
)

// UserProvider 外部用户服务的查询口，只读
type UserProvider interface {
	FindUser(ctx context.Context, id string) (*domain.User, error)
	FindUsers(ctx context.Context, ids []string) ([]*domain.User, error)
}

// GroupProvider 外部群组服务的查询口，隐私级别和归档状态都以它的答案为准
type GroupProvider interface {
	FindGroups(ctx context.Context, ids []string) ([]*domain.Group, error)
}

// ContentAuthority 内容操作的权限裁决。写权限归作者，
// 读权限由可见性规则决定，接入方可以替换成自己的策略
type ContentAuthority interface {
	CheckCRUD(ctx context.Context, actorID string, content *domain.ContentAggregate) error
	CheckRead(ctx context.Context, actorID string, content *domain.ContentAggregate) error
}

type ownerAuthority struct{}

func NewContentAuthority() ContentAuthority {
	return &ownerAuthority{}
}

func (a *ownerAuthority) CheckCRUD(ctx context.Context, actorID string, content *domain.ContentAggregate) error {
	if !content.IsOwner(actorID) {
		return ErrContentNoCRUDPermission
	}
	return nil
}

func (a *ownerAuthority) CheckRead(ctx context.Context, actorID string, content *domain.ContentAggregate) error {
	if !content.IsVisibleTo(actorID) {
		return ErrContentNoReadPermission
	}
	return nil
}
