package service

import (
	"Trellis/internal/domain"
	"Trellis/internal/repository"
	"context"
)

// 群组和用户数据是上游服务经消息总线同步来的本地副本，
// Provider 直接读副本表，不做跨服务调用

type repoGroupProvider struct {
	groupRepo repository.GroupRepo
}

func NewGroupProvider(groupRepo repository.GroupRepo) GroupProvider {
	return &repoGroupProvider{groupRepo: groupRepo}
}

func (s *repoGroupProvider) FindGroups(ctx context.Context, ids []string) ([]*domain.Group, error) {
	return s.groupRepo.FindGroups(ctx, ids)
}

type repoUserProvider struct {
	userRepo repository.UserRepo
}

func NewUserProvider(userRepo repository.UserRepo) UserProvider {
	return &repoUserProvider{userRepo: userRepo}
}

func (s *repoUserProvider) FindUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.FindUser(ctx, id)
}

func (s *repoUserProvider) FindUsers(ctx context.Context, ids []string) ([]*domain.User, error) {
	return s.userRepo.FindUsers(ctx, ids)
}
