package handler

import (
	"Trellis/internal/api/dto"
	"Trellis/internal/domain"
	"Trellis/internal/pkg/response"
	"Trellis/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// InternalHandler 供内部系统（网关 BFF、搜索索引、转码回调）调用的接口。
// 身份认证在网关完成，操作者从 X-User-ID 头取
type InternalHandler struct {
	contentService  service.ContentService
	reactionService service.ReactionService
	countService    service.ReactionCountService
}

func NewInternalHandler(
	contentService service.ContentService,
	reactionService service.ReactionService,
	countService service.ReactionCountService,
) *InternalHandler {
	return &InternalHandler{
		contentService:  contentService,
		reactionService: reactionService,
		countService:    countService,
	}
}

func idsParam(c *gin.Context) []string {
	raw := c.Query("ids")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetContentRelations 搜索索引批处理拉取内容关系
func (h *InternalHandler) GetContentRelations(c *gin.Context) {
	ids := idsParam(c)
	if len(ids) == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	relations, err := h.contentService.GetContentRelations(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, relations)
}

// GetContents 批量拉取内容视图，读者不可见的条目被静默剔除
func (h *InternalHandler) GetContents(c *gin.Context) {
	ids := idsParam(c)
	if len(ids) == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	actorID := c.GetHeader("X-User-ID")
	contents, err := h.contentService.GetContents(c.Request.Context(), ids, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]*dto.ContentView, 0, len(contents))
	for _, content := range contents {
		view := &dto.ContentView{}
		if err := copier.Copy(view, content); err != nil {
			response.Error(c, err)
			return
		}
		view.CommentsCount = content.Aggregation.CommentsCount
		view.TotalUsersSeen = content.Aggregation.TotalUsersSeen
		views = append(views, view)
	}
	response.Success(c, views)
}

// GetContentReactionCounts 批量拉取内容表态计数
func (h *InternalHandler) GetContentReactionCounts(c *gin.Context) {
	ids := idsParam(c)
	if len(ids) == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	counts, err := h.countService.GetContentReactionCounts(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}

// GetCommentReactionCounts 批量拉取评论表态计数
func (h *InternalHandler) GetCommentReactionCounts(c *gin.Context) {
	ids := idsParam(c)
	if len(ids) == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	counts, err := h.countService.GetCommentReactionCounts(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, counts)
}

type reactionRequest struct {
	Target       string `json:"target"`
	TargetID     string `json:"targetId"`
	ReactionName string `json:"reactionName"`
}

// CreateReaction 创建表态，重复表态返回业务错误
func (h *InternalHandler) CreateReaction(c *gin.Context) {
	actorID := c.GetHeader("X-User-ID")
	if actorID == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	reaction, err := h.reactionService.CreateReaction(c.Request.Context(), service.CreateReactionInput{
		Target:       domain.ReactionTarget(req.Target),
		TargetID:     req.TargetID,
		ReactionName: req.ReactionName,
		ActorID:      actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reaction)
}

// DeleteReaction 删除自己的表态
func (h *InternalHandler) DeleteReaction(c *gin.Context) {
	actorID := c.GetHeader("X-User-ID")
	if actorID == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	err := h.reactionService.DeleteReaction(c.Request.Context(), service.DeleteReactionInput{
		Target:       domain.ReactionTarget(req.Target),
		TargetID:     req.TargetID,
		ReactionName: req.ReactionName,
		ActorID:      actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CompleteProcessing 转码服务回调，内容从处理中进入已发布
func (h *InternalHandler) CompleteProcessing(c *gin.Context) {
	contentID := c.Param("content_id")
	if contentID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := h.contentService.CompleteProcessing(c.Request.Context(), contentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
