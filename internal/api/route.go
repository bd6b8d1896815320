package api

import (
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		internalGroup := apiGroup.Group("/internal")
		{
			internalGroup.GET("/contents", group.InternalHandler.GetContents)
			internalGroup.GET("/contents/relations", group.InternalHandler.GetContentRelations)
			internalGroup.GET("/reactions/content-counts", group.InternalHandler.GetContentReactionCounts)
			internalGroup.GET("/reactions/comment-counts", group.InternalHandler.GetCommentReactionCounts)
			internalGroup.POST("/contents/:content_id/processed", group.InternalHandler.CompleteProcessing)
			internalGroup.POST("/reactions", group.InternalHandler.CreateReaction)
			internalGroup.DELETE("/reactions", group.InternalHandler.DeleteReaction)
		}
	}

	return r
}
