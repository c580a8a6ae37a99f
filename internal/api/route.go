package api

import (
	"Campaigner/internal/api/middleware"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(group.Signer, group.Revocation)
	managers := middleware.CheckRoles(consts.RoleBrand, consts.RoleAdmin)
	influencers := middleware.CheckRoles(consts.RoleInfluencer)
	admins := middleware.CheckRoles(consts.RoleAdmin)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 公开榜单无需登录
		apiGroup.GET("/leaderboard/:campaign_id", group.LeaderboardHandler.PublicLeaderboard)

		campaignGroup := apiGroup.Group("/campaigns")
		campaignGroup.Use(auth)
		{
			campaignGroup.GET("", group.CampaignHandler.ListCampaigns)
			campaignGroup.GET("/:id", group.CampaignHandler.GetCampaign)
			campaignGroup.GET("/:id/leaderboard", group.LeaderboardHandler.CampaignLeaderboard)
			campaignGroup.GET("/:id/posts", group.PostHandler.ListCampaignPosts)

			campaignGroup.POST("/:id/participants", influencers, group.ParticipantHandler.Apply)
			campaignGroup.POST("/:id/posts", influencers, group.PostHandler.SubmitPost)

			manageGroup := campaignGroup.Group("")
			manageGroup.Use(managers)
			{
				manageGroup.POST("", group.CampaignHandler.CreateCampaign)
				manageGroup.PUT("/:id/scoring-rules", group.CampaignHandler.UpdateScoringRules)
				manageGroup.PUT("/:id/status", group.CampaignHandler.UpdateStatus)
				manageGroup.GET("/:id/participants", group.ParticipantHandler.List)
				manageGroup.PUT("/:id/participants/:influencer_id", group.ParticipantHandler.Review)
				manageGroup.GET("/:id/report", group.CampaignHandler.Report)
				manageGroup.POST("/:id/report/export", group.CampaignHandler.ExportReport)
				manageGroup.GET("/:id/score-runs", group.ScoringHandler.ListScoreRuns)
			}
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(auth)
		{
			postGroup.GET("/:id", group.PostHandler.GetPost)

			adminGroup := postGroup.Group("")
			adminGroup.Use(admins)
			{
				adminGroup.PUT("/:id/review", group.PostHandler.ReviewPost)
				adminGroup.PUT("/:id/metrics", group.PostHandler.IngestMetrics)
			}
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, admins)
		{
			adminGroup.POST("/posts/:id/score", group.ScoringHandler.RecalculatePost)
			adminGroup.POST("/campaigns/:id/score", group.ScoringHandler.RecalculateCampaign)
		}
	}

	return r
}
