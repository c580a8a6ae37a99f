package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/response"
	"Campaigner/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardSvc: leaderboardSvc,
	}
}

// CampaignLeaderboard 完整榜单
func (s *LeaderboardHandler) CampaignLeaderboard(c *gin.Context) {
	board, err := s.leaderboardSvc.CampaignLeaderboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}

// PublicLeaderboard 公开榜单，未传 limit 时使用默认条数
func (s *LeaderboardHandler) PublicLeaderboard(c *gin.Context) {
	var query dto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	board, err := s.leaderboardSvc.PublicLeaderboard(c.Request.Context(), c.Param("campaign_id"), query.Limit, query.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}
