package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/pkg/response"
	"Campaigner/internal/service"

	"github.com/gin-gonic/gin"
)

type ScoringHandler struct {
	scoringSvc service.ScoringService
}

func NewScoringHandler(scoringSvc service.ScoringService) *ScoringHandler {
	return &ScoringHandler{
		scoringSvc: scoringSvc,
	}
}

func (s *ScoringHandler) RecalculatePost(c *gin.Context) {
	result, err := s.scoringSvc.RecalculateOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ScoringHandler) RecalculateCampaign(c *gin.Context) {
	summary, err := s.scoringSvc.RecalculateAllForCampaign(c.Request.Context(), c.Param("id"), consts.ScoreTriggerManual, actorFrom(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// ListScoreRuns 最近的重算审计记录
func (s *ScoringHandler) ListScoreRuns(c *gin.Context) {
	var query dto.ScoreRunQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	runs, err := s.scoringSvc.ListScoreRuns(c.Request.Context(), actorFrom(c), c.Param("id"), query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, runs)
}
