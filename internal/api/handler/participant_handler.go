package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/response"
	"Campaigner/internal/pkg/util"
	"Campaigner/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	campaignSvc service.CampaignService
}

func NewParticipantHandler(campaignSvc service.CampaignService) *ParticipantHandler {
	return &ParticipantHandler{
		campaignSvc: campaignSvc,
	}
}

// Apply 达人报名参加活动
func (s *ParticipantHandler) Apply(c *gin.Context) {
	participant, err := s.campaignSvc.ApplyParticipant(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participant)
}

func (s *ParticipantHandler) Review(c *gin.Context) {
	influencerID, err := strconv.ParseUint(c.Param("influencer_id"), 10, 64)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewParticipantReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	participant, err := s.campaignSvc.ReviewParticipant(c.Request.Context(), actorFrom(c), c.Param("id"), influencerID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participant)
}

func (s *ParticipantHandler) List(c *gin.Context) {
	participants, err := s.campaignSvc.ListParticipants(c.Request.Context(), actorFrom(c), c.Param("id"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, participants)
}
