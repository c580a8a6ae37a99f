package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/response"
	"Campaigner/internal/pkg/util"
	"Campaigner/internal/service"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignSvc service.CampaignService
}

func NewCampaignHandler(campaignSvc service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignSvc: campaignSvc,
	}
}

func (s *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	campaign, err := s.campaignSvc.CreateCampaign(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaign)
}

func (s *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := s.campaignSvc.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaign)
}

func (s *CampaignHandler) ListCampaigns(c *gin.Context) {
	var req dto.ListCampaignsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	campaigns, err := s.campaignSvc.ListCampaigns(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaigns)
}

func (s *CampaignHandler) UpdateScoringRules(c *gin.Context) {
	var req dto.UpdateScoringRulesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	campaign, err := s.campaignSvc.UpdateScoringRules(c.Request.Context(), actorFrom(c), c.Param("id"), req.ScoringRules)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaign)
}

func (s *CampaignHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateCampaignStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	campaign, err := s.campaignSvc.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, campaign)
}

// Report 活动汇总报表
func (s *CampaignHandler) Report(c *gin.Context) {
	report, err := s.campaignSvc.Report(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// ExportReport 导出报表到对象存储并返回临时下载链接
func (s *CampaignHandler) ExportReport(c *gin.Context) {
	export, err := s.campaignSvc.ExportReport(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, export)
}
