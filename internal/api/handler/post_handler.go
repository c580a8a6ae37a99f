package handler

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/pkg/response"
	"Campaigner/internal/pkg/util"
	"Campaigner/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc    service.PostService
	metricsSvc service.MetricsService
}

func NewPostHandler(postSvc service.PostService, metricsSvc service.MetricsService) *PostHandler {
	return &PostHandler{
		postSvc:    postSvc,
		metricsSvc: metricsSvc,
	}
}

func (s *PostHandler) SubmitPost(c *gin.Context) {
	var req dto.SubmitPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.SubmitPost(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) ListCampaignPosts(c *gin.Context) {
	posts, err := s.postSvc.ListCampaignPosts(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) ReviewPost(c *gin.Context) {
	var req dto.ReviewPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.ReviewPost(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// IngestMetrics 手工回填指标快照，分数由定时任务重算
func (s *PostHandler) IngestMetrics(c *gin.Context) {
	var req dto.IngestMetricsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	var fetchedAt time.Time
	if req.FetchedAt != nil {
		fetchedAt = *req.FetchedAt
	}

	post, err := s.metricsSvc.IngestMetrics(c.Request.Context(), c.Param("id"), req.Metrics, fetchedAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}
