package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/consts"
	"Campaigner/internal/repository"
	"Campaigner/internal/scoring"
	"context"
	"strings"
)

type PostService interface {
	SubmitPost(ctx context.Context, actor Actor, campaignID string, req *dto.SubmitPostReq) (*dto.PostDTO, error)
	GetPost(ctx context.Context, actor Actor, id string) (*dto.PostDTO, error)
	ListCampaignPosts(ctx context.Context, actor Actor, campaignID string) ([]*dto.PostDTO, error)
	ReviewPost(ctx context.Context, id string, req *dto.ReviewPostReq) (*dto.PostDTO, error)
}

type PostServiceImpl struct {
	campaignRepo    repository.CampaignRepo
	participantRepo repository.ParticipantRepo
	postRepo        repository.PostRepo
}

func NewPostService(campaignRepo repository.CampaignRepo, participantRepo repository.ParticipantRepo, postRepo repository.PostRepo) PostService {
	return &PostServiceImpl{
		campaignRepo:    campaignRepo,
		participantRepo: participantRepo,
		postRepo:        postRepo,
	}
}

// SubmitPost 仅进行中的活动且已通过审核的达人可以提交
func (s *PostServiceImpl) SubmitPost(ctx context.Context, actor Actor, campaignID string, req *dto.SubmitPostReq) (*dto.PostDTO, error) {
	platform := scoring.NormalizePlatform(req.Platform)
	if platform == "" {
		return nil, ErrParamInvalid
	}

	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != consts.CampaignStatusActive {
		return nil, ErrCampaignNotActive
	}

	participant, err := s.participantRepo.GetParticipant(ctx, campaignID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if participant == nil || participant.Status != consts.ParticipantStatusApproved {
		return nil, ErrNotApprovedParticipant
	}

	post := &model.Post{
		CampaignID:   campaignID,
		InfluencerID: actor.UserID,
		Platform:     string(platform),
		PostURL:      strings.TrimSpace(req.PostURL),
		Caption:      req.Caption,
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

// GetPost 作者、活动管理方与管理员可见
func (s *PostServiceImpl) GetPost(ctx context.Context, actor Actor, id string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if !actor.IsAdmin() && post.InfluencerID != actor.UserID {
		campaign, err := s.campaignRepo.GetCampaign(ctx, post.CampaignID)
		if err != nil {
			return nil, err
		}
		if campaign == nil || !actor.canManage(campaign) {
			return nil, UnauthorizedError
		}
	}
	return toPostDTO(post), nil
}

// ListCampaignPosts 管理方看到全部帖子，达人只看到自己的
func (s *PostServiceImpl) ListCampaignPosts(ctx context.Context, actor Actor, campaignID string) ([]*dto.PostDTO, error) {
	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	var posts []*model.Post
	if actor.canManage(campaign) {
		posts, err = s.postRepo.ListByCampaign(ctx, campaignID)
	} else {
		posts, err = s.postRepo.ListByInfluencer(ctx, campaignID, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostDTO(post))
	}
	return result, nil
}

// ReviewPost 管理员审核帖子是否计入排行榜
func (s *PostServiceImpl) ReviewPost(ctx context.Context, id string, req *dto.ReviewPostReq) (*dto.PostDTO, error) {
	if req.IsValidForCampaign == nil {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err = s.postRepo.UpdateValidation(ctx, id, *req.IsValidForCampaign, req.ValidationNotes); err != nil {
		return nil, err
	}
	post.IsValidForCampaign = *req.IsValidForCampaign
	post.ValidationNotes = req.ValidationNotes
	return toPostDTO(post), nil
}
