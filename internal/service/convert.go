package service

import (
	"Campaigner/internal/api/dto"
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/util"

	"github.com/jinzhu/copier"
)

func toCampaignDTO(campaign *model.Campaign) *dto.CampaignDTO {
	var result dto.CampaignDTO
	_ = copier.Copy(&result, campaign)
	return &result
}

func toParticipantDTO(participant *model.CampaignParticipant) *dto.ParticipantDTO {
	var result dto.ParticipantDTO
	_ = copier.Copy(&result, participant)
	return &result
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	var result dto.PostDTO
	_ = copier.Copy(&result, post)
	result.Hashtags = util.ExtractHashtags(post.Caption)
	result.Mentions = util.ExtractMentions(post.Caption)
	return &result
}
