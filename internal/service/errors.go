package service

import (
	"Campaigner/internal/scoring"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrCampaignNotFound        = errors.New("活动不存在")
	ErrCampaignNotActive       = errors.New("活动未在进行中")
	ErrInvalidStatusTransition = errors.New("活动状态流转不合法")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrParticipantNotFound     = errors.New("参与记录不存在")
	ErrParticipantExists       = errors.New("已申请参与该活动")
	ErrNotApprovedParticipant  = errors.New("尚未通过活动审核")
	ErrRecalcInProgress        = errors.New("该活动正在重算分数，请稍后重试")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:                BadRequest,
	ErrCampaignNotFound:            NotFound,
	ErrCampaignNotActive:           BadRequest,
	ErrInvalidStatusTransition:     BadRequest,
	ErrPostNotFound:                NotFound,
	ErrParticipantNotFound:         NotFound,
	ErrParticipantExists:           Conflict,
	ErrNotApprovedParticipant:      Forbidden,
	ErrRecalcInProgress:            Conflict,
	UnauthorizedError:              Forbidden,
	UnExpectedError:                InternalServerError,
	scoring.ErrInvalidScoringRules: BadRequest,
}

// CodeOf 查找错误链上第一个已登记的业务码
func CodeOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
