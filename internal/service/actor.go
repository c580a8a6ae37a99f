package service

import (
	"Campaigner/internal/model"
	"Campaigner/internal/pkg/consts"
	"slices"
)

// Actor 当前请求的调用方
type Actor struct {
	UserID uint64
	Roles  []string
}

func (a Actor) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(consts.RoleAdmin)
}

// canManage 管理员或活动所属品牌方
func (a Actor) canManage(campaign *model.Campaign) bool {
	return a.IsAdmin() || (a.HasRole(consts.RoleBrand) && campaign.BrandID == a.UserID)
}
