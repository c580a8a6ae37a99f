package api

import (
	"Campaigner/internal/api/handler"
	"Campaigner/internal/api/middleware"
	"Campaigner/internal/pkg/security"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例及鉴权依赖
type HandlersGroup struct {
	CampaignHandler    *handler.CampaignHandler
	ParticipantHandler *handler.ParticipantHandler
	PostHandler        *handler.PostHandler
	ScoringHandler     *handler.ScoringHandler
	LeaderboardHandler *handler.LeaderboardHandler

	Signer     *security.JWTSigner
	Revocation middleware.TokenRevocation
}
