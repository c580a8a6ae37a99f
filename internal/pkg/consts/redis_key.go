package consts

const (
	PostScoreDirtyKey = "post:score:dirty"
)

const (
	CampaignScoreLock = "campaign:score:lock:"
)

const (
	TokenBlacklistKey = "token:blacklist:"
)
