package consts

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

const (
	ParticipantStatusPending  = "pending"
	ParticipantStatusApproved = "approved"
	ParticipantStatusRejected = "rejected"
)

const (
	RoleAdmin      = "ADMIN"
	RoleBrand      = "BRAND"
	RoleInfluencer = "INFLUENCER"
)

const (
	ScoreTriggerManual = "manual"
	ScoreTriggerJob    = "job"
)

const (
	ReportContentType = "application/json"
)
