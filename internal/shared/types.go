package shared

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Task types processed by the worker
const (
	TypeNotifyDecision = "moderation:notify_decision"
	TypePendingDigest  = "moderation:pending_digest"
	TypeProcessAvatar  = "profile:process_avatar"
)

// NotifyDecisionPayload is enqueued after every Approve/Reject
type NotifyDecisionPayload struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ProcessAvatarPayload asks the worker to build a thumbnail for a new profile
type ProcessAvatarPayload struct {
	ProfileID string `json:"profileId"`
	AvatarRef string `json:"avatarRef"`
}

// PendingDigestPayload is empty; the handler reads the current counts
type PendingDigestPayload struct{}

// AccountBasicInfo avoids importing the account domain from jobs
type AccountBasicInfo struct {
	ID          string
	Email       string
	DisplayName string
}
