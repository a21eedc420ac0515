package model

// AdminSettings is a single-row configuration record.
type AdminSettings struct {
	PlatformName         string `json:"platform_name"`
	AutoApproveThreshold int    `json:"auto_approve_threshold"`
	MaxTokensPerDay      int    `json:"max_tokens_per_day"`
	MaintenanceMode      bool   `json:"maintenance_mode"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}
