package models

// AuditLog records user-initiated changes to the ledger.
type AuditLog struct {
	Base
	Action       string `gorm:"not null;index" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
