package models

// Audit actions.
const (
	AuditActionAddStock = "ADD_STOCK"
	AuditActionAddFund  = "ADD_FUND"
)

// AuditLog records holding writes.
type AuditLog struct {
	Base
	UserID       string `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
