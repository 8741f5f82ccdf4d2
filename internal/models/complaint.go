package models

import "gorm.io/gorm"

// Complaint statuses. The core only ever writes "pending"; resolution
// happens through the admin surface.
const (
	ComplaintPending  = "pending"
	ComplaintResolved = "resolved"
)

// Complaint is a report filed by one participant of an active chat
// against their partner.
type Complaint struct {
	gorm.Model

	ChatID     string `gorm:"index;not null" json:"chat_id"`
	ReporterID string `gorm:"index;not null" json:"reporter_id"`
	TargetID   string `gorm:"index" json:"target_id"`
	Reason     string `gorm:"type:text" json:"reason"`
	Status     string `gorm:"default:pending;index" json:"status"`
}
