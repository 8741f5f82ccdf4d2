package storage

import (
	"log"

	"anontalk/backend/internal/models"
)

// SaveComplaint records a pending complaint. The core only writes
// these rows; the admin surface resolves them.
func (s *Service) SaveComplaint(c *models.Complaint) error {
	if c.Status == "" {
		c.Status = models.ComplaintPending
	}
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: failed to save complaint for chat %s: %v", c.ChatID, err)
		return err
	}
	return nil
}

// ResolveComplaint marks a complaint handled.
func (s *Service) ResolveComplaint(complaintID uint) error {
	return s.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		Update("status", models.ComplaintResolved).Error
}
