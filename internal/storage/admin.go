package storage

import (
	"time"

	"anontalk/backend/internal/models"
)

// Stats is the aggregate snapshot served to the admin dashboard.
type Stats struct {
	ActiveUsers        int64            `json:"active_users"`
	ActiveChats        int64            `json:"active_chats"`
	SearchingUsers     int64            `json:"searching_users"`
	PendingComplaints  int64            `json:"pending_complaints"`
	GenderDistribution map[string]int64 `json:"gender_distribution"`
	HourlyChats        []HourlyCount    `json:"hourly_chats"`
	AvgChatMinutes     float64          `json:"avg_chat_duration_minutes"`
	MessagesToday      int64            `json:"total_messages_today"`
}

// HourlyCount is one bucket of the chats-per-hour activity chart.
type HourlyCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// ActiveChatSummary is one row of the active chats listing, joined
// with the participants' genders.
type ActiveChatSummary struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	MessageCount int       `json:"message_count"`
	User1Gender  string    `json:"user1_gender"`
	User2Gender  string    `json:"user2_gender"`
}

// GetStats computes the dashboard aggregates in the same shape the
// original reporting queries produced.
func (s *Service) GetStats() (*Stats, error) {
	st := &Stats{GenderDistribution: make(map[string]int64)}

	hourAgo := time.Now().Add(-time.Hour)
	dayAgo := time.Now().Add(-24 * time.Hour)

	if err := s.DB.Model(&models.User{}).
		Where("last_active > ?", hourAgo).Count(&st.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Chat{}).
		Where("status = ?", models.ChatActive).Count(&st.ActiveChats).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("status = ?", models.StatusSearching).Count(&st.SearchingUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Complaint{}).
		Where("status = ?", models.ComplaintPending).Count(&st.PendingComplaints).Error; err != nil {
		return nil, err
	}

	type genderRow struct {
		Gender string
		Count  int64
	}
	var genders []genderRow
	if err := s.DB.Model(&models.User{}).
		Select("gender, count(*) as count").
		Where("last_active > ? AND gender IN ?", dayAgo,
			[]string{models.GenderMale, models.GenderFemale}).
		Group("gender").Scan(&genders).Error; err != nil {
		return nil, err
	}
	for _, g := range genders {
		st.GenderDistribution[g.Gender] = g.Count
	}

	if err := s.DB.Model(&models.Chat{}).
		Select("extract(hour from started_at)::int as hour, count(*) as count").
		Where("started_at > ?", dayAgo).
		Group("hour").Order("hour").Scan(&st.HourlyChats).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Chat{}).
		Select("coalesce(avg(extract(epoch from (coalesce(ended_at, now()) - started_at)) / 60), 0)").
		Where("started_at > ?", dayAgo).Scan(&st.AvgChatMinutes).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Chat{}).
		Select("coalesce(sum(message_count), 0)").
		Where("started_at > ?", dayAgo).Scan(&st.MessagesToday).Error; err != nil {
		return nil, err
	}

	return st, nil
}

// ListActiveChats returns up to limit active chats, newest first.
func (s *Service) ListActiveChats(limit int) ([]ActiveChatSummary, error) {
	var rows []ActiveChatSummary
	err := s.DB.Model(&models.Chat{}).
		Select(`chats.id, chats.started_at, chats.message_count,
			u1.gender as user1_gender, u2.gender as user2_gender`).
		Joins("JOIN users u1 ON u1.id = chats.user1_id").
		Joins("JOIN users u2 ON u2.id = chats.user2_id").
		Where("chats.status = ?", models.ChatActive).
		Order("chats.started_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// ListComplaints returns up to limit complaints, newest first.
func (s *Service) ListComplaints(limit int) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&complaints).Error
	return complaints, err
}
