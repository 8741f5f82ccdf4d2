package chathub_test

import (
	"sync"

	"anontalk/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock over the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetOrCreateUser(platform models.Platform, platformID, displayName string) (*models.User, error) {
	args := m.Called(platform, platformID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUserGender(userID, gender string) error {
	args := m.Called(userID, gender)
	return args.Error(0)
}

func (m *MockStorage) UpdateUserPref(userID, pref string) error {
	args := m.Called(userID, pref)
	return args.Error(0)
}

func (m *MockStorage) SetUserBlocked(userID string, blocked bool) error {
	args := m.Called(userID, blocked)
	return args.Error(0)
}

func (m *MockStorage) IsUserBlocked(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) MarkSearching(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) StopSearching(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) FindCandidate(excludeUserID, genderFilter string) (*models.User, error) {
	args := m.Called(excludeUserID, genderFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ClaimMatch(userID, candidateID string) (*models.Chat, error) {
	args := m.Called(userID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) ActiveChatForUser(userID string) (*models.Chat, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) EndChat(chatID string) (bool, error) {
	args := m.Called(chatID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) IncrementMessageCount(chatID string) error {
	args := m.Called(chatID)
	return args.Error(0)
}

func (m *MockStorage) SaveComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) ResolveComplaint(complaintID uint) error {
	args := m.Called(complaintID)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(ev models.Event) error {
	args := m.Called(ev)
	return args.Error(0)
}

// MockDeliverer records everything delivered to it, keyed by the
// recipient's native id. FailFor simulates an unreachable recipient.
type MockDeliverer struct {
	mu        sync.Mutex
	Delivered map[string][]models.Content
	FailFor   map[string]error
}

func newMockDeliverer() *MockDeliverer {
	return &MockDeliverer{
		Delivered: make(map[string][]models.Content),
		FailFor:   make(map[string]error),
	}
}

func (d *MockDeliverer) Deliver(nativeID string, content models.Content) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.FailFor[nativeID]; ok {
		return err
	}
	d.Delivered[nativeID] = append(d.Delivered[nativeID], content)
	return nil
}

// texts returns the plain-text payloads delivered to one recipient.
func (d *MockDeliverer) texts(nativeID string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, c := range d.Delivered[nativeID] {
		out = append(out, c.Text)
	}
	return out
}
