package chathub

import (
	"errors"
	"fmt"
	"log"

	"anontalk/backend/internal/metrics"
	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"
)

// maxClaimAttempts bounds the retry loop when candidates keep getting
// claimed by concurrent searches. After that the user stays queued; a
// later search event will pair them.
const maxClaimAttempts = 3

// MatchOutcome is the result of one search attempt.
type MatchOutcome int

const (
	// Queued: no eligible partner right now, user remains searching.
	Queued MatchOutcome = iota
	// Paired: a chat was created with Partner.
	Paired
	// PairedElsewhere: a concurrent search claimed this user while we
	// were looking; the winning side already notified both parties.
	PairedElsewhere
)

// MatchResult carries the chat and partner when Outcome is Paired.
type MatchResult struct {
	Outcome MatchOutcome
	Chat    *models.Chat
	Partner *models.User
}

// MatcherService pairs a searching user with an eligible counterpart.
// All shared state lives in the store; the claim itself is a single
// conditional transaction, so concurrent matchers can never pair the
// same candidate twice or pair a user with themselves.
type MatcherService struct {
	Storage storage.Storage
}

func NewMatcherService(s storage.Storage) *MatcherService {
	return &MatcherService{Storage: s}
}

// Search enqueues the user and tries to pair them immediately.
// Preconditions (blocked, gender unset, already in chat) are the
// lifecycle controller's job; by the time we get here the user is
// idle or already searching.
//
// Calling Search for a user who is already searching re-confirms
// Queued without touching state.
func (m *MatcherService) Search(user *models.User, genderFilter string) (*MatchResult, error) {
	if user.Status != models.StatusSearching {
		if err := m.Storage.MarkSearching(user.ID); err != nil {
			return nil, fmt.Errorf("matcher: mark searching: %w", err)
		}
	}

	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		candidate, err := m.Storage.FindCandidate(user.ID, genderFilter)
		if err != nil {
			return nil, fmt.Errorf("matcher: find candidate: %w", err)
		}
		if candidate == nil {
			return &MatchResult{Outcome: Queued}, nil
		}

		chat, err := m.Storage.ClaimMatch(user.ID, candidate.ID)
		if errors.Is(err, storage.ErrRaceLost) {
			log.Printf("matcher: candidate %s claimed concurrently, retrying", candidate.ID)
			continue
		}
		if errors.Is(err, storage.ErrClaimedElsewhere) {
			return &MatchResult{Outcome: PairedElsewhere}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("matcher: claim match: %w", err)
		}

		metrics.MatchesCreated.Inc()
		log.Printf("matcher: paired %s with %s in chat %s", user.ID, candidate.ID, chat.ID)
		return &MatchResult{Outcome: Paired, Chat: chat, Partner: candidate}, nil
	}

	// Every candidate we saw was snapped up. The user stays searching
	// and will be found by someone else's search.
	return &MatchResult{Outcome: Queued}, nil
}
