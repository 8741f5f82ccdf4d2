package chathub

import (
	"errors"
	"log"

	"anontalk/backend/internal/models"
)

// CommandKind enumerates the platform-agnostic command vocabulary.
// Platform normalizers map their own menu labels and slash commands
// onto these before calling Handle.
type CommandKind int

const (
	CmdStart CommandKind = iota
	CmdSetGender
	CmdSearch
	CmdSearchByGender
	CmdStop
	CmdNext
	CmdSettings
	CmdComplain
	CmdMessage
)

// Command is one normalized inbound action.
type Command struct {
	Kind    CommandKind
	Gender  string         // CmdSetGender: own gender; CmdSearchByGender: filter
	Reason  string         // CmdComplain
	Content models.Content // CmdMessage
}

// Handle dispatches a normalized command for a resolved user. It is
// the single entry point both platform adapters call. Precondition
// violations are surfaced to the user as guidance notices and are not
// errors from the adapter's point of view.
func (l *LifecycleService) Handle(user *models.User, cmd Command) error {
	blocked, err := l.Storage.IsUserBlocked(user.ID)
	if err != nil {
		return err
	}
	if blocked {
		return l.Delivery.Notify(user, errBlocked().Message)
	}

	switch cmd.Kind {
	case CmdStart:
		return l.Delivery.Notify(user, noticeWelcome)

	case CmdSettings:
		return l.Delivery.Notify(user, noticeSettings)

	case CmdSetGender:
		return l.surface(user, l.SetGender(user, cmd.Gender))

	case CmdSearch:
		_, err := l.StartSearch(user, "")
		return l.surface(user, err)

	case CmdSearchByGender:
		if err := l.Storage.UpdateUserPref(user.ID, cmd.Gender); err != nil {
			return err
		}
		user.GenderPref = cmd.Gender
		_, err := l.StartSearch(user, cmd.Gender)
		return l.surface(user, err)

	case CmdStop:
		// Stop means "whatever I'm doing": cancel a pending search or
		// end the active conversation.
		if user.Status == models.StatusSearching {
			return l.surface(user, l.CancelSearch(user))
		}
		_, err := l.EndSession(user)
		return l.surface(user, err)

	case CmdNext:
		return l.surface(user, l.NextSession(user))

	case CmdComplain:
		return l.surface(user, l.RecordComplaint(user, cmd.Reason))

	case CmdMessage:
		return l.surface(user, l.RelayMessage(user, cmd.Content))
	}

	log.Printf("lifecycle: unknown command kind %d from %s", cmd.Kind, user.ID)
	return nil
}

// surface converts a PreconditionError into a notice to the user and
// swallows it; anything else propagates.
func (l *LifecycleService) surface(user *models.User, err error) error {
	if err == nil {
		return nil
	}
	var pre *PreconditionError
	if errors.As(err, &pre) {
		return l.Delivery.Notify(user, pre.Message)
	}
	return err
}
