package chathub

// PreconditionError reports a user action rejected before any state
// mutation: the message is guidance for the user, not a failure.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// Precondition codes.
const (
	CodeBlocked       = "blocked"
	CodeGenderUnset   = "gender_unset"
	CodeAlreadyInChat = "already_in_chat"
	CodeNotInChat     = "not_in_chat"
	CodeNotSearching  = "not_searching"
)

func errBlocked() *PreconditionError {
	return &PreconditionError{CodeBlocked, "🚫 You are blocked"}
}

func errGenderUnset() *PreconditionError {
	return &PreconditionError{CodeGenderUnset, "⚠️ Set your gender first"}
}

func errAlreadyInChat() *PreconditionError {
	return &PreconditionError{CodeAlreadyInChat, "💬 You already have an active conversation. End it with Stop first"}
}

func errNotInChat() *PreconditionError {
	return &PreconditionError{CodeNotInChat, "⚠️ You are not in a conversation. Use Find partner"}
}

func errNotSearching() *PreconditionError {
	return &PreconditionError{CodeNotSearching, "⚠️ You are not searching right now"}
}
