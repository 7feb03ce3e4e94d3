package chat

import (
	"github.com/kaiwenlu/llamadeck/conversation"
)

// turnDoneMsg carries a finished chat turn back to the update loop.
type turnDoneMsg struct {
	result *conversation.Result
}

// activatedMsg reports a session activation attempt.
type activatedMsg struct {
	sessionID int64
	err       error
}
