package errors

import "fmt"

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrNoAccess             = fmt.Errorf("no access")
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrMessageNotFound      = fmt.Errorf("message not found")
	ErrPublicSessionInfo    = fmt.Errorf("public session info unavailable")
	ErrMalformedParticipant = fmt.Errorf("participant must be a user or a session")
	ErrPrivAccessDenied     = fmt.Errorf("not a conversation participant")
)
