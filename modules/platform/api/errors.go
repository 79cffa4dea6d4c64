package api

import "fmt"

// TransportError reports a non-success HTTP status on a query endpoint.
// It is never retried automatically; callers decide what to do with it.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Status)
}

// RejectedError reports an ok=false envelope from the orchestrator. Message
// is the server-supplied error, or the operation's default when the server
// sent none.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// rejected builds a RejectedError, falling back to the operation default
// when the server did not include a message
func rejected(serverMsg, defaultMsg string) *RejectedError {
	if serverMsg == "" {
		serverMsg = defaultMsg
	}
	return &RejectedError{Message: serverMsg}
}
