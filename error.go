package mocksmtpd

import (
	"errors"
	"fmt"
)

// ErrorSMTP represents an Error reported in the SMTP session. When Recorder
// returns it, command is rejected and Error() is sent to client as is.
type ErrorSMTP struct {
	Code    int    // The integer error code
	Message string // The error message
}

// Error returns a string representation of the SMTP error
func (e ErrorSMTP) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

// DropConnectionError is returned by Recorder when the whole connection has to be
// terminated. Response is sent to client right before closing connection.
type DropConnectionError struct {
	Code    int
	Message string
}

// Error returns response line being sent before connection is dropped
func (e DropConnectionError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

// ErrServerClosed is returned by the Server's Serve and ListenAndServe,
// methods after a call to shut down.
var ErrServerClosed = errors.New("smtp: Server closed")

// isDropConnection reports whether err, or anything it wraps, demands connection to be closed
func isDropConnection(err error) (drop DropConnectionError, ok bool) {
	ok = errors.As(err, &drop)
	return
}

// isRejection reports whether err is ordinary SMTP rejection
func isRejection(err error) (rejection ErrorSMTP, ok bool) {
	ok = errors.As(err, &rejection)
	return
}
