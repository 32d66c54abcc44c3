package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired signals that the stored refresh token was rejected. The
// client has already cleared the persisted session when this is returned; the
// caller is expected to route the user back to the login screen.
var ErrSessionExpired = errors.New("session expired")

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
