package common

import (
	"errors"
	"time"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// FormatTimestamp renders a post time, or "" when the server sent none.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 02 15:04")
}

// ErrorText turns an error into a one-line status message.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnauthorized):
		return "Session expired. Please log in again."
	default:
		return "Error: " + err.Error()
	}
}
