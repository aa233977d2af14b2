package api

import (
	"encoding/json"
	"fmt"
)

// envelope is the {message, status, data} wrapper every response uses.
type envelope struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// ok treats status 0 (the upload endpoint's convention) and 2xx as success.
func (e envelope) ok() bool {
	return e.Status == 0 || (e.Status >= 200 && e.Status < 300)
}

// envelopeMeta lets a caller keep the envelope message and status alongside
// the decoded data. Pass a pointer to it as the out argument.
type envelopeMeta struct {
	Message string
	Status  int
	Data    any
}

// APIError is a server-reported failure: a non-2xx status or an envelope whose
// status is not a success value.
type APIError struct {
	Method     string
	Path       string
	StatusCode int // HTTP status
	Status     int // Envelope status
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API %s %s returned %d (status %d)", e.Method, e.Path, e.StatusCode, e.Status)
}
