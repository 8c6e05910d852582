package net

import (
	"net/http"

	perr "posdash/internal/platform/errors"
)

// Wire is the JSON envelope every response is wrapped in
// Code and Error are set only for failures, Data only for successes.
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func envelope(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// OK wraps data in a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	w := envelope(http.StatusOK, reqID)
	w.Data = data
	return w.StatusCode, w
}

// Error maps err onto its status and envelope; nil is a 200 with no data
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	w := envelope(perr.HTTPStatus(err), reqID)
	pw := perr.WireFrom(err)
	w.Code, w.Error = pw.Code, pw.Message
	return w.StatusCode, w
}
