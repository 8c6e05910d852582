package upstream

import (
	"io"
	"strconv"
	"time"
)

// StatusError carries a non 2xx upstream response
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string { return "upstream status " + strconv.Itoa(e.Status) + ": " + e.Body }

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// ParseTime accepts RFC3339 and the zone-less forms the fixtures use, in local time
func ParseTime(s string) (time.Time, error) {
	var err error
	for _, l := range timeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(l, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
