package models

import "time"

// Timetoken is a 100-nanosecond precision timestamp assigned by the
// messaging service at publish time. It is both a message's identity
// within a conversation and its sort key.
type Timetoken int64

// NewTimetoken converts a wall-clock time to a timetoken.
func NewTimetoken(t time.Time) Timetoken {
	return Timetoken(t.UnixNano() / 100)
}

// Time converts the timetoken back to a wall-clock time.
func (t Timetoken) Time() time.Time {
	return time.Unix(0, int64(t)*100)
}

// InSeconds truncates the timetoken to whole seconds since the epoch.
func (t Timetoken) InSeconds() int64 {
	return int64(t) / 10000000
}
