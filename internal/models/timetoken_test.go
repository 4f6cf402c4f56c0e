package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimetokenRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tt := NewTimetoken(at)

	assert.Equal(t, at.UnixNano()/100, int64(tt))
	assert.True(t, tt.Time().Equal(at))
}

func TestTimetokenInSeconds(t *testing.T) {
	tt := Timetoken(16818419388000000)
	assert.Equal(t, int64(1681841938), tt.InSeconds())
}
