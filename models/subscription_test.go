package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleNextDelivery(t *testing.T) {
	from := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	daily := Subscription{Frequency: FrequencyDaily}
	daily.ScheduleNextDelivery(from)
	assert.Equal(t, from.Add(24*time.Hour), daily.NextDelivery)

	weekly := Subscription{Frequency: FrequencyWeekly}
	weekly.ScheduleNextDelivery(from)
	assert.Equal(t, from.Add(7*24*time.Hour), weekly.NextDelivery)

	// Unknown frequencies behave like daily rather than stalling the schedule.
	odd := Subscription{Frequency: "fortnightly"}
	odd.ScheduleNextDelivery(from)
	assert.Equal(t, from.Add(24*time.Hour), odd.NextDelivery)
}

func TestUserPassword(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}
