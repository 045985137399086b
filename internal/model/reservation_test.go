package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	t.Run("reserved 可以報到、逾期作廢或取消", func(t *testing.T) {
		assert.True(t, BookingStatusReserved.CanTransitionTo(BookingStatusActive))
		assert.True(t, BookingStatusReserved.CanTransitionTo(BookingStatusInvalid))
		assert.True(t, BookingStatusReserved.CanTransitionTo(BookingStatusCancelled))
		assert.False(t, BookingStatusReserved.CanTransitionTo(BookingStatusCompleted))
	})

	t.Run("active 只能結束", func(t *testing.T) {
		assert.True(t, BookingStatusActive.CanTransitionTo(BookingStatusCompleted))
		assert.False(t, BookingStatusActive.CanTransitionTo(BookingStatusInvalid))
		assert.False(t, BookingStatusActive.CanTransitionTo(BookingStatusCancelled))
		assert.False(t, BookingStatusActive.CanTransitionTo(BookingStatusReserved))
	})

	t.Run("終態不能再轉換", func(t *testing.T) {
		for _, s := range []BookingStatus{BookingStatusCompleted, BookingStatusInvalid, BookingStatusCancelled} {
			assert.True(t, s.IsTerminal())
			for _, target := range []BookingStatus{BookingStatusReserved, BookingStatusActive, BookingStatusCompleted, BookingStatusInvalid, BookingStatusCancelled} {
				assert.False(t, s.CanTransitionTo(target))
			}
		}
	})
}

func TestReservation_WaitHours(t *testing.T) {
	now := time.Now().UTC()

	r := &Reservation{TimeStamp: now.Add(-30 * time.Minute)}
	assert.InDelta(t, 0.5, r.WaitHours(now), 1e-9)

	// 時鐘回撥不會產生負的等待時數
	future := &Reservation{TimeStamp: now.Add(time.Minute)}
	assert.Equal(t, 0.0, future.WaitHours(now))
}

func TestReservation_ParkedHours(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-90 * time.Minute)

	r := &Reservation{StartTime: &start}
	assert.InDelta(t, 1.5, r.ParkedHours(now), 1e-9)

	notCheckedIn := &Reservation{}
	assert.Equal(t, 0.0, notCheckedIn.ParkedHours(now))
}

func TestParkingSection_RemainingCapacity(t *testing.T) {
	section := &ParkingSection{
		TotalCapacity:    10,
		ReservedCount:    3,
		ParkedCount:      2,
		UnavailableCount: 1,
		Status:           SectionStatusAvailable,
	}
	assert.Equal(t, 4, section.RemainingCapacity())
	assert.True(t, section.HasCapacity())

	full := &ParkingSection{TotalCapacity: 5, ReservedCount: 3, ParkedCount: 2, Status: SectionStatusAvailable}
	assert.Equal(t, 0, full.RemainingCapacity())
	assert.False(t, full.HasCapacity())

	// 計數漂移超過容量時剩餘名額夾在 0
	drifted := &ParkingSection{TotalCapacity: 5, ReservedCount: 4, ParkedCount: 3, Status: SectionStatusAvailable}
	assert.Equal(t, 0, drifted.RemainingCapacity())
}
