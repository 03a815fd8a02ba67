package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SlotCounter counts pending and confirmed reservations.
type SlotCounter interface {
	// CountActiveWithin counts reservations on date whose time is strictly
	// closer than window to clock.
	CountActiveWithin(ctx context.Context, date, clock string, window time.Duration) (int, error)
	// CountActiveByTime groups the reservations on date by exact HH:MM.
	CountActiveByTime(ctx context.Context, date string) (map[string]int, error)
}

// Checker holds the two admission policies. Admit is used when booking and
// looks at a sliding window around the requested time; DaySlots is used for the
// public listing and only counts bookings at exactly each slot time, so a slot
// may show as available and still be refused by Admit.
type Checker struct {
	Capacity  int
	Window    time.Duration
	FirstSlot time.Duration // offset from midnight
	LastSlot  time.Duration
	Step      time.Duration
}

func NewChecker() Checker {
	return Checker{
		Capacity:  5,
		Window:    2 * time.Hour,
		FirstSlot: 9 * time.Hour,
		LastSlot:  21*time.Hour + 30*time.Minute,
		Step:      30 * time.Minute,
	}
}

// Admit returns a conflict when the window around date/clock is full.
func (c Checker) Admit(ctx context.Context, counter SlotCounter, date, clock string) error {
	n, err := counter.CountActiveWithin(ctx, date, clock, c.Window)
	if err != nil {
		return apperr.Internal(fmt.Errorf("count reservations: %w", err))
	}
	if n >= c.Capacity {
		return apperr.Conflict("No hay disponibilidad para esa fecha y hora. Por favor elige otro horario.")
	}
	return nil
}

// DaySlots lists every bookable slot of date with its exact-time occupancy.
func (c Checker) DaySlots(ctx context.Context, counter SlotCounter, date string) (*Availability, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperr.Validation("Formato de fecha inválido. Use YYYY-MM-DD")
	}
	counts, err := counter.CountActiveByTime(ctx, date)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("count reservations by time: %w", err))
	}

	out := &Availability{Date: date, AvailableTimes: []Slot{}}
	for off := c.FirstSlot; off <= c.LastSlot; off += c.Step {
		clock := fmt.Sprintf("%02d:%02d", int(off.Hours()), int(off.Minutes())%60)
		n := counts[clock]
		out.AvailableTimes = append(out.AvailableTimes, Slot{
			Time:                clock,
			Available:           n < c.Capacity,
			CurrentReservations: n,
		})
	}
	return out, nil
}
