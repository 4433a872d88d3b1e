package usecase

import (
	"fmt"
	"time"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

// SlotGenerator derives bookable time slots from weekly business hours.
// Stateless; every call recomputes the full sequence.
type SlotGenerator struct {
	Granularity time.Duration // slot spacing, measured from opening time
}

func NewSlotGenerator(granularityMinutes int) *SlotGenerator {
	if granularityMinutes <= 0 {
		granularityMinutes = 30
	}
	return &SlotGenerator{Granularity: time.Duration(granularityMinutes) * time.Minute}
}

// Generate returns the ordered slots for date. Slots are aligned to the
// granularity counted from the opening time, not from midnight. For same-day
// requests the first slot is pushed past now+buffer, rounded up to the next
// alignment point so a slot in the past is never offered. The close boundary
// is exclusive.
//
// An empty result is a valid outcome (closed day, or buffer past closing).
func (g *SlotGenerator) Generate(hours domain.BusinessHours, date, now time.Time, buffer time.Duration) []time.Time {
	dh, ok := hours.For(date)
	if !ok {
		return nil
	}

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	open := dayStart.Add(time.Duration(dh.OpenMinute) * time.Minute)
	end := dayStart.Add(time.Duration(dh.CloseMinute) * time.Minute)

	cursor := open
	sameDay := func() bool {
		n := now.In(loc)
		return n.Year() == date.Year() && n.Month() == date.Month() && n.Day() == date.Day()
	}()
	if sameDay {
		minStart := now.In(loc).Add(buffer)
		if cursor.Before(minStart) {
			// Round up from opening time, never down.
			offset := minStart.Sub(open)
			steps := offset / g.Granularity
			if offset%g.Granularity != 0 {
				steps++
			}
			cursor = open.Add(steps * g.Granularity)
		}
	}

	var slots []time.Time
	for cursor.Before(end) {
		slots = append(slots, cursor)
		cursor = cursor.Add(g.Granularity)
	}
	return slots
}

// FormatSlot renders a slot label. Presentation only: labels never affect
// slot membership or ordering.
func FormatSlot(t time.Time, use24h bool) string {
	if use24h {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// SlotLabel pairs a slot with its display label for the API response.
type SlotLabel struct {
	At    time.Time `json:"at"`
	Label string    `json:"label"`
}

// Labeled maps slots to labeled values.
func Labeled(slots []time.Time, use24h bool) []SlotLabel {
	out := make([]SlotLabel, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotLabel{At: s, Label: FormatSlot(s, use24h)})
	}
	return out
}

// BufferFor resolves the same-day buffer for a fulfillment mode from tenant
// config, falling back to service-wide defaults when the tenant left it unset.
func BufferFor(cfg domain.TenantConfig, mode domain.FulfillmentMode, defaultDeliveryMin, defaultPickupMin int) (time.Duration, error) {
	min := cfg.BufferMinutes(mode)
	if min <= 0 {
		switch mode {
		case domain.FulfillmentDelivery:
			min = defaultDeliveryMin
		case domain.FulfillmentPickup, domain.FulfillmentDineIn:
			min = defaultPickupMin
		default:
			return 0, fmt.Errorf("buffer for mode %q: %w", mode, domain.ErrInvalidFulfillment)
		}
	}
	return time.Duration(min) * time.Minute, nil
}
