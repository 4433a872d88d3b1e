package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

var nineToFive = domain.BusinessHours{
	time.Monday: {OpenMinute: 9 * 60, CloseMinute: 17 * 60},
}

func monday(hour, min int) time.Time {
	return time.Date(2025, 3, 3, hour, min, 0, 0, time.UTC)
}

func TestGenerateSameDayRoundsUp(t *testing.T) {
	g := NewSlotGenerator(30)
	// now 10:07 + 20min buffer = 10:27, rounded up to 10:30
	slots := g.Generate(nineToFive, monday(0, 0), monday(10, 7), 20*time.Minute)
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(10, 30), slots[0])
}

func TestGenerateSameDayBeforeOpen(t *testing.T) {
	g := NewSlotGenerator(30)
	slots := g.Generate(nineToFive, monday(0, 0), monday(8, 0), 20*time.Minute)
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(9, 0), slots[0])
}

func TestGenerateEndBoundaryExclusive(t *testing.T) {
	g := NewSlotGenerator(30)
	slots := g.Generate(nineToFive, monday(0, 0), monday(8, 0), 0)
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(16, 30), slots[len(slots)-1], "a slot equal to closing time is never offered")
	assert.Len(t, slots, 16)
}

func TestGenerateAlignsFromOpeningTime(t *testing.T) {
	hours := domain.BusinessHours{
		time.Monday: {OpenMinute: 9*60 + 15, CloseMinute: 11 * 60},
	}
	g := NewSlotGenerator(30)
	slots := g.Generate(hours, monday(0, 0), monday(9, 20), 10*time.Minute)
	// min start 9:30; aligned from 9:15 the next slot is 9:45
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(9, 45), slots[0])
}

func TestGenerateClosedDayEmpty(t *testing.T) {
	g := NewSlotGenerator(30)
	tuesday := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, g.Generate(nineToFive, tuesday, monday(8, 0), 0))

	closed := domain.BusinessHours{
		time.Monday: {OpenMinute: 9 * 60, CloseMinute: 17 * 60, Closed: true},
	}
	assert.Empty(t, g.Generate(closed, monday(0, 0), monday(8, 0), 0))
}

func TestGenerateBufferPastCloseEmpty(t *testing.T) {
	g := NewSlotGenerator(30)
	// 16:50 + 45min lands after close; silently empty, not an error
	assert.Empty(t, g.Generate(nineToFive, monday(0, 0), monday(16, 50), 45*time.Minute))
}

func TestGenerateFutureDateIgnoresBuffer(t *testing.T) {
	g := NewSlotGenerator(30)
	nextMonday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := g.Generate(nineToFive, nextMonday, monday(16, 50), 45*time.Minute)
	require.NotEmpty(t, slots)
	assert.Equal(t, nextMonday.Add(9*time.Hour), slots[0])
}

func TestGenerateIdempotent(t *testing.T) {
	g := NewSlotGenerator(30)
	a := g.Generate(nineToFive, monday(0, 0), monday(10, 7), 20*time.Minute)
	b := g.Generate(nineToFive, monday(0, 0), monday(10, 7), 20*time.Minute)
	assert.Equal(t, a, b)
}

func TestFormatSlotPresentationOnly(t *testing.T) {
	at := monday(14, 30)
	assert.Equal(t, "2:30 PM", FormatSlot(at, false))
	assert.Equal(t, "14:30", FormatSlot(at, true))

	labeled := Labeled([]time.Time{at}, true)
	require.Len(t, labeled, 1)
	assert.Equal(t, at, labeled[0].At)
}
