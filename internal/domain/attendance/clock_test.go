package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestEvaluateArrival(t *testing.T) {
	loc := mustLoad(t, "Africa/Conakry")
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		arrival    time.Time
		wantStatus Status
		wantRetard string
	}{
		{"early", time.Date(2024, 1, 10, 7, 45, 0, 0, loc), StatusPresent, NoValue},
		{"exactly on time", time.Date(2024, 1, 10, 8, 0, 0, 0, loc), StatusPresent, NoValue},
		{"one second late", time.Date(2024, 1, 10, 8, 0, 1, 0, loc), StatusLate, "0h0m"},
		{"one minute late", time.Date(2024, 1, 10, 8, 1, 0, 0, loc), StatusLate, "0h1m"},
		{"fractional seconds floored", time.Date(2024, 1, 10, 8, 0, 59, 999_000_000, loc), StatusLate, "0h0m"},
		{"hours late", time.Date(2024, 1, 10, 9, 30, 59, 0, loc), StatusLate, "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, retard := EvaluateArrival(date, tt.arrival, loc)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantRetard, retard)
		})
	}
}

func TestEvaluateArrival_UsesLocation(t *testing.T) {
	paris := mustLoad(t, "Europe/Paris")
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	// 07:30 UTC is 08:30 in Paris in winter
	status, retard := EvaluateArrival(date, time.Date(2024, 1, 10, 7, 30, 0, 0, time.UTC), paris)
	assert.Equal(t, StatusLate, status)
	assert.Equal(t, "0h30m", retard)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m", FormatDuration(0))
	assert.Equal(t, "0h0m", FormatDuration(-time.Hour))
	assert.Equal(t, "8h0m", FormatDuration(8*time.Hour))
	assert.Equal(t, "8h59m", FormatDuration(8*time.Hour+59*time.Minute+59*time.Second))
	assert.Equal(t, "25h5m", FormatDuration(25*time.Hour+5*time.Minute))
}

func TestWorkedHours(t *testing.T) {
	arrival := time.Date(2024, 1, 10, 8, 10, 0, 0, time.UTC)

	worked, err := WorkedHours(arrival, arrival.Add(8*time.Hour+20*time.Minute+30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "8h20m", worked)

	_, err = WorkedHours(arrival, arrival.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrDepartureBeforeArrival)
}

func TestRecord_CheckInCheckOut(t *testing.T) {
	loc := time.UTC
	rec := NewRecord("emp", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, StatusAbsent, rec.Statut)

	err := rec.CheckOut(time.Date(2024, 1, 10, 17, 0, 0, 0, loc))
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	rec.CheckIn(time.Date(2024, 1, 10, 8, 15, 0, 0, loc), loc)
	assert.Equal(t, StatusLate, rec.Statut)
	assert.Equal(t, "0h15m", rec.Retard)

	require.NoError(t, rec.CheckOut(time.Date(2024, 1, 10, 17, 0, 0, 0, loc)))
	assert.Equal(t, "8h45m", rec.HeuresTravaillees)

	// a second departure replaces the first
	require.NoError(t, rec.CheckOut(time.Date(2024, 1, 10, 18, 0, 0, 0, loc)))
	assert.Equal(t, "9h45m", rec.HeuresTravaillees)

	assert.ErrorIs(t, rec.CheckOut(time.Date(2024, 1, 10, 7, 0, 0, 0, loc)), ErrDepartureBeforeArrival)
	assert.Equal(t, "9h45m", rec.HeuresTravaillees)

	rec.MarkAbsent()
	assert.Equal(t, StatusAbsent, rec.Statut)
	assert.Nil(t, rec.HeureArrivee)
	assert.Nil(t, rec.HeureDepart)
	assert.Equal(t, NoValue, rec.Retard)
	assert.Equal(t, NoValue, rec.HeuresTravaillees)

	rec.MarkLeave()
	assert.Equal(t, StatusLeave, rec.Statut)
}

func TestParseClockTime(t *testing.T) {
	loc := mustLoad(t, "Africa/Conakry")
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got, err := ParseClockTime(date, "08:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 8, 30, 0, 0, loc), got)

	got, err = ParseClockTime(date, "2024-01-10T09:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)))

	_, err = ParseClockTime(date, "8h30", loc)
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	paris := mustLoad(t, "Europe/Paris")
	// 23:30 UTC on the 9th is already the 10th in Paris
	got := DateOf(time.Date(2024, 1, 9, 23, 30, 0, 0, time.UTC), paris)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got)
}
