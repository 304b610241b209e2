package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountDays(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		want    int
		wantErr error
	}{
		{"three days inclusive", date(2024, 1, 1), date(2024, 1, 3), 3, nil},
		{"single day", date(2024, 1, 1), date(2024, 1, 1), 1, nil},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 3, nil},
		{"across DST change", time.Date(2024, 3, 30, 0, 0, 0, 0, time.Local), time.Date(2024, 4, 2, 0, 0, 0, 0, time.Local), 4, nil},
		{"end before start", date(2024, 1, 3), date(2024, 1, 1), 0, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountDays(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaveRequest_Days(t *testing.T) {
	l := LeaveRequest{DateDebut: date(2024, 1, 30), DateFin: date(2024, 2, 1), NombreJours: 3}

	days := l.Days()
	require.Len(t, days, 3)
	assert.Equal(t, date(2024, 1, 30), days[0])
	assert.Equal(t, date(2024, 1, 31), days[1])
	assert.Equal(t, date(2024, 2, 1), days[2])
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	ok := CreateLeaveRequest{TypeConge: "Annuel", DateDebut: "2024-01-01", DateFin: "2024-01-03"}
	assert.NoError(t, ok.Validate())

	reversed := CreateLeaveRequest{TypeConge: "Annuel", DateDebut: "2024-01-03", DateFin: "2024-01-01"}
	assert.Error(t, reversed.Validate())

	badType := CreateLeaveRequest{TypeConge: "Vacances", DateDebut: "2024-01-01", DateFin: "2024-01-01"}
	assert.Error(t, badType.Validate())
}
