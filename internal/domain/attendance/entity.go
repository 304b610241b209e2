package attendance

import "time"

type Status string

const (
	StatusPresent Status = "Présent"
	StatusLate    Status = "Retard"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Congé"
)

var Statuses = []string{string(StatusPresent), string(StatusLate), string(StatusAbsent), string(StatusLeave)}

// NoValue fills retard and heuresTravaillees when nothing was measured.
const NoValue = "-"

type Attendance struct {
	ID                string
	EmployeID         string
	Date              time.Time
	HeureArrivee      *time.Time
	HeureDepart       *time.Time
	Statut            Status
	Retard            string
	HeuresTravaillees string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	EmployeNom     *string
	EmployePrenom  *string
	Matricule      *string
	DepartementNom *string
}

// NewRecord returns an empty Absent record for the employee on date.
func NewRecord(employeID string, date time.Time) Attendance {
	return Attendance{
		EmployeID:         employeID,
		Date:              date,
		Statut:            StatusAbsent,
		Retard:            NoValue,
		HeuresTravaillees: NoValue,
	}
}

// CheckIn records an arrival and derives statut and retard from it.
func (a *Attendance) CheckIn(arrival time.Time, loc *time.Location) {
	a.HeureArrivee = &arrival
	a.Statut, a.Retard = EvaluateArrival(a.Date, arrival, loc)
	if a.HeureDepart != nil {
		if worked, err := WorkedHours(arrival, *a.HeureDepart); err == nil {
			a.HeuresTravaillees = worked
		} else {
			a.HeureDepart = nil
			a.HeuresTravaillees = NoValue
		}
	}
}

// CheckOut records a departure. A later departure replaces an earlier one.
func (a *Attendance) CheckOut(departure time.Time) error {
	if a.HeureArrivee == nil {
		return ErrNotCheckedIn
	}
	worked, err := WorkedHours(*a.HeureArrivee, departure)
	if err != nil {
		return err
	}
	a.HeureDepart = &departure
	a.HeuresTravaillees = worked
	return nil
}

// MarkAbsent resets every measured field.
func (a *Attendance) MarkAbsent() {
	a.HeureArrivee = nil
	a.HeureDepart = nil
	a.Statut = StatusAbsent
	a.Retard = NoValue
	a.HeuresTravaillees = NoValue
}

// MarkLeave flags the day as covered by an approved leave.
func (a *Attendance) MarkLeave() {
	a.MarkAbsent()
	a.Statut = StatusLeave
}
