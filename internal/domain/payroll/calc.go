package payroll

const (
	// OvertimeHourlyRate is paid per overtime hour.
	OvertimeHourlyRate = 2000.0

	// DaysPerMonth prorates absences against the base salary.
	DaysPerMonth = 30.0
)

type Components struct {
	SalaireBase           float64
	Primes                float64
	HeuresSupplementaires float64
	Deductions            float64
	JoursAbsence          float64
}

// NetSalary computes
//
//	base + primes + overtime*OvertimeHourlyRate - deductions - absences*base/DaysPerMonth
//
// in float64 without rounding.
func NetSalary(c Components) float64 {
	absence := c.JoursAbsence * c.SalaireBase / DaysPerMonth
	return c.SalaireBase + c.Primes + c.HeuresSupplementaires*OvertimeHourlyRate - c.Deductions - absence
}

// Breakdown details the amounts that make up a net salary.
type Breakdown struct {
	SalaireBase      float64 `json:"salaireBase"`
	Primes           float64 `json:"primes"`
	MontantHeuresSup float64 `json:"montantHeuresSupplementaires"`
	Deductions       float64 `json:"deductions"`
	RetenueAbsences  float64 `json:"retenueAbsences"`
	SalaireNet       float64 `json:"salaireNet"`
}

func ComputeBreakdown(c Components) Breakdown {
	return Breakdown{
		SalaireBase:      c.SalaireBase,
		Primes:           c.Primes,
		MontantHeuresSup: c.HeuresSupplementaires * OvertimeHourlyRate,
		Deductions:       c.Deductions,
		RetenueAbsences:  c.JoursAbsence * c.SalaireBase / DaysPerMonth,
		SalaireNet:       NetSalary(c),
	}
}
