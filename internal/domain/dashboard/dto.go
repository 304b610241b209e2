package dashboard

// DashboardResponse is the combined response of the dashboard endpoint
type DashboardResponse struct {
	Employes    EmployeeSummaryResponse `json:"employes"`
	Pointages   AttendanceResponse      `json:"pointages"`
	Conges      LeaveResponse           `json:"conges"`
	Salaires    PayrollResponse         `json:"salaires"`
	Recrutement RecruitmentResponse     `json:"recrutement"`
	UpdatedAt   string                  `json:"updatedAt"`
}

type EmployeeSummaryResponse struct {
	Total          int64                     `json:"total"`
	Actifs         int64                     `json:"actifs"`
	Inactifs       int64                     `json:"inactifs"`
	Nouveaux       int64                     `json:"nouveaux"` // hired within 30 days
	ParDepartement []DepartmentCountResponse `json:"parDepartement"`
}

type DepartmentCountResponse struct {
	DepartementID  *string `json:"departementId"`
	DepartementNom string  `json:"departementNom"`
	Nombre         int64   `json:"nombre"`
}

// AttendanceResponse counts today's records per statut
type AttendanceResponse struct {
	Date         string  `json:"date"`
	Present      int64   `json:"present"`
	Retard       int64   `json:"retard"`
	Absent       int64   `json:"absent"`
	Conge        int64   `json:"conge"`
	TauxPresence float64 `json:"tauxPresence"` // percentage of present + late
}

type LeaveResponse struct {
	EnAttente int64 `json:"enAttente"`
}

type PayrollResponse struct {
	Mois        string  `json:"mois"`
	MasseTotal  float64 `json:"masseSalariale"`
	MontantPaye float64 `json:"montantPaye"`
}

type RecruitmentResponse struct {
	OffresOuvertes int64 `json:"offresOuvertes"`
}
