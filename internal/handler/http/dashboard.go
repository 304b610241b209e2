package http

import (
	"net/http"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/dashboard"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns headcount, attendance, leave, payroll and
	// recruitment counters in one payload
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
