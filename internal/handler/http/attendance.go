package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	CreateDailySheet(w http.ResponseWriter, r *http.Request)
	MarkArrival(w http.ResponseWriter, r *http.Request)
	MarkDeparture(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func attendanceFilter(r *http.Request) attendance.AttendanceFilter {
	filter := attendance.AttendanceFilter{
		EmployeID:     optionalQuery(r, "employeId"),
		DepartementID: optionalQuery(r, "departementId"),
		Date:          optionalQuery(r, "date"),
		From:          optionalQuery(r, "from"),
		To:            optionalQuery(r, "to"),
		Statut:        optionalQuery(r, "statut"),
	}
	filter.Page, filter.Limit = pagination(r)
	return filter
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.ListAttendance(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Create implements AttendanceHandler.
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAttendance decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	created, err := h.attendanceService.CreateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pointage créé", created)
}

// CreateDailySheet implements AttendanceHandler. The body is optional and
// defaults to today.
func (h *attendanceHandlerImpl) CreateDailySheet(w http.ResponseWriter, r *http.Request) {
	var req attendance.DailySheetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("CreateDailySheet decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var date time.Time
	if req.Date != nil {
		date, _ = time.Parse("2006-01-02", *req.Date)
	}

	sheet, err := h.attendanceService.CreateDailySheet(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Feuille de présence générée", sheet)
}

// MarkArrival implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkArrival(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkArrivalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkArrival decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	record, err := h.attendanceService.MarkArrival(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Arrivée enregistrée", record)
}

// MarkDeparture implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkDeparture(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkDepartureRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkDeparture decode error", "error", err)
		response.BadRequest(w, "Format de requête invalide", nil)
		return
	}

	record, err := h.attendanceService.MarkDeparture(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Départ enregistré", record)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	list, err := h.attendanceService.GetMyAttendance(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Arrivée enregistrée", record)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Départ enregistré", record)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.attendanceService.ExportAttendance(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "pointages-" + time.Now().Format("20060102") + ".xlsx"
	response.File(w, xlsxContentType, filename, workbook)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pointage supprimé", nil)
}
