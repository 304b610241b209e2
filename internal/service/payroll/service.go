package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/attendance"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/auth"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/payroll"
	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/document"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/metrics"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	tx database.Transactor
	payroll.PaymentRepository
	attendance.AttendanceRepository
	user.UserRepository
	metrics metrics.Recorder
	company string
	now     func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	paymentRepository payroll.PaymentRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	recorder metrics.Recorder,
	company string,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:                   tx,
		PaymentRepository:    paymentRepository,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		metrics:              recorder,
		company:              company,
		now:                  time.Now,
	}
}

func toList(payments []payroll.Payment, total int64, filter payroll.PaymentFilter) payroll.ListPaymentResponse {
	responses := make([]payroll.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, payroll.ToResponse(p))
	}
	pages := 1
	if filter.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}
	return payroll.ListPaymentResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pages,
		Payments:   responses,
	}
}

// build resolves the defaults of a creation request into a payment.
func (s *PayrollServiceImpl) build(ctx context.Context, req payroll.CreatePaymentRequest) (payroll.Payment, error) {
	employee, err := s.UserRepository.GetByID(ctx, req.EmployeID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return payroll.Payment{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Payment{}, fmt.Errorf("failed to get employee: %w", err)
	}

	p := payroll.Payment{
		EmployeID:             employee.ID,
		Mois:                  req.Mois,
		SalaireBase:           employee.SalaireBase,
		Primes:                req.Primes,
		HeuresSupplementaires: req.HeuresSupplementaires,
		Deductions:            req.Deductions,
		Statut:                payroll.StatusPending,
	}
	if req.SalaireBase != nil {
		p.SalaireBase = *req.SalaireBase
	}

	if req.JoursAbsence != nil {
		p.JoursAbsence = *req.JoursAbsence
	} else {
		start, _ := validator.IsValidMonth(req.Mois)
		end := start.AddDate(0, 1, -1)
		count, err := s.AttendanceRepository.CountByStatus(ctx, employee.ID, start, end, attendance.StatusAbsent)
		if err != nil {
			return payroll.Payment{}, fmt.Errorf("failed to count absences: %w", err)
		}
		p.JoursAbsence = math.Min(float64(count), payroll.DaysPerMonth)
	}

	p.Recompute()
	return p, nil
}

// CreatePayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayment(ctx context.Context, req payroll.CreatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	p, err := s.build(ctx, req)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	created, err := s.PaymentRepository.Create(ctx, p)
	if err != nil {
		return payroll.PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	slog.Info("payment created", "payment_id", created.ID, "employe_id", created.EmployeID, "mois", created.Mois)
	return payroll.ToResponse(created), nil
}

// Simulate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Simulate(ctx context.Context, req payroll.CreatePaymentRequest) (payroll.SimulationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SimulationResponse{}, err
	}

	p, err := s.build(ctx, req)
	if err != nil {
		return payroll.SimulationResponse{}, err
	}

	return payroll.SimulationResponse{
		EmployeID: p.EmployeID,
		Mois:      p.Mois,
		Detail:    payroll.ComputeBreakdown(p.Components()),
	}, nil
}

// ListPayments implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayments(ctx context.Context, filter payroll.PaymentFilter) (payroll.ListPaymentResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPaymentResponse{}, err
	}

	payments, total, err := s.PaymentRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListPaymentResponse{}, fmt.Errorf("failed to list payments: %w", err)
	}
	return toList(payments, total, filter), nil
}

// MyPayments implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyPayments(ctx context.Context, filter payroll.PaymentFilter) (payroll.ListPaymentResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payroll.ListPaymentResponse{}, auth.ErrUnauthenticated
	}
	filter.EmployeID = &principal.UserID
	return s.ListPayments(ctx, filter)
}

// visible loads a payment the caller owns or manages.
func (s *PayrollServiceImpl) visible(ctx context.Context, id string) (payroll.Payment, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return payroll.Payment{}, auth.ErrUnauthenticated
	}
	if !validator.IsValidUUID(id) {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}

	p, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	if p.EmployeID != principal.UserID && !principal.Can(user.PermissionPayrollManage) {
		return payroll.Payment{}, user.ErrInsufficientPermissions
	}
	return p, nil
}

// GetPayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayment(ctx context.Context, id string) (payroll.PaymentResponse, error) {
	p, err := s.visible(ctx, id)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}
	return payroll.ToResponse(p), nil
}

// UpdatePayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayment(ctx context.Context, req payroll.UpdatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	var updated payroll.Payment
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.PaymentRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if existing.IsPaid() {
			return payroll.ErrPaymentAlreadyPaid
		}

		if req.SalaireBase != nil {
			existing.SalaireBase = *req.SalaireBase
		}
		if req.Primes != nil {
			existing.Primes = *req.Primes
		}
		if req.HeuresSupplementaires != nil {
			existing.HeuresSupplementaires = *req.HeuresSupplementaires
		}
		if req.Deductions != nil {
			existing.Deductions = *req.Deductions
		}
		if req.JoursAbsence != nil {
			existing.JoursAbsence = *req.JoursAbsence
		}
		existing.Recompute()

		updated, err = s.PaymentRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return payroll.PaymentResponse{}, fmt.Errorf("failed to update payment: %w", err)
	}

	return payroll.ToResponse(updated), nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PaymentResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.PaymentResponse{}, payroll.ErrPaymentNotFound
	}

	var paid payroll.Payment
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.PaymentRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing.IsPaid() {
			return payroll.ErrPaymentAlreadyPaid
		}

		now := s.now()
		existing.Statut = payroll.StatusPaid
		existing.DatePaiement = &now

		paid, err = s.PaymentRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return payroll.PaymentResponse{}, fmt.Errorf("failed to mark payment as paid: %w", err)
	}

	s.metrics.RecordPaymentPaid(paid.SalaireNet)
	slog.Info("payment paid", "payment_id", paid.ID, "salaire_net", paid.SalaireNet)
	return payroll.ToResponse(paid), nil
}

// DeletePayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayment(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPaymentNotFound
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.PaymentRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing.IsPaid() {
			return payroll.ErrPaymentAlreadyPaid
		}
		return s.PaymentRepository.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) (string, []byte, error) {
	p, err := s.visible(ctx, id)
	if err != nil {
		return "", nil, err
	}

	b := payroll.ComputeBreakdown(p.Components())
	pdf, err := document.RenderPayslip(document.Payslip{
		Company:          s.company,
		Mois:             p.Mois,
		EmployeNom:       fmt.Sprintf("%s %s", deref(p.EmployePrenom), deref(p.EmployeNom)),
		Matricule:        deref(p.Matricule),
		Poste:            deref(p.Poste),
		Departement:      deref(p.DepartementNom),
		SalaireBase:      b.SalaireBase,
		Primes:           b.Primes,
		HeuresSup:        p.HeuresSupplementaires,
		MontantHeuresSup: b.MontantHeuresSup,
		Deductions:       b.Deductions,
		JoursAbsence:     p.JoursAbsence,
		RetenueAbsences:  b.RetenueAbsences,
		SalaireNet:       b.SalaireNet,
		Statut:           string(p.Statut),
		DatePaiement:     p.DatePaiement,
		GeneratedAt:      s.now(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	matricule := deref(p.Matricule)
	if matricule == "" {
		matricule = p.EmployeID
	}
	return fmt.Sprintf("bulletin-%s-%s.pdf", matricule, p.Mois), pdf, nil
}

// ExportPayments implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayments(ctx context.Context, filter payroll.PaymentFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = 1, 0

	payments, _, err := s.PaymentRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	sheet := document.Sheet{
		Name: "Salaires",
		Headers: []string{
			"Matricule", "Nom", "Prénom", "Mois", "Salaire de base", "Primes",
			"Heures supplémentaires", "Déductions", "Jours d'absence", "Salaire net",
			"Statut", "Date de paiement",
		},
	}
	for _, p := range payments {
		paidAt := ""
		if p.DatePaiement != nil {
			paidAt = p.DatePaiement.Format("2006-01-02")
		}
		sheet.Rows = append(sheet.Rows, []any{
			deref(p.Matricule), deref(p.EmployeNom), deref(p.EmployePrenom), p.Mois,
			p.SalaireBase, p.Primes, p.HeuresSupplementaires, p.Deductions,
			p.JoursAbsence, p.SalaireNet, string(p.Statut), paidAt,
		})
	}

	return document.RenderXLSX(sheet)
}
