package payroll

import "context"

type PayrollService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)

	// Simulate computes a payment without storing it.
	Simulate(ctx context.Context, req CreatePaymentRequest) (SimulationResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)
	MyPayments(ctx context.Context, filter PaymentFilter) (ListPaymentResponse, error)
	GetPayment(ctx context.Context, id string) (PaymentResponse, error)
	UpdatePayment(ctx context.Context, req UpdatePaymentRequest) (PaymentResponse, error)
	MarkPaid(ctx context.Context, id string) (PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error

	// Payslip renders the PDF bulletin of one payment.
	Payslip(ctx context.Context, id string) (filename string, pdf []byte, err error)
	ExportPayments(ctx context.Context, filter PaymentFilter) ([]byte, error)
}
