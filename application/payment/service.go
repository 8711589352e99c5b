package payment

import (
	"context"
	"time"

	"shopcore/domain/order"
	"shopcore/domain/payment"
	"shopcore/domain/shared"
	"shopcore/pkg/errors"
	"shopcore/pkg/logger"

	"go.uber.org/zap"
)

// CreatePaymentRequest opens a pending payment for an order.
type CreatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// ProcessPaymentRequest settles a pending payment.
type ProcessPaymentRequest struct {
	AmountPaid string `json:"amount_paid" binding:"required"`
	CashChange string `json:"cash_change"`
	Currency   string `json:"currency"`
}

// PaymentResponse is the payment projection returned to callers.
type PaymentResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	AmountToPay string    `json:"amount_to_pay"`
	AmountPaid  *string   `json:"amount_paid,omitempty"`
	CashChange  *string   `json:"cash_change,omitempty"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(p *payment.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID(),
		OrderID:     p.OrderID(),
		AmountToPay: p.AmountToPay().Amount().StringFixed(2),
		Currency:    p.AmountToPay().Currency(),
		Method:      string(p.PaymentMethod()),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if paid := p.AmountPaid(); paid != nil {
		v := paid.Amount().StringFixed(2)
		resp.AmountPaid = &v
	}
	if change := p.CashChange(); change != nil {
		v := change.Amount().StringFixed(2)
		resp.CashChange = &v
	}
	return resp
}

// Service orchestrates payment use cases.
type Service struct {
	payments payment.Repository
	orders   order.Repository
	uow      shared.UnitOfWork
}

func NewService(payments payment.Repository, orders order.Repository, uow shared.UnitOfWork) *Service {
	return &Service{payments: payments, orders: orders, uow: uow}
}

// CreatePayment opens a pending payment covering the order's current
// total. The order must exist; its total is the amount to pay.
func (s *Service) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*PaymentResponse, error) {
	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, errors.FromDomainError(payment.ErrInvalidMethod)
	}

	var created *payment.Payment
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}
		p, err := payment.NewPayment(o.ID(), o.TotalAmount(), method)
		if err != nil {
			return err
		}
		if err := s.payments.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterNew(p)
		created = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("payment created",
		zap.String("payment_id", created.ID()),
		zap.String("order_id", created.OrderID()),
		zap.String("method", string(created.PaymentMethod())))
	return toResponse(created), nil
}

// ProcessPayment settles a pending payment with the amount handed over
// and, for cash, the change returned. The domain verifies that the
// amount covers the total and that the change matches exactly.
func (s *Service) ProcessPayment(ctx context.Context, paymentID string, req *ProcessPaymentRequest) (*PaymentResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	amountPaid, err := shared.NewMoneyFromString(req.AmountPaid, currency)
	if err != nil {
		return nil, errors.Validation("amount_paid is not a valid amount")
	}
	change := req.CashChange
	if change == "" {
		change = "0"
	}
	cashChange, err := shared.NewMoneyFromString(change, currency)
	if err != nil {
		return nil, errors.Validation("cash_change is not a valid amount")
	}

	var processed *payment.Payment
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		p, err := s.payments.FindByID(txCtx, paymentID)
		if err != nil {
			return err
		}
		if err := p.Process(amountPaid, cashChange); err != nil {
			return err
		}
		if err := s.payments.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterDirty(p)
		processed = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("payment processed",
		zap.String("payment_id", processed.ID()),
		zap.String("order_id", processed.OrderID()))
	return toResponse(processed), nil
}

// GetPayment returns one payment by id.
func (s *Service) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(p), nil
}

// GetOrderPayment returns the payment attached to an order.
func (s *Service) GetOrderPayment(ctx context.Context, orderID string) (*PaymentResponse, error) {
	p, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(p), nil
}
