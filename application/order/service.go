package order

import (
	"context"
	"fmt"
	"strings"

	"shopcore/domain/order"
	"shopcore/domain/payment"
	"shopcore/domain/product"
	"shopcore/domain/shared"
	"shopcore/pkg/errors"
	"shopcore/pkg/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service orchestrates order use cases. Multi-aggregate workflows run
// inside the unit of work so every write commits or rolls back as one.
type Service struct {
	orders   order.Repository
	products product.Repository
	payments payment.Repository
	uow      shared.UnitOfWork
}

func NewService(orders order.Repository, products product.Repository, payments payment.Repository, uow shared.UnitOfWork) *Service {
	return &Service{
		orders:   orders,
		products: products,
		payments: payments,
		uow:      uow,
	}
}

// CreateOrder places a new order. Unit prices are snapshotted from the
// catalog at creation time and stock is validated against the current
// quantities, but no stock is reserved yet.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	address, err := order.NewAddress(req.DeliveryAddress.Street, req.DeliveryAddress.City, req.DeliveryAddress.ZipCode, req.DeliveryAddress.Country)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	var created *order.Order
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		productIDs := lo.Map(req.Items, func(item OrderItemRequest, _ int) string {
			return item.ProductID
		})
		catalog, err := s.products.FindByIDs(txCtx, productIDs)
		if err != nil {
			return err
		}

		requests := make([]order.ItemRequest, 0, len(req.Items))
		for _, item := range req.Items {
			prod, ok := catalog[item.ProductID]
			if !ok {
				return product.NewProductNotFoundError(item.ProductID)
			}
			requests = append(requests, order.ItemRequest{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: prod.Price(),
				Stock:     prod,
			})
		}

		o, err := order.NewOrder(req.UserID, address, requests)
		if err != nil {
			return err
		}
		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterNew(o)
		created = o
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order created",
		zap.String("order_id", created.ID()),
		zap.String("user_id", created.UserID()),
		zap.Int("item_count", len(created.Items())))
	return toResponse(created), nil
}

// GetOrder returns one order by id.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(o), nil
}

// GetUserOrders lists a user's orders, newest first. When status is
// non-empty the listing is narrowed to orders in that status.
func (s *Service) GetUserOrders(ctx context.Context, userID, status string) ([]*OrderResponse, error) {
	var (
		found []*order.Order
		err   error
	)
	if status == "" {
		found, err = s.orders.FindByUserID(ctx, userID)
	} else {
		wanted := order.Status(strings.ToUpper(status))
		if !wanted.IsValid() {
			return nil, errors.Validation(fmt.Sprintf("unknown order status %q", status))
		}
		spec := shared.And[*order.Order](
			order.ByUserSpecification{UserID: userID},
			order.ByStatusSpecification{Status: wanted},
		)
		found, err = s.orders.FindBySpecification(ctx, spec)
	}
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return lo.Map(found, func(o *order.Order, _ int) *OrderResponse {
		return toResponse(o)
	}), nil
}

// CompleteProcessing runs the post-checkout workflow for an order:
// reserve stock for every line item, assign the payment and confirm.
// The whole workflow is transactional; a failure on any line leaves
// all stock quantities and the order untouched. All aggregates are
// mutated in memory first and saved only once every step has passed.
func (s *Service) CompleteProcessing(ctx context.Context, orderID, paymentID string) (*OrderResponse, error) {
	var processed *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		pay, err := s.payments.FindByID(txCtx, paymentID)
		if err != nil {
			return err
		}
		if pay.OrderID() != o.ID() {
			return payment.NewOrderNotAssociatedError(paymentID, orderID)
		}

		items := o.Items()
		productIDs := lo.Map(items, func(item order.OrderItem, _ int) string {
			return item.ProductID()
		})
		catalog, err := s.products.FindByIDs(txCtx, productIDs)
		if err != nil {
			return err
		}

		reserved := make([]*product.Product, 0, len(items))
		for _, item := range items {
			prod, ok := catalog[item.ProductID()]
			if !ok {
				return product.NewProductNotFoundError(item.ProductID())
			}
			if err := prod.ReduceStockQuantity(item.Quantity()); err != nil {
				return err
			}
			reserved = append(reserved, prod)
		}

		if err := o.AssignPayment(pay.ID()); err != nil {
			return err
		}
		if err := o.Confirm(); err != nil {
			return err
		}

		for _, prod := range reserved {
			if err := s.products.Save(txCtx, prod); err != nil {
				return err
			}
			s.uow.RegisterDirty(prod)
		}
		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		processed = o
		return nil
	})
	if err != nil {
		logger.Warn("order processing failed",
			zap.String("order_id", orderID),
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order processing completed",
		zap.String("order_id", processed.ID()),
		zap.String("payment_id", processed.PaymentID()))
	return toResponse(processed), nil
}

// ShipOrder moves a confirmed order to shipped. It refuses to ship
// until the order's payment has succeeded and every referenced product
// still exists.
func (s *Service) ShipOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	var shipped *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		pay, err := s.payments.FindByOrderID(txCtx, orderID)
		if err != nil {
			return err
		}
		if !pay.IsSucceeded() {
			return errors.New(errors.CodeInvalidPaymentState,
				fmt.Sprintf("payment %s has not succeeded", pay.ID()))
		}

		productIDs := lo.Map(o.Items(), func(item order.OrderItem, _ int) string {
			return item.ProductID()
		})
		catalog, err := s.products.FindByIDs(txCtx, productIDs)
		if err != nil {
			return err
		}
		for _, id := range productIDs {
			if _, ok := catalog[id]; !ok {
				return product.NewProductNotFoundError(id)
			}
		}

		if err := o.Ship(); err != nil {
			return err
		}
		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		shipped = o
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order shipped", zap.String("order_id", shipped.ID()))
	return toResponse(shipped), nil
}

// UpdateBulkOrderItems applies quantity deltas to an order atomically.
// Every delta is applied to the in-memory aggregate and the order is
// written once at the end, so the first failing delta aborts the whole
// batch without touching any line.
func (s *Service) UpdateBulkOrderItems(ctx context.Context, orderID string, req *BulkUpdateItemsRequest) (*OrderResponse, error) {
	var updated *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}

		productIDs := lo.Map(req.Items, func(item ItemDeltaRequest, _ int) string {
			return item.ProductID
		})
		catalog, err := s.products.FindByIDs(txCtx, productIDs)
		if err != nil {
			return err
		}

		for _, delta := range req.Items {
			prod, ok := catalog[delta.ProductID]
			if !ok {
				return product.NewProductNotFoundError(delta.ProductID)
			}
			if err := o.UpdateOrderItem(delta.ProductID, delta.QuantityChange, prod.Price(), prod); err != nil {
				return err
			}
		}

		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		updated = o
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(updated), nil
}

// UpdateStatus transitions the order to the requested status.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, req *UpdateStatusRequest) (*OrderResponse, error) {
	status := order.Status(strings.ToUpper(req.Status))
	if !status.IsValid() {
		return nil, errors.Validation(fmt.Sprintf("unknown order status %q", req.Status))
	}

	var updated *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := o.UpdateStatus(status); err != nil {
			return err
		}
		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		updated = o
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(updated), nil
}

// CancelOrder cancels the order with a free-form reason.
func (s *Service) CancelOrder(ctx context.Context, orderID, reason string) (*OrderResponse, error) {
	var cancelled *order.Order
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		o, err := s.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(reason); err != nil {
			return err
		}
		if err := s.orders.Save(txCtx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order cancelled",
		zap.String("order_id", cancelled.ID()),
		zap.String("reason", reason))
	return toResponse(cancelled), nil
}
