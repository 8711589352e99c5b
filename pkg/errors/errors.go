// Package errors defines the application-level error type returned by
// services. Domain code raises typed domain errors; services are the
// single place where those are mapped to error codes, and the API layer
// maps codes to HTTP statuses.
package errors

import (
	"errors"
	"fmt"

	"shopcore/domain/order"
	"shopcore/domain/payment"
	"shopcore/domain/product"
	"shopcore/domain/shared"
)

// ErrorCode is a stable, user-visible failure classification.
type ErrorCode string

const (
	// Generic codes.
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Business codes - order.
	CodeOrderNotFound          ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState      ErrorCode = "INVALID_ORDER_STATE"
	CodeStockNotAvailable      ErrorCode = "STOCK_NOT_AVAILABLE"
	CodePaymentAlreadyAssigned ErrorCode = "PAYMENT_ALREADY_ASSIGNED"
	CodeConcurrencyConflict    ErrorCode = "CONCURRENCY_CONFLICT"

	// Business codes - product.
	CodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"

	// Business codes - payment.
	CodePaymentNotFound       ErrorCode = "PAYMENT_NOT_FOUND"
	CodePaymentNotAssociated  ErrorCode = "PAYMENT_ORDER_NOT_ASSOCIATED"
	CodeInvalidPaymentState   ErrorCode = "INVALID_PAYMENT_STATE"
	CodePaymentAmountMismatch ErrorCode = "PAYMENT_AMOUNT_MISMATCH"
)

// AppError carries a code, a user-visible message and an optional
// wrapped cause that never leaves the process.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a cause to an AppError.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError   { return New(CodeNotFound, message) }
func Internal(message string) *AppError   { return New(CodeInternal, message) }
func Conflict(message string) *AppError   { return New(CodeConflict, message) }
func Validation(message string) *AppError { return New(CodeValidation, message) }

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// sentinelCodes maps domain sentinels to application codes. Order
// matters only in that more specific sentinels come first.
var sentinelCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrConcurrentModification, CodeConcurrencyConflict},
	{order.ErrInvalidStateTransition, CodeInvalidOrderState},
	{order.ErrOrderNotEditable, CodeInvalidOrderState},
	{order.ErrPaymentNotAssigned, CodeInvalidOrderState},
	{order.ErrPaymentAlreadyAssigned, CodePaymentAlreadyAssigned},
	{order.ErrStockNotAvailable, CodeStockNotAvailable},
	{order.ErrEmptyOrderItems, CodeValidation},
	{order.ErrInvalidQuantity, CodeValidation},
	{order.ErrItemNotFound, CodeValidation},
	{order.ErrInvalidAddress, CodeValidation},
	{order.ErrInvalidUserID, CodeValidation},
	{order.ErrInvalidPaymentID, CodeValidation},

	{product.ErrProductNotFound, CodeProductNotFound},
	{product.ErrConcurrentModification, CodeConcurrencyConflict},
	{product.ErrInsufficientStock, CodeStockNotAvailable},
	{product.ErrEmptyName, CodeValidation},
	{product.ErrInvalidPrice, CodeValidation},
	{product.ErrNegativeStock, CodeValidation},
	{product.ErrInvalidReduceQuantity, CodeValidation},

	{payment.ErrPaymentNotFound, CodePaymentNotFound},
	{payment.ErrConcurrentModification, CodeConcurrencyConflict},
	{payment.ErrOrderNotAssociated, CodePaymentNotAssociated},
	{payment.ErrAlreadyProcessed, CodeInvalidPaymentState},
	{payment.ErrInsufficientAmount, CodePaymentAmountMismatch},
	{payment.ErrCashChangeMismatch, CodePaymentAmountMismatch},
	{payment.ErrInvalidAmount, CodeValidation},
	{payment.ErrInvalidMethod, CodeValidation},
	{payment.ErrInvalidOrderID, CodeValidation},

	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidInput, CodeValidation},
}

// FromDomainError maps a domain error to an AppError by sentinel.
// Errors that already are AppErrors pass through; anything unknown
// becomes an internal error whose real cause is logged, not exposed.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range sentinelCodes {
		if errors.Is(err, m.sentinel) {
			return Wrap(err, m.code, err.Error())
		}
	}

	return Wrap(err, CodeInternal, "internal server error")
}
