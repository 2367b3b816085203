// file: internals/features/finance/tuition/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   Error taksonomi:
   - validation  → 422, caller perbaiki input lalu retry
   - state-conflict (tipe-tipe di bawah) → 409, JANGAN
     retry verbatim; ini pelanggaran business rule
   - not found → 404
   Lock/serialization error dari storage lewat apa adanya
   (aman di-retry dari awal karena tidak ada yang commit).
====================================================== */

var (
	ErrAmountNotPositive    = errors.New("amount must be greater than zero")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrOrderCanceled        = errors.New("order is cancelled")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPeriodNotFound       = errors.New("tuition period not found")
	ErrWalletNotFound       = errors.New("student wallet not found")
	ErrPeriodHasOrders      = errors.New("tuition period already has orders")
	ErrEmptyOrder           = errors.New("order must have at least one item")
	ErrOrderHasPayments     = errors.New("order with recorded payments cannot be cancelled")
	ErrNegativeAmount       = errors.New("negative amount only allowed on adjustment items")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// OverpaymentError: satu alokasi melebihi sisa hutang satu line.
type OverpaymentError struct {
	OrderItemID  uuid.UUID
	ItemLabel    string
	RemainingIDR int64
	RequestedIDR int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("allocation %d exceeds remaining debt %d on item %q",
		e.RequestedIDR, e.RemainingIDR, e.ItemLabel)
}

// AllocationExceedsDebtError: total pembayaran auto-mode melebihi
// total sisa hutang order. Surplus TIDAK boleh di-drop diam-diam.
type AllocationExceedsDebtError struct {
	OrderID        uuid.UUID
	RequestedIDR   int64
	OutstandingIDR int64
}

func (e *AllocationExceedsDebtError) Error() string {
	return fmt.Sprintf("payment %d exceeds total outstanding debt %d on order %s",
		e.RequestedIDR, e.OutstandingIDR, e.OrderID)
}

// ItemNotFoundError: alokasi manual menunjuk item yang bukan milik order ini.
type ItemNotFoundError struct {
	OrderID     uuid.UUID
	OrderItemID uuid.UUID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("order item %s not found on order %s", e.OrderItemID, e.OrderID)
}

// InvalidPeriodStateError: operasi tidak diizinkan pada status periode saat ini.
type InvalidPeriodStateError struct {
	PeriodID uuid.UUID
	Status   model.TuitionPeriodStatus
	Op       string
}

func (e *InvalidPeriodStateError) Error() string {
	return fmt.Sprintf("%s not allowed: tuition period %s is %s", e.Op, e.PeriodID, e.Status)
}

// DuplicateReconcileError: attendance record sudah pernah di-refund.
type DuplicateReconcileError struct {
	AttendanceID uuid.UUID
}

func (e *DuplicateReconcileError) Error() string {
	return fmt.Sprintf("attendance record %s already reconciled", e.AttendanceID)
}

// IsStateConflict melaporkan apakah err termasuk kelas state-conflict
// (dipakai controller untuk mapping ke 409).
func IsStateConflict(err error) bool {
	var (
		op *OverpaymentError
		al *AllocationExceedsDebtError
		ps *InvalidPeriodStateError
		dr *DuplicateReconcileError
	)
	if errors.As(err, &op) || errors.As(err, &al) || errors.As(err, &ps) || errors.As(err, &dr) {
		return true
	}
	return errors.Is(err, ErrOrderCanceled) ||
		errors.Is(err, ErrPeriodHasOrders) ||
		errors.Is(err, ErrOrderHasPayments)
}
