// file: internals/features/finance/tuition/service/payment_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   PaymentService — Transaction Recorder.

   Semua efek (paid amount per item, transaction + allocation
   rows) mendarat dalam SATU gorm transaction, dengan order +
   items di-lock FOR UPDATE lebih dulu supaya dua pembayaran
   konkuren ke order yang sama tidak sama-sama lolos membaca
   remaining yang stale (lost update).
====================================================== */

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type RecordPaymentInput struct {
	OrderID     uuid.UUID
	TotalAmount int64 // diabaikan di manual mode (total = Σ alokasi)
	Method      string
	EvidenceURL *string
	Allocations []AllocationLine // kosong/nil = auto mode
	PaidAt      *time.Time
	Meta        datatypes.JSON // referensi gateway dsb, ikut disimpan di transaksi
}

type RecordPaymentResult struct {
	Transaction model.PaymentTransactionModel  `json:"transaction"`
	Allocations []model.PaymentAllocationModel `json:"allocations"`
	Totals      OrderTotals                    `json:"totals"`
	Status      model.OrderStatus              `json:"status"`
}

// RecordPayment mencatat satu pembayaran terhadap sebuah order.
// Auto mode: oldest-debt-first greedy; surplus ditolak sebelum commit.
// Manual mode: alokasi caller divalidasi all-or-nothing; totalAmount
// transaksi DIDEFINISIKAN sebagai Σ alokasi, bukan angka terpisah.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*RecordPaymentResult, error) {
	if !model.IsValidPaymentMethod(in.Method) {
		return nil, ErrInvalidPaymentMethod
	}
	manual := len(in.Allocations) > 0
	if !manual && in.TotalAmount <= 0 {
		return nil, ErrAmountNotPositive
	}

	var out RecordPaymentResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 🔒 order dulu, baru items — urutan lock konsisten di semua path
		var order model.OrderModel
		if err := withRowLock(tx).
			First(&order, "order_id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsCanceled() {
			return ErrOrderCanceled
		}

		var items []model.OrderItemModel
		if err := withRowLock(tx).
			Where("order_item_order_id = ?", order.OrderID).
			Order("order_item_created_at ASC, order_item_id ASC").
			Find(&items).Error; err != nil {
			return err
		}

		var (
			resolved []AllocationLine
			total    int64
			err      error
		)
		if manual {
			total, err = ValidateManualAllocations(order.OrderID, items, in.Allocations)
			if err != nil {
				return err
			}
			resolved = in.Allocations
		} else {
			total = in.TotalAmount
			resolved, err = AutoAllocate(order.OrderID, items, total)
			if err != nil {
				return err
			}
		}

		// Diskon order (wallet netting) hidup di level order, bukan per
		// item, jadi Σ remaining item bisa melebihi sisa tagihan yang
		// sebenarnya. Cap agregat: totalPaid tidak boleh menembus
		// finalAmount, potongan wallet jangan sampai tertagih dua kali.
		pre := ComputeOrderTotals(order, items)
		if orderRemaining := pre.FinalAmountIDR - pre.TotalPaidIDR; total > orderRemaining {
			return &AllocationExceedsDebtError{
				OrderID:        order.OrderID,
				RequestedIDR:   total,
				OutstandingIDR: orderRemaining,
			}
		}

		// Terapkan lewat chokepoint ApplyPayment lalu persist per item.
		byID := make(map[uuid.UUID]*model.OrderItemModel, len(items))
		for i := range items {
			byID[items[i].OrderItemID] = &items[i]
		}
		for _, a := range resolved {
			it := byID[a.OrderItemID]
			if err := ApplyPayment(it, a.AmountIDR); err != nil {
				return err
			}
		}
		for _, a := range resolved {
			it := byID[a.OrderItemID]
			if err := tx.Model(&model.OrderItemModel{}).
				Where("order_item_id = ?", it.OrderItemID).
				Update("order_item_paid_amount_idr", it.OrderItemPaidAmountIDR).Error; err != nil {
				return err
			}
		}

		paidAt := time.Now()
		if in.PaidAt != nil {
			paidAt = *in.PaidAt
		}
		trx := model.PaymentTransactionModel{
			PaymentTransactionOrderID:     order.OrderID,
			PaymentTransactionAmountIDR:   total,
			PaymentTransactionMethod:      in.Method,
			PaymentTransactionEvidenceURL: in.EvidenceURL,
			PaymentTransactionPaidAt:      paidAt,
			PaymentTransactionMeta:        in.Meta,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}
		rows := make([]model.PaymentAllocationModel, 0, len(resolved))
		for _, a := range resolved {
			rows = append(rows, model.PaymentAllocationModel{
				PaymentAllocationTransactionID: trx.PaymentTransactionID,
				PaymentAllocationOrderItemID:   a.OrderItemID,
				PaymentAllocationAmountIDR:     a.AmountIDR,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		totals := ComputeOrderTotals(order, items)
		out = RecordPaymentResult{
			Transaction: trx,
			Allocations: rows,
			Totals:      totals,
			Status:      DeriveOrderStatus(order.IsCanceled(), totals.TotalPaidIDR, totals.FinalAmountIDR),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions mengembalikan audit trail satu order, terlama dulu.
func (s *PaymentService) Transactions(ctx context.Context, orderID uuid.UUID) ([]model.PaymentTransactionModel, error) {
	var rows []model.PaymentTransactionModel
	if err := s.DB.WithContext(ctx).
		Where("payment_transaction_order_id = ?", orderID).
		Order("payment_transaction_paid_at ASC, payment_transaction_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AllocationsOf mengembalikan allocation set yang benar-benar diterapkan
// pada satu transaksi.
func (s *PaymentService) AllocationsOf(ctx context.Context, transactionID uuid.UUID) ([]model.PaymentAllocationModel, error) {
	var rows []model.PaymentAllocationModel
	if err := s.DB.WithContext(ctx).
		Where("payment_allocation_transaction_id = ?", transactionID).
		Order("payment_allocation_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
