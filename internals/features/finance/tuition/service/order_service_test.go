// file: internals/features/finance/tuition/service/order_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

func TestCreateManualOrder(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewOrderService(db)
	ctx := context.Background()
	studentID := newUUID()

	t.Run("order kosong ditolak", func(t *testing.T) {
		_, err := svc.CreateManual(ctx, service.CreateOrderInput{PayerName: "Bu Ratna"})
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("nominal negatif hanya untuk adjustment", func(t *testing.T) {
		_, err := svc.CreateManual(ctx, service.CreateOrderInput{
			PayerName: "Bu Ratna",
			Items: []service.NewOrderItemInput{{
				StudentID: studentID,
				Type:      model.OrderItemTypeMaterial,
				Label:     "Modul Fisika",
				AmountIDR: -50000,
			}},
		})
		assert.ErrorIs(t, err, service.ErrNegativeAmount)
	})

	t.Run("material + adjustment negatif", func(t *testing.T) {
		view, err := svc.CreateManual(ctx, service.CreateOrderInput{
			PayerName: "Bu Ratna",
			Items: []service.NewOrderItemInput{
				{
					StudentID:      studentID,
					Type:           model.OrderItemTypeMaterial,
					Label:          "Modul Fisika",
					AmountIDR:      150000,
					VATRatePercent: 11,
				},
				{
					StudentID: studentID,
					Type:      model.OrderItemTypeAdjustment,
					Label:     "Koreksi tagihan Feb",
					AmountIDR: -50000,
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		// 150000 + PPN 16500 − 50000
		assert.Equal(t, int64(116500), view.Totals.FinalAmountIDR)
		assert.Equal(t, model.OrderStatusPending, view.Status)
	})
}

func TestOrderGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewOrderService(db)

	_, err := svc.Get(context.Background(), newUUID())
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestOrderCancel(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewOrderService(db)
	payments := service.NewPaymentService(db)
	ctx := context.Background()

	t.Run("order tanpa pembayaran bisa dibatalkan", func(t *testing.T) {
		order := seedOrderWithItems(t, db, "Bu Ratna",
			model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP Maret", OrderItemAmountIDR: 100000},
		)
		require.NoError(t, svc.Cancel(ctx, order.OrderID))

		view, err := svc.Get(ctx, order.OrderID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCanceled, view.Status)

		// cancel ulang tertolak
		assert.ErrorIs(t, svc.Cancel(ctx, order.OrderID), service.ErrOrderCanceled)
	})

	t.Run("order dengan pembayaran tidak bisa dibatalkan", func(t *testing.T) {
		order := seedOrderWithItems(t, db, "Pak Budi",
			model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP Maret", OrderItemAmountIDR: 100000},
		)
		_, err := payments.RecordPayment(ctx, service.RecordPaymentInput{
			OrderID:     order.OrderID,
			TotalAmount: 40000,
			Method:      model.PaymentMethodCash,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Cancel(ctx, order.OrderID), service.ErrOrderHasPayments)

		// koreksinya lewat adjustment, bukan pembatalan — order tetap hidup
		view, err := svc.Get(ctx, order.OrderID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPartial, view.Status)
	})

	t.Run("order tidak dikenal", func(t *testing.T) {
		assert.ErrorIs(t, svc.Cancel(ctx, newUUID()), service.ErrOrderNotFound)
	})
}

func TestOrderListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewOrderService(db)
	ctx := context.Background()

	studentA := newUUID()
	studentB := newUUID()
	seedOrderWithItems(t, db, "Bu Ratna",
		model.OrderItemModel{OrderItemStudentID: studentA, OrderItemLabel: "SPP Maret", OrderItemAmountIDR: 100000},
	)
	seedOrderWithItems(t, db, "Pak Budi",
		model.OrderItemModel{OrderItemStudentID: studentB, OrderItemLabel: "SPP Maret", OrderItemAmountIDR: 200000},
	)

	all, total, err := svc.List(ctx, service.ListOrdersFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	onlyA, total, err := svc.List(ctx, service.ListOrdersFilter{StudentID: &studentA, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, onlyA, 1)
	assert.Equal(t, "Bu Ratna", onlyA[0].Order.OrderPayerName)
}

func TestWalletResetToZero(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewWalletService(db)
	ctx := context.Background()

	studentID := newUUID()
	seedWallet(t, db, studentID, 500000)

	require.NoError(t, svc.ResetToZero(ctx, studentID))
	w, err := svc.ByStudent(ctx, studentID)
	require.NoError(t, err)
	assert.Zero(t, w.StudentWalletBalanceIDR)

	assert.ErrorIs(t, svc.ResetToZero(ctx, newUUID()), service.ErrWalletNotFound)
}
