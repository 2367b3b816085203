// file: internals/features/finance/tuition/service/payment_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

func TestRecordPaymentAutoOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Bu Ratna",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP Maret — Andi", OrderItemAmountIDR: 100000},
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "Buku paket", OrderItemType: model.OrderItemTypeMaterial, OrderItemAmountIDR: 50000},
	)

	res, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID:     order.OrderID,
		TotalAmount: 120000,
		Method:      model.PaymentMethodCash,
	})
	require.NoError(t, err)

	items := loadItems(t, db, order.OrderID)
	require.Len(t, items, 2)
	assert.Equal(t, int64(100000), items[0].OrderItemPaidAmountIDR, "line tertua dilunasi dulu")
	assert.Equal(t, int64(20000), items[1].OrderItemPaidAmountIDR, "sisanya ke line berikutnya")

	assert.Equal(t, int64(120000), res.Transaction.PaymentTransactionAmountIDR)
	assert.Len(t, res.Allocations, 2)
	assert.Equal(t, model.OrderStatusPartial, res.Status)
}

func TestRecordPaymentOverflowRejectedAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Bu Ratna",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "Buku", OrderItemType: model.OrderItemTypeMaterial, OrderItemAmountIDR: 50000},
	)

	_, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID:     order.OrderID,
		TotalAmount: 150001,
		Method:      model.PaymentMethodCash,
	})
	var ex *service.AllocationExceedsDebtError
	require.ErrorAs(t, err, &ex)

	// tidak ada efek parsial yang bocor
	for _, it := range loadItems(t, db, order.OrderID) {
		assert.Zero(t, it.OrderItemPaidAmountIDR)
	}
	var n int64
	require.NoError(t, db.Model(&model.PaymentTransactionModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecordPaymentManualAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Pak Dedi",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "Buku", OrderItemType: model.OrderItemTypeMaterial, OrderItemAmountIDR: 50000},
	)
	items := loadItems(t, db, order.OrderID)

	_, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: order.OrderID,
		Method:  model.PaymentMethodBankTransfer,
		Allocations: []service.AllocationLine{
			{OrderItemID: items[0].OrderItemID, AmountIDR: 60000},
			{OrderItemID: items[1].OrderItemID, AmountIDR: 50001}, // melebihi remaining
		},
	})
	var ov *service.OverpaymentError
	require.ErrorAs(t, err, &ov)

	// alokasi valid di item pertama ikut batal
	for _, it := range loadItems(t, db, order.OrderID) {
		assert.Zero(t, it.OrderItemPaidAmountIDR)
	}
}

func TestRecordPaymentManualMode(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Pak Dedi",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "Buku", OrderItemType: model.OrderItemTypeMaterial, OrderItemAmountIDR: 50000},
	)
	items := loadItems(t, db, order.OrderID)

	// bayar line kedua duluan — manual boleh melompati urutan
	res, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: order.OrderID,
		Method:  model.PaymentMethodBankTransfer,
		Allocations: []service.AllocationLine{
			{OrderItemID: items[1].OrderItemID, AmountIDR: 50000},
		},
	})
	require.NoError(t, err)
	// total transaksi DIDEFINISIKAN sebagai Σ alokasi
	assert.Equal(t, int64(50000), res.Transaction.PaymentTransactionAmountIDR)

	got := loadItems(t, db, order.OrderID)
	assert.Zero(t, got[0].OrderItemPaidAmountIDR)
	assert.Equal(t, int64(50000), got[1].OrderItemPaidAmountIDR)
}

func TestLedgerBalanceInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Bu Sari",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 200000},
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "Modul", OrderItemType: model.OrderItemTypeMaterial, OrderItemAmountIDR: 75000},
	)

	for _, amt := range []int64{50000, 120000, 105000} {
		_, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
			OrderID:     order.OrderID,
			TotalAmount: amt,
			Method:      model.PaymentMethodCash,
		})
		require.NoError(t, err)
	}

	var sumTrx, sumAlloc, sumPaid int64
	require.NoError(t, db.Model(&model.PaymentTransactionModel{}).
		Where("payment_transaction_order_id = ?", order.OrderID).
		Select("COALESCE(SUM(payment_transaction_amount_idr), 0)").Scan(&sumTrx).Error)
	require.NoError(t, db.Model(&model.PaymentAllocationModel{}).
		Select("COALESCE(SUM(payment_allocation_amount_idr), 0)").Scan(&sumAlloc).Error)
	require.NoError(t, db.Model(&model.OrderItemModel{}).
		Where("order_item_order_id = ?", order.OrderID).
		Select("COALESCE(SUM(order_item_paid_amount_idr), 0)").Scan(&sumPaid).Error)

	// Σ transaksi = Σ alokasi = Σ paid amount item
	assert.Equal(t, int64(275000), sumTrx)
	assert.Equal(t, sumTrx, sumAlloc)
	assert.Equal(t, sumTrx, sumPaid)

	view, err := service.NewOrderService(db).Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, view.Status)
}

func TestRecordPaymentOnCancelledOrder(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Bu Sari",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
	)
	now := time.Now()
	require.NoError(t, db.Model(&model.OrderModel{}).
		Where("order_id = ?", order.OrderID).
		Update("order_canceled_at", &now).Error)

	_, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID:     order.OrderID,
		TotalAmount: 100000,
		Method:      model.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, service.ErrOrderCanceled)
}

func TestTransactionsAuditTrail(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)
	ctx := context.Background()

	order := seedOrderWithItems(t, db, "Bu Sari",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
	)
	early := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	_, err := svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: order.OrderID, TotalAmount: 40000,
		Method: model.PaymentMethodCash, PaidAt: &late,
	})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: order.OrderID, TotalAmount: 30000,
		Method: model.PaymentMethodBankTransfer, PaidAt: &early,
	})
	require.NoError(t, err)

	trxs, err := svc.Transactions(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, trxs, 2)
	// terlama dulu
	assert.Equal(t, int64(30000), trxs[0].PaymentTransactionAmountIDR)
	assert.Equal(t, int64(40000), trxs[1].PaymentTransactionAmountIDR)

	allocs, err := svc.AllocationsOf(ctx, trxs[0].PaymentTransactionID)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, int64(30000), allocs[0].PaymentAllocationAmountIDR)
}

func TestRecordPaymentRespectsWalletNetting(t *testing.T) {
	db := newTestDB(t)
	billing := newBillingService(db)
	payments := service.NewPaymentService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Matematika SMA", 1500000, 0, 8)
	student := seedStudent(t, db, "Andi", strptr("Bu Ratna"), strptr("0812001"))
	seedEnrollment(t, db, student, class, marchStart, 0)
	seedWallet(t, db, student.StudentID, 200000)

	res, err := billing.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	require.Len(t, res.Details, 1)
	orderID := *res.Details[0].OrderID

	// tagihan sebenarnya 1.300.000; nominal penuh 1.500.000 berarti
	// potongan wallet tertagih dua kali — harus tertolak
	_, err = payments.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: orderID, TotalAmount: 1500000, Method: model.PaymentMethodCash,
	})
	var exceeds *service.AllocationExceedsDebtError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, int64(1300000), exceeds.OutstandingIDR)

	// alokasi manual juga tidak boleh menembus cap order
	items := loadItems(t, db, orderID)
	require.Len(t, items, 1)
	_, err = payments.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: orderID, Method: model.PaymentMethodCash,
		Allocations: []service.AllocationLine{
			{OrderItemID: items[0].OrderItemID, AmountIDR: 1500000},
		},
	})
	require.ErrorAs(t, err, &exceeds)

	pay, err := payments.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: orderID, TotalAmount: 1300000, Method: model.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, pay.Status)
	assert.Equal(t, int64(1300000), pay.Totals.TotalPaidIDR)
	assert.Equal(t, int64(1300000), pay.Totals.FinalAmountIDR)

	// lunas: pembayaran tambahan sekecil apa pun tertolak
	_, err = payments.RecordPayment(ctx, service.RecordPaymentInput{
		OrderID: orderID, TotalAmount: 1, Method: model.PaymentMethodCash,
	})
	require.ErrorAs(t, err, &exceeds)
}

func TestRecordPaymentRejectsUnknownMethod(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPaymentService(db)

	order := seedOrderWithItems(t, db, "Bu Ratna",
		model.OrderItemModel{OrderItemStudentID: newUUID(), OrderItemLabel: "SPP", OrderItemAmountIDR: 100000},
	)
	_, err := svc.RecordPayment(context.Background(), service.RecordPaymentInput{
		OrderID: order.OrderID, TotalAmount: 50000, Method: "pulsa",
	})
	assert.ErrorIs(t, err, service.ErrInvalidPaymentMethod)
}
