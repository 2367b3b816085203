// file: internals/features/finance/tuition/service/billing_service_test.go
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

var (
	marchStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	marchEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func strptr(s string) *string { return &s }

func TestBillingPreviewIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Matematika SMA", 1500000, 0, 8)
	student := seedStudent(t, db, "Andi", strptr("Bu Ratna"), strptr("0812001"))
	seedEnrollment(t, db, student, class, marchStart, 0)

	first, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModePreview)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModePreview)
	require.NoError(t, err)

	assert.Equal(t, first.TotalFinalAmountIDR, second.TotalFinalAmountIDR)
	assert.Equal(t, int64(1500000), first.TotalFinalAmountIDR)

	// nol write: tidak ada order, status periode tidak berubah
	var n int64
	require.NoError(t, db.Model(&model.OrderModel{}).Count(&n).Error)
	assert.Zero(t, n)
	var p model.TuitionPeriodModel
	require.NoError(t, db.First(&p, "tuition_period_id = ?", period.TuitionPeriodID).Error)
	assert.True(t, p.IsCreated())
}

func TestBillingCommitCreatesOrdersAndActivates(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Matematika SMA", 1500000, 11, 8)
	student := seedStudent(t, db, "Andi", strptr("Bu Ratna"), strptr("0812001"))
	seedEnrollment(t, db, student, class, marchStart, 0)

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OrdersCreated)
	assert.Equal(t, 1, res.ItemsCreated)
	assert.Equal(t, int64(1500000+165000), res.TotalFinalAmountIDR)
	require.NotNil(t, res.Details[0].OrderID)

	var p model.TuitionPeriodModel
	require.NoError(t, db.First(&p, "tuition_period_id = ?", period.TuitionPeriodID).Error)
	assert.True(t, p.IsActive())
	assert.NotNil(t, p.TuitionPeriodActivatedAt)

	items := loadItems(t, db, *res.Details[0].OrderID)
	require.Len(t, items, 1)
	assert.Equal(t, model.OrderItemTypeTuition, items[0].OrderItemType)
	assert.Equal(t, int64(1500000), items[0].OrderItemAmountIDR)
	assert.Equal(t, 11.0, items[0].OrderItemVATRatePercent)

	// re-run COMMIT: murid sudah ditagih → tidak ada order baru
	again, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	assert.Zero(t, again.OrdersCreated)
	var n int64
	require.NoError(t, db.Model(&model.OrderModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestBillingWalletNetting(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Fisika SMA", 1500000, 0, 8)
	student := seedStudent(t, db, "Budi", strptr("Pak Dedi"), strptr("0812002"))
	seedEnrollment(t, db, student, class, marchStart, 0)
	seedWallet(t, db, student.StudentID, 200000)

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	require.Len(t, res.Details, 1)
	d := res.Details[0]
	assert.Equal(t, int64(1500000), d.SubTotalIDR)
	assert.Equal(t, int64(200000), d.WalletDeductionIDR)
	assert.Equal(t, int64(1300000), d.FinalAmountIDR)

	// wallet terdebet penuh
	var w model.StudentWalletModel
	require.NoError(t, db.First(&w, "student_wallet_student_id = ?", student.StudentID).Error)
	assert.Zero(t, w.StudentWalletBalanceIDR)

	// final amount order turunan ikut ter-net
	view, err := service.NewOrderService(db).Get(ctx, *d.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(1300000), view.Totals.FinalAmountIDR)
	assert.Equal(t, int64(200000), view.Totals.DiscountTotalIDR)
}

func TestBillingNegativeWalletNotCollected(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Kimia SMA", 1000000, 0, 8)
	student := seedStudent(t, db, "Citra", nil, nil)
	seedEnrollment(t, db, student, class, marchStart, 0)
	seedWallet(t, db, student.StudentID, -50000)

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	require.Len(t, res.Details, 1)
	assert.Zero(t, res.Details[0].WalletDeductionIDR)
	assert.Equal(t, int64(1000000), res.Details[0].FinalAmountIDR)

	// hutang terbawa tidak ikut tertagih, saldo tetap
	var w model.StudentWalletModel
	require.NoError(t, db.First(&w, "student_wallet_student_id = ?", student.StudentID).Error)
	assert.Equal(t, int64(-50000), w.StudentWalletBalanceIDR)
}

func TestBillingSiblingGrouping(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Bahasa Inggris", 800000, 0, 8)
	phone := strptr("0812003")
	kakak := seedStudent(t, db, "Dina", strptr("Bu Wati"), phone)
	adik := seedStudent(t, db, "Dani", strptr("Bu Wati"), phone)
	seedEnrollment(t, db, kakak, class, marchStart, 0)
	seedEnrollment(t, db, adik, class, marchStart, 100000)

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	// satu nomor WA ortu = satu invoice
	require.Equal(t, 1, res.OrdersCreated)
	d := res.Details[0]
	assert.Equal(t, "Bu Wati", d.PayerName)
	assert.Len(t, d.Lines, 2)
	assert.Equal(t, int64(800000+700000), d.FinalAmountIDR)

	items := loadItems(t, db, *d.OrderID)
	require.Len(t, items, 2)
}

func TestBillingDiscountClampToZero(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Robotik", 500000, 0, 8)
	student := seedStudent(t, db, "Eka", nil, nil)
	seedEnrollment(t, db, student, class, marchStart, 600000) // diskon > fee

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModePreview)
	require.NoError(t, err)
	// satu-satunya line 0 → tidak ada order untuk payer ini
	assert.Zero(t, res.OrdersCreated)
}

func TestBillingOnClosedPeriodRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodClosed, marchStart, marchEnd)

	for _, mode := range []service.Mode{service.ModePreview, service.ModeCommit} {
		_, err := svc.Generate(ctx, period.TuitionPeriodID, mode)
		var st *service.InvalidPeriodStateError
		require.ErrorAs(t, err, &st, "mode %s", mode)
	}
}

func TestBillingLateEnrollmentOnActivePeriod(t *testing.T) {
	db := newTestDB(t)
	svc := newBillingService(db)
	ctx := context.Background()

	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Matematika SMP", 900000, 0, 8)
	s1 := seedStudent(t, db, "Fajar", nil, strptr("0812004"))
	seedEnrollment(t, db, s1, class, marchStart, 0)

	_, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)

	// murid susulan di periode ACTIVE — hanya dia yang tertagih di run kedua
	s2 := seedStudent(t, db, "Gita", nil, strptr("0812005"))
	seedEnrollment(t, db, s2, class, marchStart.AddDate(0, 0, 10), 0)

	res, err := svc.Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	require.Equal(t, 1, res.OrdersCreated)
	require.Len(t, res.Details[0].Lines, 1)
	assert.Equal(t, s2.StudentID, res.Details[0].Lines[0].StudentID)
}
