// file: internals/features/finance/tuition/service/testutil_test.go
package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	tuitionmodel "lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
	schoolmodel "lesgo_backend/internals/features/school/model"
	schoolservice "lesgo_backend/internals/features/school/service"
)

var testDBSeq int64

func newUUID() uuid.UUID { return uuid.New() }

// newTestDB: sqlite in-memory per test (nama unik supaya tidak bocor
// antar test lewat cache=shared).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&schoolmodel.ClassModel{},
		&schoolmodel.StudentModel{},
		&schoolmodel.ClassEnrollmentModel{},
		&schoolmodel.StudentAttendanceModel{},
		&tuitionmodel.TuitionPeriodModel{},
		&tuitionmodel.OrderModel{},
		&tuitionmodel.OrderItemModel{},
		&tuitionmodel.PaymentTransactionModel{},
		&tuitionmodel.PaymentAllocationModel{},
		&tuitionmodel.StudentWalletModel{},
	))
	return db
}

func testPolicy() service.BillingPolicy {
	return service.BillingPolicy{SessionRate: service.DefaultSessionRate}
}

func newBillingService(db *gorm.DB) *service.BillingService {
	return service.NewBillingService(db,
		schoolservice.GormEnrollmentProvider{},
		schoolservice.GormClassCatalog{},
		schoolservice.PhonePayerResolver{},
		testPolicy())
}

func newReconcileService(db *gorm.DB) *service.ReconcileService {
	return service.NewReconcileService(db,
		schoolservice.GormAttendanceProvider{},
		schoolservice.GormClassCatalog{},
		testPolicy())
}

/* ===================== seed helpers ===================== */

func seedPeriod(t *testing.T, db *gorm.DB, status tuitionmodel.TuitionPeriodStatus, start, end time.Time) *tuitionmodel.TuitionPeriodModel {
	t.Helper()
	p := tuitionmodel.TuitionPeriodModel{
		TuitionPeriodName:      fmt.Sprintf("Periode %s", start.Format("Jan 2006")),
		TuitionPeriodMonth:     int16(start.Month()),
		TuitionPeriodYear:      int16(start.Year()),
		TuitionPeriodStartDate: start,
		TuitionPeriodEndDate:   end,
		TuitionPeriodStatus:    status,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func seedClass(t *testing.T, db *gorm.DB, name string, feeIDR int64, vatPercent float64, sessions int) *schoolmodel.ClassModel {
	t.Helper()
	c := schoolmodel.ClassModel{
		ClassName:              name,
		ClassTuitionFeeIDR:     feeIDR,
		ClassVATRatePercent:    vatPercent,
		ClassSessionsPerPeriod: sessions,
	}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func seedStudent(t *testing.T, db *gorm.DB, name string, parentName, parentPhone *string) *schoolmodel.StudentModel {
	t.Helper()
	s := schoolmodel.StudentModel{
		StudentName:        name,
		StudentParentName:  parentName,
		StudentParentPhone: parentPhone,
	}
	require.NoError(t, db.Create(&s).Error)
	return &s
}

func seedEnrollment(t *testing.T, db *gorm.DB, student *schoolmodel.StudentModel, class *schoolmodel.ClassModel, start time.Time, discountIDR int64) *schoolmodel.ClassEnrollmentModel {
	t.Helper()
	e := schoolmodel.ClassEnrollmentModel{
		ClassEnrollmentStudentID:   student.StudentID,
		ClassEnrollmentClassID:     class.ClassID,
		ClassEnrollmentStatus:      schoolmodel.EnrollmentActive,
		ClassEnrollmentStartDate:   start,
		ClassEnrollmentDiscountIDR: discountIDR,

		ClassEnrollmentStudentNameCache: student.StudentName,
		ClassEnrollmentClassNameCache:   class.ClassName,
		ClassEnrollmentParentNameCache:  student.StudentParentName,
		ClassEnrollmentParentPhoneCache: student.StudentParentPhone,
	}
	require.NoError(t, db.Create(&e).Error)
	return &e
}

func seedAttendance(t *testing.T, db *gorm.DB, student *schoolmodel.StudentModel, class *schoolmodel.ClassModel, date time.Time, status schoolmodel.AttendanceStatus) *schoolmodel.StudentAttendanceModel {
	t.Helper()
	a := schoolmodel.StudentAttendanceModel{
		StudentAttendanceStudentID: student.StudentID,
		StudentAttendanceClassID:   class.ClassID,
		StudentAttendanceDate:      date,
		StudentAttendanceStatus:    status,
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func seedWallet(t *testing.T, db *gorm.DB, studentID uuid.UUID, balanceIDR int64) *tuitionmodel.StudentWalletModel {
	t.Helper()
	w := tuitionmodel.StudentWalletModel{
		StudentWalletStudentID:  studentID,
		StudentWalletBalanceIDR: balanceIDR,
	}
	require.NoError(t, db.Create(&w).Error)
	return &w
}

// seedOrderWithItems membuat order + items dengan created_at eksplisit
// (beda 1 menit per item) supaya urutan oldest-first deterministik.
func seedOrderWithItems(t *testing.T, db *gorm.DB, payer string, items ...tuitionmodel.OrderItemModel) *tuitionmodel.OrderModel {
	t.Helper()
	o := tuitionmodel.OrderModel{OrderPayerName: payer}
	require.NoError(t, db.Create(&o).Error)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := range items {
		items[i].OrderItemOrderID = o.OrderID
		items[i].OrderItemCreatedAt = base.Add(time.Duration(i) * time.Minute)
		if items[i].OrderItemType == "" {
			items[i].OrderItemType = tuitionmodel.OrderItemTypeTuition
		}
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return &o
}

func loadItems(t *testing.T, db *gorm.DB, orderID uuid.UUID) []tuitionmodel.OrderItemModel {
	t.Helper()
	var items []tuitionmodel.OrderItemModel
	require.NoError(t, db.
		Where("order_item_order_id = ?", orderID).
		Order("order_item_created_at ASC, order_item_id ASC").
		Find(&items).Error)
	return items
}
