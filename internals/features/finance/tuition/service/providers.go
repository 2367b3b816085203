// file: internals/features/finance/tuition/service/providers.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Boundary contracts — data yang core butuhkan dari luar
   (registry murid/kelas, absensi). Implementasi GORM ada
   di internals/features/school/service; core tidak tahu
   tabel mereka.

   Semua method menerima tx supaya pembacaan di mode COMMIT/
   EXECUTE ikut transaksi yang sama dengan write-nya.
====================================================== */

// EnrollmentInfo: satu keikutsertaan aktif + identitas murid/ortu
// (snapshot untuk payer grouping).
type EnrollmentInfo struct {
	EnrollmentID uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	ParentName   *string
	ParentPhone  *string
	ClassID      uuid.UUID
	DiscountIDR  int64
}

type EnrollmentProvider interface {
	// ActiveEnrollmentsOverlapping: enrollment berstatus aktif yang
	// beririsan dengan [start, end] (inklusif).
	ActiveEnrollmentsOverlapping(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]EnrollmentInfo, error)
}

// ClassInfo: data katalog yang dipakai billing & reconciliation.
type ClassInfo struct {
	ClassID           uuid.UUID
	ClassName         string
	TuitionFeeIDR     int64
	VATRatePercent    float64
	SessionsPerPeriod int
}

type ClassCatalog interface {
	ClassByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*ClassInfo, error)
}

// ExcusedAbsence: satu record izin yang belum pernah di-refund.
type ExcusedAbsence struct {
	AttendanceID uuid.UUID
	StudentID    uuid.UUID
	StudentName  string
	ClassID      uuid.UUID
	Date         time.Time
}

type AttendanceProvider interface {
	// ExcusedAbsences: record izin BELUM reconciled dalam window,
	// dibatasi ke studentIDs (populasi murid periode tsb).
	ExcusedAbsences(ctx context.Context, tx *gorm.DB, start, end time.Time, studentIDs []uuid.UUID) ([]ExcusedAbsence, error)
	// MarkReconciled: guard idempotensi — WAJIB gagal dengan
	// DuplicateReconcileError kalau ada record yang sudah reconciled,
	// supaya satu absen tidak menghasilkan dua refund.
	MarkReconciled(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

// PayerGroup: satu unit pembayar (ortu) + murid-murid di bawahnya.
type PayerGroup struct {
	PayerName  string
	PayerPhone *string
	StudentIDs []uuid.UUID
}

type PayerResolver interface {
	// GroupByPayer mengelompokkan enrollment ke unit payer
	// (default: share nomor WA ortu → satu payer).
	GroupByPayer(enrollments []EnrollmentInfo) []PayerGroup
}
