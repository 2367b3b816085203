// file: internals/features/school/service/providers.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tuition "lesgo_backend/internals/features/finance/tuition/service"
	schoolmodel "lesgo_backend/internals/features/school/model"
)

/* ======================================================
   Implementasi GORM untuk boundary contract yang dibutuhkan
   core billing/reconciliation. Core tidak tahu tabel sini;
   wiring terjadi di route/index.go.
====================================================== */

/* ===================== EnrollmentProvider ===================== */

type GormEnrollmentProvider struct{}

func (GormEnrollmentProvider) ActiveEnrollmentsOverlapping(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]tuition.EnrollmentInfo, error) {
	var rows []schoolmodel.ClassEnrollmentModel
	err := tx.WithContext(ctx).
		Where("class_enrollment_status = ?", schoolmodel.EnrollmentActive).
		Where("class_enrollment_start_date <= ?", end).
		Where("class_enrollment_end_date IS NULL OR class_enrollment_end_date >= ?", start).
		Order("class_enrollment_created_at ASC, class_enrollment_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]tuition.EnrollmentInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, tuition.EnrollmentInfo{
			EnrollmentID: r.ClassEnrollmentID,
			StudentID:    r.ClassEnrollmentStudentID,
			StudentName:  r.ClassEnrollmentStudentNameCache,
			ParentName:   r.ClassEnrollmentParentNameCache,
			ParentPhone:  r.ClassEnrollmentParentPhoneCache,
			ClassID:      r.ClassEnrollmentClassID,
			DiscountIDR:  r.ClassEnrollmentDiscountIDR,
		})
	}
	return out, nil
}

/* ===================== ClassCatalog ===================== */

type GormClassCatalog struct{}

func (GormClassCatalog) ClassByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*tuition.ClassInfo, error) {
	var c schoolmodel.ClassModel
	if err := tx.WithContext(ctx).First(&c, "class_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tuition.ClassInfo{
		ClassID:           c.ClassID,
		ClassName:         c.ClassName,
		TuitionFeeIDR:     c.ClassTuitionFeeIDR,
		VATRatePercent:    c.ClassVATRatePercent,
		SessionsPerPeriod: c.ClassSessionsPerPeriod,
	}, nil
}

/* ===================== AttendanceProvider ===================== */

type GormAttendanceProvider struct{}

func (GormAttendanceProvider) ExcusedAbsences(ctx context.Context, tx *gorm.DB, start, end time.Time, studentIDs []uuid.UUID) ([]tuition.ExcusedAbsence, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []schoolmodel.StudentAttendanceModel
	err := tx.WithContext(ctx).
		Where("student_attendance_status = ?", schoolmodel.AttendanceExcused).
		Where("student_attendance_reconciled_at IS NULL").
		Where("student_attendance_date >= ? AND student_attendance_date <= ?", start, end).
		Where("student_attendance_student_id IN ?", studentIDs).
		Order("student_attendance_date ASC, student_attendance_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]tuition.ExcusedAbsence, 0, len(rows))
	for _, r := range rows {
		name, err := studentName(tx, r.StudentAttendanceStudentID)
		if err != nil {
			return nil, err
		}
		out = append(out, tuition.ExcusedAbsence{
			AttendanceID: r.StudentAttendanceID,
			StudentID:    r.StudentAttendanceStudentID,
			StudentName:  name,
			ClassID:      r.StudentAttendanceClassID,
			Date:         r.StudentAttendanceDate,
		})
	}
	return out, nil
}

// MarkReconciled men-set reconciled_at dengan guard: kalau ada record
// yang SUDAH reconciled (atau hilang), refund kedua tertolak dan
// seluruh transaksi EXECUTE di atasnya ikut rollback.
func (GormAttendanceProvider) MarkReconciled(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	res := tx.WithContext(ctx).Model(&schoolmodel.StudentAttendanceModel{}).
		Where("student_attendance_id IN ?", ids).
		Where("student_attendance_reconciled_at IS NULL").
		Update("student_attendance_reconciled_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		// cari pelakunya untuk pesan error yang jelas
		var already []uuid.UUID
		if err := tx.WithContext(ctx).Model(&schoolmodel.StudentAttendanceModel{}).
			Where("student_attendance_id IN ?", ids).
			Where("student_attendance_reconciled_at IS NOT NULL AND student_attendance_reconciled_at < ?", now).
			Pluck("student_attendance_id", &already).Error; err == nil && len(already) > 0 {
			return &tuition.DuplicateReconcileError{AttendanceID: already[0]}
		}
		return errors.New("some attendance records could not be marked reconciled")
	}
	return nil
}

/* ===================== PayerResolver ===================== */

// PhonePayerResolver: murid yang share nomor WA ortu = satu payer.
// Murid tanpa nomor ortu jadi payer sendiri atas nama muridnya.
type PhonePayerResolver struct{}

func (PhonePayerResolver) GroupByPayer(enrollments []tuition.EnrollmentInfo) []tuition.PayerGroup {
	type bucket struct {
		name     string
		phone    *string
		students []uuid.UUID
		seen     map[uuid.UUID]bool
	}
	byKey := map[string]*bucket{}
	order := []string{}

	for _, e := range enrollments {
		key := "student:" + e.StudentID.String()
		name := e.StudentName
		var phone *string
		if e.ParentPhone != nil && *e.ParentPhone != "" {
			key = "phone:" + *e.ParentPhone
			phone = e.ParentPhone
			if e.ParentName != nil && *e.ParentName != "" {
				name = *e.ParentName
			}
		}
		b, ok := byKey[key]
		if !ok {
			b = &bucket{name: name, phone: phone, seen: map[uuid.UUID]bool{}}
			byKey[key] = b
			order = append(order, key)
		}
		if !b.seen[e.StudentID] {
			b.seen[e.StudentID] = true
			b.students = append(b.students, e.StudentID)
		}
	}

	out := make([]tuition.PayerGroup, 0, len(order))
	for _, key := range order {
		b := byKey[key]
		sort.Slice(b.students, func(i, j int) bool {
			return b.students[i].String() < b.students[j].String()
		})
		out = append(out, tuition.PayerGroup{
			PayerName:  b.name,
			PayerPhone: b.phone,
			StudentIDs: b.students,
		})
	}
	return out
}

/* ===================== internal ===================== */

func studentName(tx *gorm.DB, id uuid.UUID) (string, error) {
	var s schoolmodel.StudentModel
	if err := tx.First(&s, "student_id = ?", id).Error; err != nil {
		return "", err
	}
	return s.StudentName, nil
}
