// file: internals/features/school/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: enrollment_status
====================================================== */

type EnrollmentStatus string

const (
	EnrollmentActive EnrollmentStatus = "active"
	EnrollmentEnded  EnrollmentStatus = "ended"
)

/* ======================================================
   Model: class_enrollments — keikutsertaan murid di kelas.
   Diskon per-enrollment dipotong dari base fee saat billing.
====================================================== */

type ClassEnrollmentModel struct {
	ClassEnrollmentID uuid.UUID `gorm:"column:class_enrollment_id;type:uuid;primaryKey" json:"class_enrollment_id"`

	ClassEnrollmentStudentID uuid.UUID `gorm:"column:class_enrollment_student_id;type:uuid;not null;index" json:"class_enrollment_student_id"`
	ClassEnrollmentClassID   uuid.UUID `gorm:"column:class_enrollment_class_id;type:uuid;not null;index" json:"class_enrollment_class_id"`

	ClassEnrollmentStatus EnrollmentStatus `gorm:"column:class_enrollment_status;type:varchar(20);not null;default:'active'" json:"class_enrollment_status"`

	ClassEnrollmentStartDate time.Time  `gorm:"column:class_enrollment_start_date;not null" json:"class_enrollment_start_date"`
	ClassEnrollmentEndDate   *time.Time `gorm:"column:class_enrollment_end_date" json:"class_enrollment_end_date,omitempty"`

	ClassEnrollmentDiscountIDR int64 `gorm:"column:class_enrollment_discount_idr;not null;default:0;check:class_enrollment_discount_idr >= 0" json:"class_enrollment_discount_idr"`

	// ===== Caches (snapshot dari students saat enroll) =====
	ClassEnrollmentStudentNameCache string  `gorm:"column:class_enrollment_student_name_cache;type:varchar(120)" json:"class_enrollment_student_name_cache"`
	ClassEnrollmentClassNameCache   string  `gorm:"column:class_enrollment_class_name_cache;type:varchar(160)" json:"class_enrollment_class_name_cache"`
	ClassEnrollmentParentNameCache  *string `gorm:"column:class_enrollment_parent_name_cache;type:varchar(120)" json:"class_enrollment_parent_name_cache,omitempty"`
	ClassEnrollmentParentPhoneCache *string `gorm:"column:class_enrollment_parent_phone_cache;type:varchar(32)" json:"class_enrollment_parent_phone_cache,omitempty"`

	ClassEnrollmentCreatedAt time.Time      `gorm:"column:class_enrollment_created_at;not null;autoCreateTime" json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt time.Time      `gorm:"column:class_enrollment_updated_at;not null;autoUpdateTime" json:"class_enrollment_updated_at"`
	ClassEnrollmentDeletedAt gorm.DeletedAt `gorm:"column:class_enrollment_deleted_at;index" json:"-"`
}

func (ClassEnrollmentModel) TableName() string { return "class_enrollments" }

func (m *ClassEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassEnrollmentID == uuid.Nil {
		m.ClassEnrollmentID = uuid.New()
	}
	if m.ClassEnrollmentStatus == "" {
		m.ClassEnrollmentStatus = EnrollmentActive
	}
	return nil
}

// OverlapsRange melaporkan apakah enrollment aktif beririsan dengan [start, end].
func (m *ClassEnrollmentModel) OverlapsRange(start, end time.Time) bool {
	if m.ClassEnrollmentStartDate.After(end) {
		return false
	}
	if m.ClassEnrollmentEndDate != nil && m.ClassEnrollmentEndDate.Before(start) {
		return false
	}
	return true
}
