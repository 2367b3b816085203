// file: internals/features/school/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: attendance_status
   "excused" = izin — satu-satunya status yang menghasilkan
   refund saat rekonsiliasi akhir periode.
====================================================== */

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

/* ======================================================
   Model: student_attendances
====================================================== */

type StudentAttendanceModel struct {
	StudentAttendanceID uuid.UUID `gorm:"column:student_attendance_id;type:uuid;primaryKey" json:"student_attendance_id"`

	StudentAttendanceStudentID uuid.UUID `gorm:"column:student_attendance_student_id;type:uuid;not null;index" json:"student_attendance_student_id"`
	StudentAttendanceClassID   uuid.UUID `gorm:"column:student_attendance_class_id;type:uuid;not null;index" json:"student_attendance_class_id"`

	StudentAttendanceDate   time.Time        `gorm:"column:student_attendance_date;not null;index" json:"student_attendance_date"`
	StudentAttendanceStatus AttendanceStatus `gorm:"column:student_attendance_status;type:varchar(16);not null" json:"student_attendance_status"`

	StudentAttendanceNote *string `gorm:"column:student_attendance_note" json:"student_attendance_note,omitempty"`

	// Guard idempotensi refund: sekali di-set oleh reconciliation EXECUTE,
	// record ini tidak boleh menghasilkan refund kedua.
	StudentAttendanceReconciledAt *time.Time `gorm:"column:student_attendance_reconciled_at;index" json:"student_attendance_reconciled_at,omitempty"`

	StudentAttendanceCreatedAt time.Time      `gorm:"column:student_attendance_created_at;not null;autoCreateTime" json:"student_attendance_created_at"`
	StudentAttendanceUpdatedAt time.Time      `gorm:"column:student_attendance_updated_at;not null;autoUpdateTime" json:"student_attendance_updated_at"`
	StudentAttendanceDeletedAt gorm.DeletedAt `gorm:"column:student_attendance_deleted_at;index" json:"-"`
}

func (StudentAttendanceModel) TableName() string { return "student_attendances" }

func (m *StudentAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentAttendanceID == uuid.Nil {
		m.StudentAttendanceID = uuid.New()
	}
	return nil
}

func (m *StudentAttendanceModel) IsExcused() bool {
	return m.StudentAttendanceStatus == AttendanceExcused
}

func (m *StudentAttendanceModel) IsReconciled() bool {
	return m.StudentAttendanceReconciledAt != nil
}
