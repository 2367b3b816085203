// file: internals/features/school/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/school/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENT ATTENDANCES — DTO
////////////////////////////////////////////////////////////////////////////////

type AttendanceMarkDTO struct {
	StudentAttendanceStudentID uuid.UUID `json:"student_attendance_student_id" validate:"required"`
	StudentAttendanceClassID   uuid.UUID `json:"student_attendance_class_id" validate:"required"`

	StudentAttendanceDate   time.Time              `json:"student_attendance_date" validate:"required"`
	StudentAttendanceStatus model.AttendanceStatus `json:"student_attendance_status" validate:"required,oneof=present absent late excused"`

	StudentAttendanceNote *string `json:"student_attendance_note,omitempty"`
}

// Bulk mark: satu request = satu sesi kelas (banyak murid sekaligus).
type AttendanceBulkMarkDTO struct {
	Records []AttendanceMarkDTO `json:"records" validate:"required,min=1,dive"`
}

func (d *AttendanceMarkDTO) ToModel() model.StudentAttendanceModel {
	return model.StudentAttendanceModel{
		StudentAttendanceStudentID: d.StudentAttendanceStudentID,
		StudentAttendanceClassID:   d.StudentAttendanceClassID,
		StudentAttendanceDate:      d.StudentAttendanceDate,
		StudentAttendanceStatus:    d.StudentAttendanceStatus,
		StudentAttendanceNote:      d.StudentAttendanceNote,
	}
}

type AttendanceResponse struct {
	StudentAttendanceID uuid.UUID `json:"student_attendance_id"`

	StudentAttendanceStudentID uuid.UUID `json:"student_attendance_student_id"`
	StudentAttendanceClassID   uuid.UUID `json:"student_attendance_class_id"`

	StudentAttendanceDate   time.Time              `json:"student_attendance_date"`
	StudentAttendanceStatus model.AttendanceStatus `json:"student_attendance_status"`

	StudentAttendanceNote         *string    `json:"student_attendance_note,omitempty"`
	StudentAttendanceReconciledAt *time.Time `json:"student_attendance_reconciled_at,omitempty"`

	StudentAttendanceCreatedAt time.Time `json:"student_attendance_created_at"`
}

func ToAttendanceResponse(m model.StudentAttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		StudentAttendanceID: m.StudentAttendanceID,

		StudentAttendanceStudentID: m.StudentAttendanceStudentID,
		StudentAttendanceClassID:   m.StudentAttendanceClassID,

		StudentAttendanceDate:   m.StudentAttendanceDate,
		StudentAttendanceStatus: m.StudentAttendanceStatus,

		StudentAttendanceNote:         m.StudentAttendanceNote,
		StudentAttendanceReconciledAt: m.StudentAttendanceReconciledAt,

		StudentAttendanceCreatedAt: m.StudentAttendanceCreatedAt,
	}
}

func ToAttendanceResponses(ms []model.StudentAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAttendanceResponse(m))
	}
	return out
}
