// file: internals/features/school/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/school/model"
)

////////////////////////////////////////////////////////////////////////////////
// CLASS ENROLLMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type EnrollmentCreateDTO struct {
	ClassEnrollmentStudentID uuid.UUID `json:"class_enrollment_student_id" validate:"required"`
	ClassEnrollmentClassID   uuid.UUID `json:"class_enrollment_class_id" validate:"required"`

	ClassEnrollmentStartDate time.Time `json:"class_enrollment_start_date" validate:"required"`

	ClassEnrollmentDiscountIDR int64 `json:"class_enrollment_discount_idr" validate:"min=0"`
}

// EnrollmentEndDTO mengakhiri keikutsertaan (status → ended).
type EnrollmentEndDTO struct {
	ClassEnrollmentEndDate time.Time `json:"class_enrollment_end_date" validate:"required"`
}

type EnrollmentResponse struct {
	ClassEnrollmentID uuid.UUID `json:"class_enrollment_id"`

	ClassEnrollmentStudentID uuid.UUID `json:"class_enrollment_student_id"`
	ClassEnrollmentClassID   uuid.UUID `json:"class_enrollment_class_id"`

	ClassEnrollmentStatus model.EnrollmentStatus `json:"class_enrollment_status"`

	ClassEnrollmentStartDate time.Time  `json:"class_enrollment_start_date"`
	ClassEnrollmentEndDate   *time.Time `json:"class_enrollment_end_date,omitempty"`

	ClassEnrollmentDiscountIDR int64 `json:"class_enrollment_discount_idr"`

	ClassEnrollmentStudentNameCache string  `json:"class_enrollment_student_name_cache"`
	ClassEnrollmentClassNameCache   string  `json:"class_enrollment_class_name_cache"`
	ClassEnrollmentParentNameCache  *string `json:"class_enrollment_parent_name_cache,omitempty"`
	ClassEnrollmentParentPhoneCache *string `json:"class_enrollment_parent_phone_cache,omitempty"`

	ClassEnrollmentCreatedAt time.Time `json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt time.Time `json:"class_enrollment_updated_at"`
}

func ToEnrollmentResponse(m model.ClassEnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		ClassEnrollmentID: m.ClassEnrollmentID,

		ClassEnrollmentStudentID: m.ClassEnrollmentStudentID,
		ClassEnrollmentClassID:   m.ClassEnrollmentClassID,

		ClassEnrollmentStatus: m.ClassEnrollmentStatus,

		ClassEnrollmentStartDate: m.ClassEnrollmentStartDate,
		ClassEnrollmentEndDate:   m.ClassEnrollmentEndDate,

		ClassEnrollmentDiscountIDR: m.ClassEnrollmentDiscountIDR,

		ClassEnrollmentStudentNameCache: m.ClassEnrollmentStudentNameCache,
		ClassEnrollmentClassNameCache:   m.ClassEnrollmentClassNameCache,
		ClassEnrollmentParentNameCache:  m.ClassEnrollmentParentNameCache,
		ClassEnrollmentParentPhoneCache: m.ClassEnrollmentParentPhoneCache,

		ClassEnrollmentCreatedAt: m.ClassEnrollmentCreatedAt,
		ClassEnrollmentUpdatedAt: m.ClassEnrollmentUpdatedAt,
	}
}

func ToEnrollmentResponses(ms []model.ClassEnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToEnrollmentResponse(m))
	}
	return out
}
