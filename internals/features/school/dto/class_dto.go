// file: internals/features/school/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lesgo_backend/internals/features/school/model"
)

////////////////////////////////////////////////////////////////////////////////
// CLASSES — DTO
////////////////////////////////////////////////////////////////////////////////

type ClassCreateDTO struct {
	ClassName string  `json:"class_name" validate:"required,max=160"`
	ClassSlug *string `json:"class_slug,omitempty" validate:"omitempty,max=160"`

	ClassTuitionFeeIDR     int64   `json:"class_tuition_fee_idr" validate:"min=0"`
	ClassVATRatePercent    float64 `json:"class_vat_rate_percent" validate:"min=0,max=100"`
	ClassSessionsPerPeriod *int    `json:"class_sessions_per_period,omitempty" validate:"omitempty,min=1"`

	ClassSchedule datatypes.JSON `json:"class_schedule,omitempty"`
}

func (d *ClassCreateDTO) ToModel() model.ClassModel {
	sessions := 8
	if d.ClassSessionsPerPeriod != nil {
		sessions = *d.ClassSessionsPerPeriod
	}
	return model.ClassModel{
		ClassName:              d.ClassName,
		ClassSlug:              d.ClassSlug,
		ClassTuitionFeeIDR:     d.ClassTuitionFeeIDR,
		ClassVATRatePercent:    d.ClassVATRatePercent,
		ClassSessionsPerPeriod: sessions,
		ClassSchedule:          d.ClassSchedule,
	}
}

type ClassUpdateDTO struct {
	ClassName *string `json:"class_name,omitempty" validate:"omitempty,max=160"`
	ClassSlug *string `json:"class_slug,omitempty" validate:"omitempty,max=160"`

	ClassTuitionFeeIDR     *int64   `json:"class_tuition_fee_idr,omitempty" validate:"omitempty,min=0"`
	ClassVATRatePercent    *float64 `json:"class_vat_rate_percent,omitempty" validate:"omitempty,min=0,max=100"`
	ClassSessionsPerPeriod *int     `json:"class_sessions_per_period,omitempty" validate:"omitempty,min=1"`

	ClassSchedule datatypes.JSON `json:"class_schedule,omitempty"`
}

// ApplyToModel menimpa field yang dikirim saja (partial update).
func (d *ClassUpdateDTO) ApplyToModel(m *model.ClassModel) {
	if d.ClassName != nil {
		m.ClassName = *d.ClassName
	}
	if d.ClassSlug != nil {
		m.ClassSlug = d.ClassSlug
	}
	if d.ClassTuitionFeeIDR != nil {
		m.ClassTuitionFeeIDR = *d.ClassTuitionFeeIDR
	}
	if d.ClassVATRatePercent != nil {
		m.ClassVATRatePercent = *d.ClassVATRatePercent
	}
	if d.ClassSessionsPerPeriod != nil {
		m.ClassSessionsPerPeriod = *d.ClassSessionsPerPeriod
	}
	if len(d.ClassSchedule) > 0 {
		m.ClassSchedule = d.ClassSchedule
	}
}

type ClassResponse struct {
	ClassID uuid.UUID `json:"class_id"`

	ClassName string  `json:"class_name"`
	ClassSlug *string `json:"class_slug,omitempty"`

	ClassTuitionFeeIDR     int64   `json:"class_tuition_fee_idr"`
	ClassVATRatePercent    float64 `json:"class_vat_rate_percent"`
	ClassSessionsPerPeriod int     `json:"class_sessions_per_period"`

	ClassSchedule datatypes.JSON `json:"class_schedule,omitempty"`

	ClassCreatedAt time.Time `json:"class_created_at"`
	ClassUpdatedAt time.Time `json:"class_updated_at"`
}

func ToClassResponse(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID: m.ClassID,

		ClassName: m.ClassName,
		ClassSlug: m.ClassSlug,

		ClassTuitionFeeIDR:     m.ClassTuitionFeeIDR,
		ClassVATRatePercent:    m.ClassVATRatePercent,
		ClassSessionsPerPeriod: m.ClassSessionsPerPeriod,

		ClassSchedule: m.ClassSchedule,

		ClassCreatedAt: m.ClassCreatedAt,
		ClassUpdatedAt: m.ClassUpdatedAt,
	}
}

func ToClassResponses(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassResponse(m))
	}
	return out
}
