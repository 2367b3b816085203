// file: internals/features/finance/tuition/dto/tuition_period_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/finance/tuition/model"
)

////////////////////////////////////////////////////////////////////////////////
// TUITION PERIODS — DTO
////////////////////////////////////////////////////////////////////////////////

// Create: status tidak bisa diset dari luar — selalu lahir CREATED.
type TuitionPeriodCreateDTO struct {
	TuitionPeriodName  string `json:"tuition_period_name" validate:"required,max=120"`
	TuitionPeriodMonth int16  `json:"tuition_period_month" validate:"required,min=1,max=12"`
	TuitionPeriodYear  int16  `json:"tuition_period_year" validate:"required,min=2000,max=2100"`

	TuitionPeriodStartDate time.Time `json:"tuition_period_start_date" validate:"required"`
	TuitionPeriodEndDate   time.Time `json:"tuition_period_end_date" validate:"required"`
}

// Update (partial): hanya saat CREATED; service yang menjaga gate-nya.
type TuitionPeriodUpdateDTO struct {
	TuitionPeriodName      *string    `json:"tuition_period_name,omitempty" validate:"omitempty,max=120"`
	TuitionPeriodStartDate *time.Time `json:"tuition_period_start_date,omitempty"`
	TuitionPeriodEndDate   *time.Time `json:"tuition_period_end_date,omitempty"`
}

type TuitionPeriodResponse struct {
	TuitionPeriodID uuid.UUID `json:"tuition_period_id"`

	TuitionPeriodName  string `json:"tuition_period_name"`
	TuitionPeriodMonth int16  `json:"tuition_period_month"`
	TuitionPeriodYear  int16  `json:"tuition_period_year"`

	TuitionPeriodStartDate time.Time `json:"tuition_period_start_date"`
	TuitionPeriodEndDate   time.Time `json:"tuition_period_end_date"`

	TuitionPeriodStatus      model.TuitionPeriodStatus `json:"tuition_period_status"`
	TuitionPeriodActivatedAt *time.Time                `json:"tuition_period_activated_at,omitempty"`
	TuitionPeriodClosedAt    *time.Time                `json:"tuition_period_closed_at,omitempty"`

	TuitionPeriodCreatedAt time.Time `json:"tuition_period_created_at"`
	TuitionPeriodUpdatedAt time.Time `json:"tuition_period_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToTuitionPeriodResponse(m model.TuitionPeriodModel) TuitionPeriodResponse {
	return TuitionPeriodResponse{
		TuitionPeriodID: m.TuitionPeriodID,

		TuitionPeriodName:  m.TuitionPeriodName,
		TuitionPeriodMonth: m.TuitionPeriodMonth,
		TuitionPeriodYear:  m.TuitionPeriodYear,

		TuitionPeriodStartDate: m.TuitionPeriodStartDate,
		TuitionPeriodEndDate:   m.TuitionPeriodEndDate,

		TuitionPeriodStatus:      m.TuitionPeriodStatus,
		TuitionPeriodActivatedAt: m.TuitionPeriodActivatedAt,
		TuitionPeriodClosedAt:    m.TuitionPeriodClosedAt,

		TuitionPeriodCreatedAt: m.TuitionPeriodCreatedAt,
		TuitionPeriodUpdatedAt: m.TuitionPeriodUpdatedAt,
	}
}

func ToTuitionPeriodResponses(ms []model.TuitionPeriodModel) []TuitionPeriodResponse {
	out := make([]TuitionPeriodResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTuitionPeriodResponse(m))
	}
	return out
}
