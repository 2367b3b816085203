// file: internals/features/school/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/school/model"
)

////////////////////////////////////////////////////////////////////////////////
// STUDENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type StudentCreateDTO struct {
	StudentName string  `json:"student_name" validate:"required,max=120"`
	StudentCode *string `json:"student_code,omitempty" validate:"omitempty,max=50"`

	StudentParentName  *string `json:"student_parent_name,omitempty" validate:"omitempty,max=120"`
	StudentParentPhone *string `json:"student_parent_phone,omitempty" validate:"omitempty,max=32"`
}

func (d *StudentCreateDTO) ToModel() model.StudentModel {
	return model.StudentModel{
		StudentName:        d.StudentName,
		StudentCode:        d.StudentCode,
		StudentParentName:  d.StudentParentName,
		StudentParentPhone: d.StudentParentPhone,
	}
}

type StudentUpdateDTO struct {
	StudentName *string `json:"student_name,omitempty" validate:"omitempty,max=120"`
	StudentCode *string `json:"student_code,omitempty" validate:"omitempty,max=50"`

	StudentParentName  *string `json:"student_parent_name,omitempty" validate:"omitempty,max=120"`
	StudentParentPhone *string `json:"student_parent_phone,omitempty" validate:"omitempty,max=32"`
}

func (d *StudentUpdateDTO) ApplyToModel(m *model.StudentModel) {
	if d.StudentName != nil {
		m.StudentName = *d.StudentName
	}
	if d.StudentCode != nil {
		m.StudentCode = d.StudentCode
	}
	if d.StudentParentName != nil {
		m.StudentParentName = d.StudentParentName
	}
	if d.StudentParentPhone != nil {
		m.StudentParentPhone = d.StudentParentPhone
	}
}

type StudentResponse struct {
	StudentID uuid.UUID `json:"student_id"`

	StudentName string  `json:"student_name"`
	StudentCode *string `json:"student_code,omitempty"`

	StudentParentName  *string `json:"student_parent_name,omitempty"`
	StudentParentPhone *string `json:"student_parent_phone,omitempty"`

	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func ToStudentResponse(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID: m.StudentID,

		StudentName: m.StudentName,
		StudentCode: m.StudentCode,

		StudentParentName:  m.StudentParentName,
		StudentParentPhone: m.StudentParentPhone,

		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
}

func ToStudentResponses(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStudentResponse(m))
	}
	return out
}
