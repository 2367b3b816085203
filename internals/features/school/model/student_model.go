// file: internals/features/school/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: students — registry murid.
   Kontak ortu dipakai payer resolver untuk grouping invoice
   (murid kakak-adik dengan nomor WA ortu sama = satu payer).
====================================================== */

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	StudentName string  `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentCode *string `gorm:"column:student_code;type:varchar(50);uniqueIndex" json:"student_code,omitempty"`

	StudentParentName  *string `gorm:"column:student_parent_name;type:varchar(120)" json:"student_parent_name,omitempty"`
	StudentParentPhone *string `gorm:"column:student_parent_phone;type:varchar(32);index" json:"student_parent_phone,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
