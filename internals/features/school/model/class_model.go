// file: internals/features/school/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   Model: classes — katalog kelas bimbel.
   Base fee + VAT rate + expected sessions per periode
   dipakai billing generator & reconciliation (session rate).
====================================================== */

type ClassModel struct {
	ClassID uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`

	ClassName string  `gorm:"column:class_name;type:varchar(160);not null" json:"class_name"`
	ClassSlug *string `gorm:"column:class_slug;type:varchar(160);uniqueIndex" json:"class_slug,omitempty"`

	ClassTuitionFeeIDR     int64   `gorm:"column:class_tuition_fee_idr;not null;default:0;check:class_tuition_fee_idr >= 0" json:"class_tuition_fee_idr"`
	ClassVATRatePercent    float64 `gorm:"column:class_vat_rate_percent;not null;default:0" json:"class_vat_rate_percent"`
	ClassSessionsPerPeriod int     `gorm:"column:class_sessions_per_period;not null;default:8" json:"class_sessions_per_period"`

	// Jadwal mingguan (JSON array, informasional)
	ClassSchedule datatypes.JSON `gorm:"column:class_schedule" json:"class_schedule,omitempty"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"-"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
