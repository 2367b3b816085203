// file: internals/features/finance/tuition/model/tuition_period_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: tuition_period_status
   created → active → closed (satu arah, tidak mundur)
====================================================== */

type TuitionPeriodStatus string

const (
	TuitionPeriodCreated TuitionPeriodStatus = "created"
	TuitionPeriodActive  TuitionPeriodStatus = "active"
	TuitionPeriodClosed  TuitionPeriodStatus = "closed"
)

/* ======================================================
   Model: tuition_periods
====================================================== */

type TuitionPeriodModel struct {
	TuitionPeriodID uuid.UUID `gorm:"column:tuition_period_id;type:uuid;primaryKey" json:"tuition_period_id"`

	TuitionPeriodName  string `gorm:"column:tuition_period_name;type:varchar(120);not null" json:"tuition_period_name"`
	TuitionPeriodMonth int16  `gorm:"column:tuition_period_month;not null" json:"tuition_period_month"`
	TuitionPeriodYear  int16  `gorm:"column:tuition_period_year;not null" json:"tuition_period_year"`

	// Rentang tanggal inklusif [start, end]
	TuitionPeriodStartDate time.Time `gorm:"column:tuition_period_start_date;not null" json:"tuition_period_start_date"`
	TuitionPeriodEndDate   time.Time `gorm:"column:tuition_period_end_date;not null" json:"tuition_period_end_date"`

	TuitionPeriodStatus TuitionPeriodStatus `gorm:"column:tuition_period_status;type:varchar(20);not null;default:'created'" json:"tuition_period_status"`

	// Jejak transisi
	TuitionPeriodActivatedAt *time.Time `gorm:"column:tuition_period_activated_at" json:"tuition_period_activated_at,omitempty"`
	TuitionPeriodClosedAt    *time.Time `gorm:"column:tuition_period_closed_at" json:"tuition_period_closed_at,omitempty"`

	TuitionPeriodCreatedAt time.Time      `gorm:"column:tuition_period_created_at;not null;autoCreateTime" json:"tuition_period_created_at"`
	TuitionPeriodUpdatedAt time.Time      `gorm:"column:tuition_period_updated_at;not null;autoUpdateTime" json:"tuition_period_updated_at"`
	TuitionPeriodDeletedAt gorm.DeletedAt `gorm:"column:tuition_period_deleted_at;index" json:"-"`
}

func (TuitionPeriodModel) TableName() string { return "tuition_periods" }

func (m *TuitionPeriodModel) BeforeCreate(tx *gorm.DB) error {
	if m.TuitionPeriodID == uuid.Nil {
		m.TuitionPeriodID = uuid.New()
	}
	if m.TuitionPeriodStatus == "" {
		m.TuitionPeriodStatus = TuitionPeriodCreated
	}
	return nil
}

/* ===================== Helpers ===================== */

func (m *TuitionPeriodModel) IsCreated() bool { return m.TuitionPeriodStatus == TuitionPeriodCreated }
func (m *TuitionPeriodModel) IsActive() bool  { return m.TuitionPeriodStatus == TuitionPeriodActive }
func (m *TuitionPeriodModel) IsClosed() bool  { return m.TuitionPeriodStatus == TuitionPeriodClosed }

// Contains melaporkan apakah tanggal d jatuh di rentang periode (inklusif).
func (m *TuitionPeriodModel) Contains(d time.Time) bool {
	return !d.Before(m.TuitionPeriodStartDate) && !d.After(m.TuitionPeriodEndDate)
}
