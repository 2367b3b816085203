// file: internals/features/finance/tuition/model/order_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: order_item_type
====================================================== */

type OrderItemType string

const (
	OrderItemTypeTuition    OrderItemType = "tuition"
	OrderItemTypeMaterial   OrderItemType = "material"
	OrderItemTypeAdjustment OrderItemType = "adjustment"
)

/* ======================================================
   Model: order_items — satu baris tagihan
   (satu murid × satu kelas × satu periode)

   VAT amount, total line, remaining, fully-paid: semuanya
   DERIVED (service/money.go), tidak disimpan. Yang disimpan
   hanya amount, vat rate, dan paid amount kumulatif.
====================================================== */

type OrderItemModel struct {
	OrderItemID      uuid.UUID `gorm:"column:order_item_id;type:uuid;primaryKey" json:"order_item_id"`
	OrderItemOrderID uuid.UUID `gorm:"column:order_item_order_id;type:uuid;not null;index" json:"order_item_order_id"`

	OrderItemStudentID       uuid.UUID  `gorm:"column:order_item_student_id;type:uuid;not null;index" json:"order_item_student_id"`
	OrderItemClassID         *uuid.UUID `gorm:"column:order_item_class_id;type:uuid" json:"order_item_class_id,omitempty"`
	OrderItemTuitionPeriodID *uuid.UUID `gorm:"column:order_item_tuition_period_id;type:uuid;index" json:"order_item_tuition_period_id,omitempty"`

	OrderItemType OrderItemType `gorm:"column:order_item_type;type:varchar(20);not null" json:"order_item_type"`

	// Label untuk tampilan & pesan error alokasi
	OrderItemLabel string `gorm:"column:order_item_label;type:varchar(160);not null" json:"order_item_label"`

	// Pre-tax; boleh negatif untuk adjustment (credit line)
	OrderItemAmountIDR      int64   `gorm:"column:order_item_amount_idr;not null" json:"order_item_amount_idr"`
	OrderItemVATRatePercent float64 `gorm:"column:order_item_vat_rate_percent;not null;default:0" json:"order_item_vat_rate_percent"`

	// Kumulatif alokasi; hanya Transaction Recorder yang boleh menaikkan
	OrderItemPaidAmountIDR int64 `gorm:"column:order_item_paid_amount_idr;not null;default:0;check:order_item_paid_amount_idr >= 0" json:"order_item_paid_amount_idr"`

	// Snapshot diskon enrollment yang sudah dipotong dari amount (informasional)
	OrderItemDiscountIDR int64 `gorm:"column:order_item_discount_idr;not null;default:0" json:"order_item_discount_idr"`

	OrderItemCreatedAt time.Time      `gorm:"column:order_item_created_at;not null;autoCreateTime" json:"order_item_created_at"`
	OrderItemUpdatedAt time.Time      `gorm:"column:order_item_updated_at;not null;autoUpdateTime" json:"order_item_updated_at"`
	OrderItemDeletedAt gorm.DeletedAt `gorm:"column:order_item_deleted_at;index" json:"-"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (m *OrderItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.OrderItemID == uuid.Nil {
		m.OrderItemID = uuid.New()
	}
	return nil
}
