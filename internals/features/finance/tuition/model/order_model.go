// file: internals/features/finance/tuition/model/order_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: order_status (DERIVED — tidak pernah disimpan)

   Yang disimpan hanya fakta: order_canceled_at + paid amounts
   per item. Status dihitung ulang setiap dibaca lewat
   service.DeriveOrderStatus supaya tidak ada drift.
====================================================== */

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPartial  OrderStatus = "partial"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "cancelled"
)

/* ======================================================
   Model: orders — satu invoice untuk satu payer
====================================================== */

type OrderModel struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey" json:"order_id"`

	// Periode asal (denormalized dari item TUITION pertama; manual order boleh nil)
	OrderTuitionPeriodID *uuid.UUID `gorm:"column:order_tuition_period_id;type:uuid;index" json:"order_tuition_period_id,omitempty"`

	// Identitas payer (snapshot — tidak ikut berubah kalau data ortu diedit)
	OrderPayerName  string  `gorm:"column:order_payer_name;type:varchar(120);not null" json:"order_payer_name"`
	OrderPayerPhone *string `gorm:"column:order_payer_phone;type:varchar(32)" json:"order_payer_phone,omitempty"`

	// Satu-satunya komponen non-derived dari finalAmount:
	// potongan level order (dipakai billing generator untuk wallet netting).
	OrderDiscountTotalIDR int64 `gorm:"column:order_discount_total_idr;not null;default:0" json:"order_discount_total_idr"`

	// Fakta pembatalan (eksplisit, bukan derived)
	OrderCanceledAt *time.Time `gorm:"column:order_canceled_at" json:"order_canceled_at,omitempty"`

	OrderNote *string        `gorm:"column:order_note" json:"order_note,omitempty"`
	OrderMeta datatypes.JSON `gorm:"column:order_meta" json:"order_meta,omitempty"`

	OrderCreatedAt time.Time      `gorm:"column:order_created_at;not null;autoCreateTime" json:"order_created_at"`
	OrderUpdatedAt time.Time      `gorm:"column:order_updated_at;not null;autoUpdateTime" json:"order_updated_at"`
	OrderDeletedAt gorm.DeletedAt `gorm:"column:order_deleted_at;index" json:"-"`
}

func (OrderModel) TableName() string { return "orders" }

func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.OrderID == uuid.Nil {
		m.OrderID = uuid.New()
	}
	return nil
}

func (m *OrderModel) IsCanceled() bool { return m.OrderCanceledAt != nil }
