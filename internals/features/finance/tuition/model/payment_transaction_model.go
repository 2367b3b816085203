// file: internals/features/finance/tuition/model/payment_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: payment_method
====================================================== */

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

func IsValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodBankTransfer
}

/* ======================================================
   Model: payment_transactions — audit record IMMUTABLE.
   Koreksi = transaksi baru, tidak pernah edit historis.
====================================================== */

type PaymentTransactionModel struct {
	PaymentTransactionID      uuid.UUID `gorm:"column:payment_transaction_id;type:uuid;primaryKey" json:"payment_transaction_id"`
	PaymentTransactionOrderID uuid.UUID `gorm:"column:payment_transaction_order_id;type:uuid;not null;index" json:"payment_transaction_order_id"`

	// Selalu = Σ alokasi yang benar-benar diterapkan
	PaymentTransactionAmountIDR int64  `gorm:"column:payment_transaction_amount_idr;not null;check:payment_transaction_amount_idr > 0" json:"payment_transaction_amount_idr"`
	PaymentTransactionMethod    string `gorm:"column:payment_transaction_method;type:varchar(20);not null" json:"payment_transaction_method"`

	// Bukti bayar (URL slip transfer di OSS, atau reference dari gateway)
	PaymentTransactionEvidenceURL *string `gorm:"column:payment_transaction_evidence_url;type:varchar(255)" json:"payment_transaction_evidence_url,omitempty"`

	PaymentTransactionPaidAt time.Time      `gorm:"column:payment_transaction_paid_at;not null" json:"payment_transaction_paid_at"`
	PaymentTransactionMeta   datatypes.JSON `gorm:"column:payment_transaction_meta" json:"payment_transaction_meta,omitempty"`

	PaymentTransactionCreatedAt time.Time `gorm:"column:payment_transaction_created_at;not null;autoCreateTime" json:"payment_transaction_created_at"`
}

func (PaymentTransactionModel) TableName() string { return "payment_transactions" }

func (m *PaymentTransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentTransactionID == uuid.Nil {
		m.PaymentTransactionID = uuid.New()
	}
	if m.PaymentTransactionPaidAt.IsZero() {
		m.PaymentTransactionPaidAt = time.Now()
	}
	return nil
}

/* ======================================================
   Model: payment_allocations — resolved allocation set,
   satu baris per {order_item, amount} yang diterapkan.
====================================================== */

type PaymentAllocationModel struct {
	PaymentAllocationID            uuid.UUID `gorm:"column:payment_allocation_id;type:uuid;primaryKey" json:"payment_allocation_id"`
	PaymentAllocationTransactionID uuid.UUID `gorm:"column:payment_allocation_transaction_id;type:uuid;not null;index" json:"payment_allocation_transaction_id"`
	PaymentAllocationOrderItemID   uuid.UUID `gorm:"column:payment_allocation_order_item_id;type:uuid;not null;index" json:"payment_allocation_order_item_id"`

	PaymentAllocationAmountIDR int64 `gorm:"column:payment_allocation_amount_idr;not null;check:payment_allocation_amount_idr > 0" json:"payment_allocation_amount_idr"`

	PaymentAllocationCreatedAt time.Time `gorm:"column:payment_allocation_created_at;not null;autoCreateTime" json:"payment_allocation_created_at"`
}

func (PaymentAllocationModel) TableName() string { return "payment_allocations" }

func (m *PaymentAllocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentAllocationID == uuid.Nil {
		m.PaymentAllocationID = uuid.New()
	}
	return nil
}
