// file: internals/features/finance/tuition/model/student_wallet_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   Model: student_wallets — saldo berjalan per murid.
   Positif = kredit (refund/overpayment) yang bisa dipotong
   ke tagihan berikutnya; negatif = hutang terbawa.
   Dibuat lazily oleh billing generator / reconciliation.
====================================================== */

type StudentWalletModel struct {
	StudentWalletID        uuid.UUID `gorm:"column:student_wallet_id;type:uuid;primaryKey" json:"student_wallet_id"`
	StudentWalletStudentID uuid.UUID `gorm:"column:student_wallet_student_id;type:uuid;not null;uniqueIndex" json:"student_wallet_student_id"`

	StudentWalletBalanceIDR int64 `gorm:"column:student_wallet_balance_idr;not null;default:0" json:"student_wallet_balance_idr"`

	StudentWalletCreatedAt time.Time      `gorm:"column:student_wallet_created_at;not null;autoCreateTime" json:"student_wallet_created_at"`
	StudentWalletUpdatedAt time.Time      `gorm:"column:student_wallet_updated_at;not null;autoUpdateTime" json:"student_wallet_updated_at"`
	StudentWalletDeletedAt gorm.DeletedAt `gorm:"column:student_wallet_deleted_at;index" json:"-"`
}

func (StudentWalletModel) TableName() string { return "student_wallets" }

func (m *StudentWalletModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentWalletID == uuid.Nil {
		m.StudentWalletID = uuid.New()
	}
	return nil
}

func (m *StudentWalletModel) HasCredit() bool { return m.StudentWalletBalanceIDR > 0 }
