// file: internals/features/finance/tuition/service/wallet_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   WalletService — read accessors + "revert refund".

   Catatan audit: reset saldo TIDAK membalikkan transaksi
   refund asal maupun flag reconciled di attendance, jadi
   sejarah dan saldo bisa desinkron. Perilaku ini disengaja
   dipertahankan apa adanya dan ditandai di DESIGN.md.
====================================================== */

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

func (s *WalletService) ByStudent(ctx context.Context, studentID uuid.UUID) (*model.StudentWalletModel, error) {
	var w model.StudentWalletModel
	if err := s.DB.WithContext(ctx).
		First(&w, "student_wallet_student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (s *WalletService) List(ctx context.Context, limit, offset int) ([]model.StudentWalletModel, int64, error) {
	var (
		rows  []model.StudentWalletModel
		total int64
	)
	q := s.DB.WithContext(ctx).Model(&model.StudentWalletModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("student_wallet_updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ResetToZero: aksi administratif "revert refund" — saldo jadi 0.
func (s *WalletService) ResetToZero(ctx context.Context, studentID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w model.StudentWalletModel
		if err := withRowLock(tx).
			First(&w, "student_wallet_student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}
		return tx.Model(&model.StudentWalletModel{}).
			Where("student_wallet_id = ?", w.StudentWalletID).
			Update("student_wallet_balance_idr", 0).Error
	})
}
