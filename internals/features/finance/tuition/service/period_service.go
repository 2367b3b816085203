// file: internals/features/finance/tuition/service/period_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   PeriodService — pemilik lifecycle CREATED → ACTIVE → CLOSED.

   Transisi TIDAK pernah dipanggil langsung dari controller:
   - CREATED→ACTIVE hanya side effect billing COMMIT yang
     menghasilkan ≥1 order (billing_service)
   - ACTIVE→CLOSED hanya side effect reconcile EXECUTE
     (reconcile_service)
   CLOSED terminal. "Reopen" super-admin sengaja tidak ada
   di sini sampai semantiknya terdefinisi.
====================================================== */

type PeriodService struct {
	DB *gorm.DB
}

func NewPeriodService(db *gorm.DB) *PeriodService {
	return &PeriodService{DB: db}
}

type CreatePeriodInput struct {
	Name      string
	Month     int16
	Year      int16
	StartDate time.Time
	EndDate   time.Time
}

func (s *PeriodService) Create(ctx context.Context, in CreatePeriodInput) (*model.TuitionPeriodModel, error) {
	if in.StartDate.After(in.EndDate) {
		return nil, ErrInvalidDateRange
	}
	m := model.TuitionPeriodModel{
		TuitionPeriodName:      in.Name,
		TuitionPeriodMonth:     in.Month,
		TuitionPeriodYear:      in.Year,
		TuitionPeriodStartDate: in.StartDate,
		TuitionPeriodEndDate:   in.EndDate,
		TuitionPeriodStatus:    model.TuitionPeriodCreated,
	}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PeriodService) Get(ctx context.Context, id uuid.UUID) (*model.TuitionPeriodModel, error) {
	var m model.TuitionPeriodModel
	if err := s.DB.WithContext(ctx).
		First(&m, "tuition_period_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *PeriodService) List(ctx context.Context, limit, offset int) ([]model.TuitionPeriodModel, int64, error) {
	var (
		rows  []model.TuitionPeriodModel
		total int64
	)
	q := s.DB.WithContext(ctx).Model(&model.TuitionPeriodModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("tuition_period_year DESC, tuition_period_month DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type UpdatePeriodInput struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Update: nama & rentang tanggal hanya boleh diubah saat CREATED.
// Begitu ACTIVE/CLOSED identitas periode beku.
func (s *PeriodService) Update(ctx context.Context, id uuid.UUID, in UpdatePeriodInput) (*model.TuitionPeriodModel, error) {
	var out *model.TuitionPeriodModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockPeriod(tx, id)
		if err != nil {
			return err
		}
		if !m.IsCreated() {
			return &InvalidPeriodStateError{PeriodID: id, Status: m.TuitionPeriodStatus, Op: "update period"}
		}
		if in.Name != nil {
			m.TuitionPeriodName = *in.Name
		}
		if in.StartDate != nil {
			m.TuitionPeriodStartDate = *in.StartDate
		}
		if in.EndDate != nil {
			m.TuitionPeriodEndDate = *in.EndDate
		}
		if m.TuitionPeriodStartDate.After(m.TuitionPeriodEndDate) {
			return ErrInvalidDateRange
		}
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete hanya saat CREATED dan belum punya order sama sekali.
func (s *PeriodService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockPeriod(tx, id)
		if err != nil {
			return err
		}
		if !m.IsCreated() {
			return &InvalidPeriodStateError{PeriodID: id, Status: m.TuitionPeriodStatus, Op: "delete period"}
		}
		var n int64
		if err := tx.Model(&model.OrderModel{}).
			Where("order_tuition_period_id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrPeriodHasOrders
		}
		return tx.Delete(&model.TuitionPeriodModel{}, "tuition_period_id = ?", id).Error
	})
}

/* ===================== internal ===================== */

// lockPeriod mengambil row periode FOR UPDATE. Ini gate serialisasi
// antara generate(COMMIT) dan reconcile(EXECUTE) untuk periode yang sama.
func lockPeriod(tx *gorm.DB, id uuid.UUID) (*model.TuitionPeriodModel, error) {
	var m model.TuitionPeriodModel
	if err := withRowLock(tx).
		First(&m, "tuition_period_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	return &m, nil
}
