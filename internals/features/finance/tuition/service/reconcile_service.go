// file: internals/features/finance/tuition/service/reconcile_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   ReconcileService — Reconciliation Engine.

   Tutup buku periode: absen IZIN dalam window periode →
   refund per sesi → kredit wallet murid → periode CLOSED.

   PREVIEW: hitung saja, nol side effect.
   EXECUTE: kredit wallet + tandai attendance reconciled
   (guard dobel-refund) + flip ACTIVE→CLOSED, SEMUA dalam
   satu transaksi — periode setengah-tertutup adalah bug
   correctness, bukan partial state yang bisa di-retry.
====================================================== */

type ReconcileService struct {
	DB         *gorm.DB
	Attendance AttendanceProvider
	Catalog    ClassCatalog
	Policy     BillingPolicy
}

func NewReconcileService(db *gorm.DB, att AttendanceProvider, cat ClassCatalog, pol BillingPolicy) *ReconcileService {
	return &ReconcileService{DB: db, Attendance: att, Catalog: cat, Policy: pol}
}

type StudentRefund struct {
	StudentID       uuid.UUID `json:"student_id"`
	StudentName     string    `json:"student_name"`
	RefundIDR       int64     `json:"refund_idr"`
	AttendanceCount int       `json:"attendance_count"`
	BilledIDR       int64     `json:"billed_idr"` // konteks: total tagihan tuition murid ini di periode
}

type ReconcileResult struct {
	PeriodID       uuid.UUID       `json:"period_id"`
	Mode           Mode            `json:"mode"`
	TotalRefundIDR int64           `json:"total_refund_idr"`
	Students       []StudentRefund `json:"students"`
	Executed       bool            `json:"executed"`

	attendanceIDs []uuid.UUID // record yang dikonsumsi; dipakai EXECUTE untuk mark reconciled
}

func (s *ReconcileService) Reconcile(ctx context.Context, periodID uuid.UUID, mode Mode) (*ReconcileResult, error) {
	if mode == ModePreview {
		period, err := s.loadActivePeriod(ctx, s.DB, periodID)
		if err != nil {
			return nil, err
		}
		return s.compute(ctx, s.DB, period, ModePreview)
	}

	var out *ReconcileResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := lockPeriod(tx, periodID)
		if err != nil {
			return err
		}
		if !period.IsActive() {
			return &InvalidPeriodStateError{PeriodID: periodID, Status: period.TuitionPeriodStatus, Op: "reconcile"}
		}
		// Lock seluruh order periode ini: rekonsiliasi membaca apa yang
		// sudah ditagih, jadi harus saling eksklusif dengan recordPayment
		// konkuren terhadap order-order periode yang sama.
		var orderIDs []uuid.UUID
		if err := withRowLock(tx).Model(&model.OrderModel{}).
			Where("order_tuition_period_id = ?", periodID).
			Pluck("order_id", &orderIDs).Error; err != nil {
			return err
		}

		res, err := s.compute(ctx, tx, period, ModeExecute)
		if err != nil {
			return err
		}

		// Kredit wallet per murid
		for _, r := range res.Students {
			if err := s.creditWallet(tx, r.StudentID, r.RefundIDR); err != nil {
				return err
			}
		}

		// Guard idempotensi: provider WAJIB gagal kalau ada record
		// yang sudah reconciled → seluruh EXECUTE rollback.
		if len(res.attendanceIDs) > 0 {
			if err := s.Attendance.MarkReconciled(ctx, tx, res.attendanceIDs); err != nil {
				return err
			}
		}

		now := time.Now()
		if err := tx.Model(&model.TuitionPeriodModel{}).
			Where("tuition_period_id = ?", periodID).
			Updates(map[string]any{
				"tuition_period_status":    model.TuitionPeriodClosed,
				"tuition_period_closed_at": &now,
			}).Error; err != nil {
			return err
		}

		res.Executed = true
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== internal ===================== */

func (s *ReconcileService) loadActivePeriod(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.TuitionPeriodModel, error) {
	var m model.TuitionPeriodModel
	if err := db.WithContext(ctx).First(&m, "tuition_period_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	if !m.IsActive() {
		return nil, &InvalidPeriodStateError{PeriodID: id, Status: m.TuitionPeriodStatus, Op: "reconcile"}
	}
	return &m, nil
}

// billedTuition: populasi murid periode (yang kena tagihan tuition)
// + total tagihannya, dari order aggregate.
func (s *ReconcileService) billedTuition(tx *gorm.DB, periodID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []model.OrderItemModel
	if err := tx.
		Joins("JOIN orders ON orders.order_id = order_items.order_item_order_id AND orders.order_canceled_at IS NULL AND orders.order_deleted_at IS NULL").
		Where("order_item_tuition_period_id = ? AND order_item_type = ?", periodID, model.OrderItemTypeTuition).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, it := range rows {
		out[it.OrderItemStudentID] += ItemTotalIDR(it)
	}
	return out, nil
}

func (s *ReconcileService) absencesFor(ctx context.Context, tx *gorm.DB, period *model.TuitionPeriodModel) ([]ExcusedAbsence, error) {
	billed, err := s.billedTuition(tx, period.TuitionPeriodID)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]uuid.UUID, 0, len(billed))
	for sid := range billed {
		studentIDs = append(studentIDs, sid)
	}
	if len(studentIDs) == 0 {
		return nil, nil
	}
	return s.Attendance.ExcusedAbsences(ctx, tx,
		period.TuitionPeriodStartDate, period.TuitionPeriodEndDate, studentIDs)
}

func (s *ReconcileService) compute(ctx context.Context, tx *gorm.DB, period *model.TuitionPeriodModel, mode Mode) (*ReconcileResult, error) {
	res := &ReconcileResult{PeriodID: period.TuitionPeriodID, Mode: mode, Students: []StudentRefund{}}

	billed, err := s.billedTuition(tx, period.TuitionPeriodID)
	if err != nil {
		return nil, err
	}
	absences, err := s.absencesFor(ctx, tx, period)
	if err != nil {
		return nil, err
	}
	if len(absences) == 0 {
		return res, nil
	}

	classCache := map[uuid.UUID]*ClassInfo{}
	perStudent := map[uuid.UUID]*StudentRefund{}
	order := []uuid.UUID{}

	for _, a := range absences {
		res.attendanceIDs = append(res.attendanceIDs, a.AttendanceID)
		info, ok := classCache[a.ClassID]
		if !ok {
			info, err = s.Catalog.ClassByID(ctx, tx, a.ClassID)
			if err != nil {
				return nil, err
			}
			classCache[a.ClassID] = info
		}
		rate := s.Policy.SessionRate(*info)

		r, ok := perStudent[a.StudentID]
		if !ok {
			r = &StudentRefund{
				StudentID:   a.StudentID,
				StudentName: a.StudentName,
				BilledIDR:   billed[a.StudentID],
			}
			perStudent[a.StudentID] = r
			order = append(order, a.StudentID)
		}
		r.RefundIDR += rate
		r.AttendanceCount++
		res.TotalRefundIDR += rate
	}

	for _, sid := range order {
		res.Students = append(res.Students, *perStudent[sid])
	}
	return res, nil
}

// creditWallet menambah saldo (buat wallet lazily kalau belum ada).
func (s *ReconcileService) creditWallet(tx *gorm.DB, studentID uuid.UUID, amountIDR int64) error {
	if amountIDR <= 0 {
		return ErrAmountNotPositive
	}
	var w model.StudentWalletModel
	err := withRowLock(tx).First(&w, "student_wallet_student_id = ?", studentID).Error
	if err == gorm.ErrRecordNotFound {
		w = model.StudentWalletModel{
			StudentWalletStudentID:  studentID,
			StudentWalletBalanceIDR: amountIDR,
		}
		return tx.Create(&w).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&model.StudentWalletModel{}).
		Where("student_wallet_id = ?", w.StudentWalletID).
		Update("student_wallet_balance_idr", gorm.Expr("student_wallet_balance_idr + ?", amountIDR)).Error
}
