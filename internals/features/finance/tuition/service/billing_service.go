// file: internals/features/finance/tuition/service/billing_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   BillingService — Billing Generator.

   generate(periodID, PREVIEW)  → hitung breakdown, NOL write,
                                  idempotent, boleh dipanggil terus
   generate(periodID, COMMIT)   → hitungan yang sama + persist
                                  order/items, debit wallet, dan
                                  flip CREATED→ACTIVE kalau ada
                                  order yang terbentuk

   Scope per run: hanya murid yang BELUM punya item TUITION
   untuk periode ini (key: student_id + tuition_period_id),
   supaya re-billing periode ACTIVE (mis. enrollment susulan)
   tidak menduplikasi invoice.
====================================================== */

type Mode string

const (
	ModePreview Mode = "preview"
	ModeCommit  Mode = "commit"
	ModeExecute Mode = "execute"
)

type BillingService struct {
	DB          *gorm.DB
	Enrollments EnrollmentProvider
	Catalog     ClassCatalog
	Payers      PayerResolver
	Policy      BillingPolicy
}

func NewBillingService(db *gorm.DB, enr EnrollmentProvider, cat ClassCatalog, payers PayerResolver, pol BillingPolicy) *BillingService {
	return &BillingService{DB: db, Enrollments: enr, Catalog: cat, Payers: payers, Policy: pol}
}

type BillingLine struct {
	EnrollmentID   uuid.UUID `json:"enrollment_id"`
	StudentID      uuid.UUID `json:"student_id"`
	StudentName    string    `json:"student_name"`
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	Label          string    `json:"label"`
	AmountIDR      int64     `json:"amount_idr"` // fee − diskon enrollment, clamp ≥ 0
	DiscountIDR    int64     `json:"discount_idr"`
	VATRatePercent float64   `json:"vat_rate_percent"`
	VATAmountIDR   int64     `json:"vat_amount_idr"`
	TotalIDR       int64     `json:"total_idr"`
}

type BillingDetail struct {
	PayerName          string       `json:"payer_name"`
	PayerPhone         *string      `json:"payer_phone,omitempty"`
	StudentNames       []string     `json:"student_names"`
	Lines              []BillingLine `json:"lines"`
	SubTotalIDR        int64        `json:"sub_total_idr"`
	TaxTotalIDR        int64        `json:"tax_total_idr"`
	WalletDeductionIDR int64        `json:"wallet_deduction_idr"`
	FinalAmountIDR     int64        `json:"final_amount_idr"`
	Notes              []string     `json:"notes,omitempty"`
	OrderID            *uuid.UUID   `json:"order_id,omitempty"` // terisi hanya setelah COMMIT
}

type BillingRunResult struct {
	PeriodID            uuid.UUID       `json:"period_id"`
	Mode                Mode            `json:"mode"`
	OrdersCreated       int             `json:"orders_created"`
	ItemsCreated        int             `json:"items_created"`
	TotalFinalAmountIDR int64           `json:"total_final_amount_idr"`
	Details             []BillingDetail `json:"details"`
}

func (s *BillingService) Generate(ctx context.Context, periodID uuid.UUID, mode Mode) (*BillingRunResult, error) {
	if mode == ModePreview {
		// Read-only: tanpa lock, isolasi read-committed cukup.
		period, err := s.loadPeriod(ctx, s.DB, periodID)
		if err != nil {
			return nil, err
		}
		return s.compute(ctx, s.DB, period, ModePreview)
	}

	var out *BillingRunResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period, err := lockPeriod(tx, periodID)
		if err != nil {
			return err
		}
		if period.IsClosed() {
			return &InvalidPeriodStateError{PeriodID: periodID, Status: period.TuitionPeriodStatus, Op: "generate billing"}
		}
		res, err := s.compute(ctx, tx, period, ModeCommit)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, tx, period, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== internal ===================== */

func (s *BillingService) loadPeriod(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.TuitionPeriodModel, error) {
	var m model.TuitionPeriodModel
	if err := db.WithContext(ctx).First(&m, "tuition_period_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}
	if m.IsClosed() {
		return nil, &InvalidPeriodStateError{PeriodID: id, Status: m.TuitionPeriodStatus, Op: "generate billing"}
	}
	return &m, nil
}

// billedStudentIDs: murid yang sudah punya item TUITION periode ini
// di order yang tidak cancelled — kunci de-duplikasi billing run.
func (s *BillingService) billedStudentIDs(tx *gorm.DB, periodID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := tx.Model(&model.OrderItemModel{}).
		Joins("JOIN orders ON orders.order_id = order_items.order_item_order_id AND orders.order_canceled_at IS NULL AND orders.order_deleted_at IS NULL").
		Where("order_item_tuition_period_id = ? AND order_item_type = ?", periodID, model.OrderItemTypeTuition).
		Pluck("order_item_student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (s *BillingService) compute(ctx context.Context, tx *gorm.DB, period *model.TuitionPeriodModel, mode Mode) (*BillingRunResult, error) {
	res := &BillingRunResult{PeriodID: period.TuitionPeriodID, Mode: mode, Details: []BillingDetail{}}

	enrollments, err := s.Enrollments.ActiveEnrollmentsOverlapping(ctx, tx,
		period.TuitionPeriodStartDate, period.TuitionPeriodEndDate)
	if err != nil {
		return nil, err
	}

	billed, err := s.billedStudentIDs(tx, period.TuitionPeriodID)
	if err != nil {
		return nil, err
	}
	fresh := enrollments[:0:0]
	for _, e := range enrollments {
		if !billed[e.StudentID] {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) == 0 {
		return res, nil
	}

	classCache := map[uuid.UUID]*ClassInfo{}
	classInfo := func(id uuid.UUID) (*ClassInfo, error) {
		if c, ok := classCache[id]; ok {
			return c, nil
		}
		c, err := s.Catalog.ClassByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		classCache[id] = c
		return c, nil
	}

	enrollByStudent := map[uuid.UUID][]EnrollmentInfo{}
	nameByStudent := map[uuid.UUID]string{}
	for _, e := range fresh {
		enrollByStudent[e.StudentID] = append(enrollByStudent[e.StudentID], e)
		nameByStudent[e.StudentID] = e.StudentName
	}

	for _, group := range s.Payers.GroupByPayer(fresh) {
		d := BillingDetail{
			PayerName:  group.PayerName,
			PayerPhone: group.PayerPhone,
		}
		for _, sid := range group.StudentIDs {
			d.StudentNames = append(d.StudentNames, nameByStudent[sid])
			for _, e := range enrollByStudent[sid] {
				info, err := classInfo(e.ClassID)
				if err != nil {
					return nil, err
				}
				amount := info.TuitionFeeIDR - e.DiscountIDR
				if amount < 0 {
					amount = 0
					d.Notes = append(d.Notes,
						fmt.Sprintf("diskon %s melebihi biaya kelas %s, line di-clamp ke 0", e.StudentName, info.ClassName))
				}
				vat := ItemVATAmountIDR(amount, info.VATRatePercent)
				d.Lines = append(d.Lines, BillingLine{
					EnrollmentID:   e.EnrollmentID,
					StudentID:      e.StudentID,
					StudentName:    e.StudentName,
					ClassID:        info.ClassID,
					ClassName:      info.ClassName,
					Label:          fmt.Sprintf("SPP %s — %s (%s)", period.TuitionPeriodName, e.StudentName, info.ClassName),
					AmountIDR:      amount,
					DiscountIDR:    e.DiscountIDR,
					VATRatePercent: info.VATRatePercent,
					VATAmountIDR:   vat,
					TotalIDR:       amount + vat,
				})
				d.SubTotalIDR += amount
				d.TaxTotalIDR += vat
			}
		}

		provisional := d.SubTotalIDR + d.TaxTotalIDR
		if provisional <= 0 {
			// payer tanpa tagihan → tidak ada order
			continue
		}

		// Wallet netting: hanya saldo POSITIF yang dipotong. Hutang
		// terbawa (saldo negatif) terlihat di catatan tapi tidak
		// dipaksa tertagih di sini.
		remaining := provisional
		for _, sid := range group.StudentIDs {
			if remaining <= 0 {
				break
			}
			bal, err := s.walletBalance(tx, sid)
			if err != nil {
				return nil, err
			}
			if bal <= 0 {
				if bal < 0 {
					d.Notes = append(d.Notes,
						fmt.Sprintf("%s punya hutang wallet %d (tidak otomatis ditagih)", nameByStudent[sid], -bal))
				}
				continue
			}
			use := bal
			if use > remaining {
				use = remaining
			}
			d.WalletDeductionIDR += use
			remaining -= use
			d.Notes = append(d.Notes,
				fmt.Sprintf("potongan saldo wallet %s: %d", nameByStudent[sid], use))
		}

		d.FinalAmountIDR = provisional - d.WalletDeductionIDR
		if d.FinalAmountIDR < 0 {
			// tidak seharusnya terjadi (deduksi ≤ provisional), tapi clamp + catat
			d.Notes = append(d.Notes, "final amount di-clamp ke 0")
			d.FinalAmountIDR = 0
		}

		res.ItemsCreated += len(d.Lines)
		res.TotalFinalAmountIDR += d.FinalAmountIDR
		res.Details = append(res.Details, d)
	}
	res.OrdersCreated = len(res.Details)
	return res, nil
}

// persist menulis hasil hitungan COMMIT: order + items per payer,
// debit wallet, dan flip CREATED→ACTIVE kalau ordersCreated > 0.
func (s *BillingService) persist(ctx context.Context, tx *gorm.DB, period *model.TuitionPeriodModel, res *BillingRunResult) error {
	periodID := period.TuitionPeriodID
	for i := range res.Details {
		d := &res.Details[i]
		order := model.OrderModel{
			OrderTuitionPeriodID:  &periodID,
			OrderPayerName:        d.PayerName,
			OrderPayerPhone:       d.PayerPhone,
			OrderDiscountTotalIDR: d.WalletDeductionIDR,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		d.OrderID = &order.OrderID
		for _, ln := range d.Lines {
			classID := ln.ClassID
			item := model.OrderItemModel{
				OrderItemOrderID:         order.OrderID,
				OrderItemStudentID:       ln.StudentID,
				OrderItemClassID:         &classID,
				OrderItemTuitionPeriodID: &periodID,
				OrderItemType:            model.OrderItemTypeTuition,
				OrderItemLabel:           ln.Label,
				OrderItemAmountIDR:       ln.AmountIDR,
				OrderItemVATRatePercent:  ln.VATRatePercent,
				OrderItemDiscountIDR:     ln.DiscountIDR,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		// Debit wallet sesuai hitungan preview yang sama
		remaining := d.WalletDeductionIDR
		for _, ln := range d.Lines {
			if remaining <= 0 {
				break
			}
			used, err := s.debitWallet(tx, ln.StudentID, remaining)
			if err != nil {
				return err
			}
			remaining -= used
		}
	}

	if res.OrdersCreated > 0 && period.IsCreated() {
		now := time.Now()
		if err := tx.Model(&model.TuitionPeriodModel{}).
			Where("tuition_period_id = ?", periodID).
			Updates(map[string]any{
				"tuition_period_status":       model.TuitionPeriodActive,
				"tuition_period_activated_at": &now,
			}).Error; err != nil {
			return err
		}
		period.TuitionPeriodStatus = model.TuitionPeriodActive
	}
	return nil
}

func (s *BillingService) walletBalance(tx *gorm.DB, studentID uuid.UUID) (int64, error) {
	var w model.StudentWalletModel
	err := tx.First(&w, "student_wallet_student_id = ?", studentID).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return w.StudentWalletBalanceIDR, nil
}

// debitWallet memotong saldo positif sampai maksimum maxIDR,
// return jumlah yang benar-benar terpakai.
func (s *BillingService) debitWallet(tx *gorm.DB, studentID uuid.UUID, maxIDR int64) (int64, error) {
	var w model.StudentWalletModel
	err := withRowLock(tx).First(&w, "student_wallet_student_id = ?", studentID).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if w.StudentWalletBalanceIDR <= 0 {
		return 0, nil
	}
	use := w.StudentWalletBalanceIDR
	if use > maxIDR {
		use = maxIDR
	}
	if err := tx.Model(&model.StudentWalletModel{}).
		Where("student_wallet_id = ?", w.StudentWalletID).
		Update("student_wallet_balance_idr", gorm.Expr("student_wallet_balance_idr - ?", use)).Error; err != nil {
		return 0, err
	}
	return use, nil
}
