// file: internals/features/finance/tuition/service/order_service.go
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
   OrderService — read accessors + manual order creation
   + cancel. Order yang sudah paid tidak pernah dihapus.
====================================================== */

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// OrderView: aggregate + angka turunan, dihitung saat dibaca.
type OrderView struct {
	Order  model.OrderModel       `json:"order"`
	Items  []model.OrderItemModel `json:"items"`
	Totals OrderTotals            `json:"totals"`
	Status model.OrderStatus      `json:"status"`
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	var order model.OrderModel
	if err := s.DB.WithContext(ctx).First(&order, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	var items []model.OrderItemModel
	if err := s.DB.WithContext(ctx).
		Where("order_item_order_id = ?", id).
		Order("order_item_created_at ASC, order_item_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	totals := ComputeOrderTotals(order, items)
	return &OrderView{
		Order:  order,
		Items:  items,
		Totals: totals,
		Status: DeriveOrderStatus(order.IsCanceled(), totals.TotalPaidIDR, totals.FinalAmountIDR),
	}, nil
}

type ListOrdersFilter struct {
	PeriodID  *uuid.UUID
	StudentID *uuid.UUID
	Limit     int
	Offset    int
}

func (s *OrderService) List(ctx context.Context, f ListOrdersFilter) ([]OrderView, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.OrderModel{})
	if f.PeriodID != nil {
		q = q.Where("order_tuition_period_id = ?", *f.PeriodID)
	}
	if f.StudentID != nil {
		q = q.Where("order_id IN (?)",
			s.DB.Model(&model.OrderItemModel{}).
				Select("order_item_order_id").
				Where("order_item_student_id = ?", *f.StudentID))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []model.OrderModel
	if err := q.Order("order_created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		var items []model.OrderItemModel
		if err := s.DB.WithContext(ctx).
			Where("order_item_order_id = ?", o.OrderID).
			Order("order_item_created_at ASC, order_item_id ASC").
			Find(&items).Error; err != nil {
			return nil, 0, err
		}
		totals := ComputeOrderTotals(o, items)
		views = append(views, OrderView{
			Order:  o,
			Items:  items,
			Totals: totals,
			Status: DeriveOrderStatus(o.IsCanceled(), totals.TotalPaidIDR, totals.FinalAmountIDR),
		})
	}
	return views, total, nil
}

// NewOrderItemInput: varian create eksplisit (bukan DTO optional-field
// ganda) — semua field wajib kecuali yang memang opsional.
type NewOrderItemInput struct {
	StudentID       uuid.UUID
	ClassID         *uuid.UUID
	TuitionPeriodID *uuid.UUID
	Type            model.OrderItemType
	Label           string
	AmountIDR       int64 // boleh negatif hanya untuk adjustment
	VATRatePercent  float64
}

type CreateOrderInput struct {
	TuitionPeriodID *uuid.UUID
	PayerName       string
	PayerPhone      *string
	Note            *string
	Items           []NewOrderItemInput
}

// CreateManual membuat order manual (material fee, adjustment, tagihan
// tuition tambahan) di luar billing generator.
func (s *OrderService) CreateManual(ctx context.Context, in CreateOrderInput) (*OrderView, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range in.Items {
		if it.AmountIDR < 0 && it.Type != model.OrderItemTypeAdjustment {
			return nil, ErrNegativeAmount
		}
	}
	var orderID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := model.OrderModel{
			OrderTuitionPeriodID: in.TuitionPeriodID,
			OrderPayerName:       in.PayerName,
			OrderPayerPhone:      in.PayerPhone,
			OrderNote:            in.Note,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.OrderID
		for _, it := range in.Items {
			row := model.OrderItemModel{
				OrderItemOrderID:         order.OrderID,
				OrderItemStudentID:       it.StudentID,
				OrderItemClassID:         it.ClassID,
				OrderItemTuitionPeriodID: it.TuitionPeriodID,
				OrderItemType:            it.Type,
				OrderItemLabel:           it.Label,
				OrderItemAmountIDR:       it.AmountIDR,
				OrderItemVATRatePercent:  it.VATRatePercent,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// Cancel menandai order cancelled (fakta eksplisit; status turunan
// selanjutnya selalu "cancelled"). Order dengan pembayaran tercatat
// tidak bisa dibatalkan — koreksinya lewat adjustment, bukan edit sejarah.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.OrderModel
		if err := withRowLock(tx).First(&order, "order_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsCanceled() {
			return ErrOrderCanceled
		}
		var paid int64
		if err := tx.Model(&model.OrderItemModel{}).
			Where("order_item_order_id = ?", id).
			Select("COALESCE(SUM(order_item_paid_amount_idr), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}
		if paid > 0 {
			return ErrOrderHasPayments
		}
		now := time.Now()
		return tx.Model(&model.OrderModel{}).
			Where("order_id = ?", id).
			Update("order_canceled_at", &now).Error
	})
}
