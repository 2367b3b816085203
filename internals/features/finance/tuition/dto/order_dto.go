// file: internals/features/finance/tuition/dto/order_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

////////////////////////////////////////////////////////////////////////////////
// ORDERS — DTO
//
// Semua angka turunan di response (vat, total, remaining, totals order,
// status) dihitung saat mapping, tidak pernah dibaca dari kolom — ledger
// yang disimpan cuma amount/rate/paid.
////////////////////////////////////////////////////////////////////////////////

type OrderItemCreateDTO struct {
	OrderItemStudentID       uuid.UUID  `json:"order_item_student_id" validate:"required"`
	OrderItemClassID         *uuid.UUID `json:"order_item_class_id,omitempty"`
	OrderItemTuitionPeriodID *uuid.UUID `json:"order_item_tuition_period_id,omitempty"`

	OrderItemType  model.OrderItemType `json:"order_item_type" validate:"required,oneof=tuition material adjustment"`
	OrderItemLabel string              `json:"order_item_label" validate:"required,max=160"`

	// Negatif hanya untuk adjustment (credit line); service yang menolak sisanya.
	OrderItemAmountIDR      int64    `json:"order_item_amount_idr" validate:"required"`
	OrderItemVATRatePercent *float64 `json:"order_item_vat_rate_percent,omitempty" validate:"omitempty,min=0,max=100"`
}

// Create manual order (material fee, adjustment, tagihan susulan) di luar
// billing generator.
type OrderCreateDTO struct {
	OrderTuitionPeriodID *uuid.UUID `json:"order_tuition_period_id,omitempty"`

	OrderPayerName  string  `json:"order_payer_name" validate:"required,max=120"`
	OrderPayerPhone *string `json:"order_payer_phone,omitempty" validate:"omitempty,max=32"`
	OrderNote       *string `json:"order_note,omitempty"`

	Items []OrderItemCreateDTO `json:"items" validate:"required,min=1,dive"`
}

func (d *OrderCreateDTO) ToInput(defaultVATPercent float64) service.CreateOrderInput {
	items := make([]service.NewOrderItemInput, 0, len(d.Items))
	for _, it := range d.Items {
		vat := defaultVATPercent
		if it.OrderItemVATRatePercent != nil {
			vat = *it.OrderItemVATRatePercent
		}
		if it.OrderItemType == model.OrderItemTypeAdjustment {
			// credit line tidak kena pajak lagi
			vat = 0
		}
		items = append(items, service.NewOrderItemInput{
			StudentID:       it.OrderItemStudentID,
			ClassID:         it.OrderItemClassID,
			TuitionPeriodID: it.OrderItemTuitionPeriodID,
			Type:            it.OrderItemType,
			Label:           it.OrderItemLabel,
			AmountIDR:       it.OrderItemAmountIDR,
			VATRatePercent:  vat,
		})
	}
	return service.CreateOrderInput{
		TuitionPeriodID: d.OrderTuitionPeriodID,
		PayerName:       d.OrderPayerName,
		PayerPhone:      d.OrderPayerPhone,
		Note:            d.OrderNote,
		Items:           items,
	}
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type OrderItemResponse struct {
	OrderItemID      uuid.UUID `json:"order_item_id"`
	OrderItemOrderID uuid.UUID `json:"order_item_order_id"`

	OrderItemStudentID       uuid.UUID  `json:"order_item_student_id"`
	OrderItemClassID         *uuid.UUID `json:"order_item_class_id,omitempty"`
	OrderItemTuitionPeriodID *uuid.UUID `json:"order_item_tuition_period_id,omitempty"`

	OrderItemType  model.OrderItemType `json:"order_item_type"`
	OrderItemLabel string              `json:"order_item_label"`

	OrderItemAmountIDR      int64   `json:"order_item_amount_idr"`
	OrderItemVATRatePercent float64 `json:"order_item_vat_rate_percent"`
	OrderItemDiscountIDR    int64   `json:"order_item_discount_idr"`
	OrderItemPaidAmountIDR  int64   `json:"order_item_paid_amount_idr"`

	// derived (read-only)
	OrderItemVATAmountIDR int64 `json:"order_item_vat_amount_idr"`
	OrderItemTotalIDR     int64 `json:"order_item_total_idr"`
	OrderItemRemainingIDR int64 `json:"order_item_remaining_idr"`
	OrderItemFullyPaid    bool  `json:"order_item_fully_paid"`

	OrderItemCreatedAt time.Time `json:"order_item_created_at"`
}

type OrderResponse struct {
	OrderID uuid.UUID `json:"order_id"`

	OrderTuitionPeriodID *uuid.UUID `json:"order_tuition_period_id,omitempty"`

	OrderPayerName  string  `json:"order_payer_name"`
	OrderPayerPhone *string `json:"order_payer_phone,omitempty"`
	OrderNote       *string `json:"order_note,omitempty"`

	OrderCanceledAt *time.Time `json:"order_canceled_at,omitempty"`

	// derived (read-only)
	OrderStatus         model.OrderStatus `json:"order_status"`
	OrderSubTotalIDR    int64             `json:"order_sub_total_idr"`
	OrderTaxTotalIDR    int64             `json:"order_tax_total_idr"`
	OrderDiscountIDR    int64             `json:"order_discount_total_idr"`
	OrderFinalAmountIDR int64             `json:"order_final_amount_idr"`
	OrderTotalPaidIDR   int64             `json:"order_total_paid_idr"`
	OrderRemainingIDR   int64             `json:"order_remaining_idr"`

	Items []OrderItemResponse `json:"items"`

	OrderCreatedAt time.Time `json:"order_created_at"`
	OrderUpdatedAt time.Time `json:"order_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToOrderItemResponse(m model.OrderItemModel) OrderItemResponse {
	vat := service.ItemVATAmountIDR(m.OrderItemAmountIDR, m.OrderItemVATRatePercent)
	total := service.ItemTotalIDR(m)
	return OrderItemResponse{
		OrderItemID:      m.OrderItemID,
		OrderItemOrderID: m.OrderItemOrderID,

		OrderItemStudentID:       m.OrderItemStudentID,
		OrderItemClassID:         m.OrderItemClassID,
		OrderItemTuitionPeriodID: m.OrderItemTuitionPeriodID,

		OrderItemType:  m.OrderItemType,
		OrderItemLabel: m.OrderItemLabel,

		OrderItemAmountIDR:      m.OrderItemAmountIDR,
		OrderItemVATRatePercent: m.OrderItemVATRatePercent,
		OrderItemDiscountIDR:    m.OrderItemDiscountIDR,
		OrderItemPaidAmountIDR:  m.OrderItemPaidAmountIDR,

		OrderItemVATAmountIDR: vat,
		OrderItemTotalIDR:     total,
		OrderItemRemainingIDR: service.ItemRemainingIDR(m),
		OrderItemFullyPaid:    service.ItemFullyPaid(m),

		OrderItemCreatedAt: m.OrderItemCreatedAt,
	}
}

func ToOrderResponse(v service.OrderView) OrderResponse {
	items := make([]OrderItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, ToOrderItemResponse(it))
	}
	return OrderResponse{
		OrderID: v.Order.OrderID,

		OrderTuitionPeriodID: v.Order.OrderTuitionPeriodID,

		OrderPayerName:  v.Order.OrderPayerName,
		OrderPayerPhone: v.Order.OrderPayerPhone,
		OrderNote:       v.Order.OrderNote,

		OrderCanceledAt: v.Order.OrderCanceledAt,

		OrderStatus:         v.Status,
		OrderSubTotalIDR:    v.Totals.SubTotalIDR,
		OrderTaxTotalIDR:    v.Totals.TaxTotalIDR,
		OrderDiscountIDR:    v.Totals.DiscountTotalIDR,
		OrderFinalAmountIDR: v.Totals.FinalAmountIDR,
		OrderTotalPaidIDR:   v.Totals.TotalPaidIDR,
		OrderRemainingIDR:   v.Totals.FinalAmountIDR - v.Totals.TotalPaidIDR,

		Items: items,

		OrderCreatedAt: v.Order.OrderCreatedAt,
		OrderUpdatedAt: v.Order.OrderUpdatedAt,
	}
}

func ToOrderResponses(vs []service.OrderView) []OrderResponse {
	out := make([]OrderResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToOrderResponse(v))
	}
	return out
}
