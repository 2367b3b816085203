// file: internals/features/finance/tuition/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS — DTO
////////////////////////////////////////////////////////////////////////////////

type PaymentAllocationDTO struct {
	OrderItemID uuid.UUID `json:"order_item_id" validate:"required"`
	AmountIDR   int64     `json:"amount_idr" validate:"required,gt=0"`
}

// RecordPaymentDTO:
// - allocations kosong → AUTO (oldest-debt-first), total_amount_idr wajib
// - allocations terisi → MANUAL, total transaksi = Σ alokasi dan
//   total_amount_idr diabaikan
type RecordPaymentDTO struct {
	TotalAmountIDR int64  `json:"total_amount_idr" validate:"omitempty,gt=0"`
	Method         string `json:"method" validate:"required,oneof=cash bank_transfer"`

	PaidAt      *time.Time             `json:"paid_at,omitempty"`
	Allocations []PaymentAllocationDTO `json:"allocations,omitempty" validate:"omitempty,dive"`
}

func (d *RecordPaymentDTO) ToInput(orderID uuid.UUID, evidenceURL *string) service.RecordPaymentInput {
	allocs := make([]service.AllocationLine, 0, len(d.Allocations))
	for _, a := range d.Allocations {
		allocs = append(allocs, service.AllocationLine{
			OrderItemID: a.OrderItemID,
			AmountIDR:   a.AmountIDR,
		})
	}
	return service.RecordPaymentInput{
		OrderID:     orderID,
		TotalAmount: d.TotalAmountIDR,
		Method:      d.Method,
		EvidenceURL: evidenceURL,
		Allocations: allocs,
		PaidAt:      d.PaidAt,
	}
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type PaymentTransactionResponse struct {
	PaymentTransactionID      uuid.UUID `json:"payment_transaction_id"`
	PaymentTransactionOrderID uuid.UUID `json:"payment_transaction_order_id"`

	PaymentTransactionAmountIDR   int64   `json:"payment_transaction_amount_idr"`
	PaymentTransactionMethod      string  `json:"payment_transaction_method"`
	PaymentTransactionEvidenceURL *string `json:"payment_transaction_evidence_url,omitempty"`

	PaymentTransactionPaidAt time.Time      `json:"payment_transaction_paid_at"`
	PaymentTransactionMeta   datatypes.JSON `json:"payment_transaction_meta,omitempty"`

	PaymentTransactionCreatedAt time.Time `json:"payment_transaction_created_at"`
}

type PaymentAllocationResponse struct {
	PaymentAllocationID          uuid.UUID `json:"payment_allocation_id"`
	PaymentAllocationOrderItemID uuid.UUID `json:"payment_allocation_order_item_id"`
	PaymentAllocationAmountIDR   int64     `json:"payment_allocation_amount_idr"`
}

// RecordPaymentResponse: transaksi + alokasi final + posisi order terbaru.
type RecordPaymentResponse struct {
	Transaction PaymentTransactionResponse  `json:"transaction"`
	Allocations []PaymentAllocationResponse `json:"allocations"`

	OrderStatus         model.OrderStatus `json:"order_status"`
	OrderFinalAmountIDR int64             `json:"order_final_amount_idr"`
	OrderTotalPaidIDR   int64             `json:"order_total_paid_idr"`
	OrderRemainingIDR   int64             `json:"order_remaining_idr"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToPaymentTransactionResponse(m model.PaymentTransactionModel) PaymentTransactionResponse {
	return PaymentTransactionResponse{
		PaymentTransactionID:      m.PaymentTransactionID,
		PaymentTransactionOrderID: m.PaymentTransactionOrderID,

		PaymentTransactionAmountIDR:   m.PaymentTransactionAmountIDR,
		PaymentTransactionMethod:      m.PaymentTransactionMethod,
		PaymentTransactionEvidenceURL: m.PaymentTransactionEvidenceURL,

		PaymentTransactionPaidAt: m.PaymentTransactionPaidAt,
		PaymentTransactionMeta:   m.PaymentTransactionMeta,

		PaymentTransactionCreatedAt: m.PaymentTransactionCreatedAt,
	}
}

func ToPaymentTransactionResponses(ms []model.PaymentTransactionModel) []PaymentTransactionResponse {
	out := make([]PaymentTransactionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentTransactionResponse(m))
	}
	return out
}

func ToPaymentAllocationResponses(ms []model.PaymentAllocationModel) []PaymentAllocationResponse {
	out := make([]PaymentAllocationResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, PaymentAllocationResponse{
			PaymentAllocationID:          m.PaymentAllocationID,
			PaymentAllocationOrderItemID: m.PaymentAllocationOrderItemID,
			PaymentAllocationAmountIDR:   m.PaymentAllocationAmountIDR,
		})
	}
	return out
}

func ToRecordPaymentResponse(r service.RecordPaymentResult) RecordPaymentResponse {
	return RecordPaymentResponse{
		Transaction: ToPaymentTransactionResponse(r.Transaction),
		Allocations: ToPaymentAllocationResponses(r.Allocations),

		OrderStatus:         r.Status,
		OrderFinalAmountIDR: r.Totals.FinalAmountIDR,
		OrderTotalPaidIDR:   r.Totals.TotalPaidIDR,
		OrderRemainingIDR:   r.Totals.FinalAmountIDR - r.Totals.TotalPaidIDR,
	}
}
