// file: internals/features/finance/tuition/service/money.go
package service

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lesgo_backend/internals/features/finance/tuition/model"
)

/* ======================================================
   Money / allocation primitives — PURE.

   Semua angka turunan (VAT, total line, remaining, status
   order) dihitung di sini dari field ledger yang disimpan,
   tidak pernah dipersist, supaya tidak ada drift antara
   kolom denormalized dan kenyataan.

   Uang disimpan sebagai integer IDR; decimal hanya dipakai
   sebagai intermediate untuk pembagian/persentase, dibulatkan
   half-up ke rupiah utuh.
====================================================== */

var dec100 = decimal.NewFromInt(100)

// ItemVATAmountIDR = amount × vatRate/100, dibulatkan half-up.
func ItemVATAmountIDR(amountIDR int64, vatRatePercent float64) int64 {
	if vatRatePercent == 0 {
		return 0
	}
	return decimal.NewFromInt(amountIDR).
		Mul(decimal.NewFromFloat(vatRatePercent)).
		Div(dec100).
		Round(0).
		IntPart()
}

// ItemTotalIDR = amount + vat (total line yang harus dibayar).
func ItemTotalIDR(it model.OrderItemModel) int64 {
	return it.OrderItemAmountIDR + ItemVATAmountIDR(it.OrderItemAmountIDR, it.OrderItemVATRatePercent)
}

// ItemRemainingIDR = total − paid. Boleh transien negatif saat DIBACA
// kalau invariant dilanggar di tempat lain; penjagaan ada di write time
// (ApplyPayment), bukan di sini.
func ItemRemainingIDR(it model.OrderItemModel) int64 {
	return ItemTotalIDR(it) - it.OrderItemPaidAmountIDR
}

func ItemFullyPaid(it model.OrderItemModel) bool {
	return ItemRemainingIDR(it) <= 0
}

// ApplyPayment: SATU-SATUNYA jalan masuk uang ke sebuah line.
// Auto maupun manual allocation sama-sama lewat sini.
func ApplyPayment(it *model.OrderItemModel, amountIDR int64) error {
	if amountIDR <= 0 {
		return ErrAmountNotPositive
	}
	if remaining := ItemRemainingIDR(*it); amountIDR > remaining {
		return &OverpaymentError{
			OrderItemID:  it.OrderItemID,
			ItemLabel:    it.OrderItemLabel,
			RemainingIDR: remaining,
			RequestedIDR: amountIDR,
		}
	}
	it.OrderItemPaidAmountIDR += amountIDR
	return nil
}

/* ======================================================
   Order aggregate derivations
====================================================== */

type OrderTotals struct {
	SubTotalIDR      int64 `json:"sub_total_idr"`
	TaxTotalIDR      int64 `json:"tax_total_idr"`
	DiscountTotalIDR int64 `json:"discount_total_idr"`
	FinalAmountIDR   int64 `json:"final_amount_idr"`
	TotalPaidIDR     int64 `json:"total_paid_idr"`
}

// ComputeOrderTotals menurunkan seluruh angka aggregate dari items.
// finalAmount = subTotal + taxTotal − discountTotal.
func ComputeOrderTotals(o model.OrderModel, items []model.OrderItemModel) OrderTotals {
	t := OrderTotals{DiscountTotalIDR: o.OrderDiscountTotalIDR}
	for _, it := range items {
		t.SubTotalIDR += it.OrderItemAmountIDR
		t.TaxTotalIDR += ItemVATAmountIDR(it.OrderItemAmountIDR, it.OrderItemVATRatePercent)
		t.TotalPaidIDR += it.OrderItemPaidAmountIDR
	}
	t.FinalAmountIDR = t.SubTotalIDR + t.TaxTotalIDR - t.DiscountTotalIDR
	return t
}

// DeriveOrderStatus: cancelled menang; lalu paid ≥ final → paid;
// paid > 0 → partial; selain itu pending.
func DeriveOrderStatus(canceled bool, totalPaidIDR, finalAmountIDR int64) model.OrderStatus {
	switch {
	case canceled:
		return model.OrderStatusCanceled
	case totalPaidIDR >= finalAmountIDR:
		return model.OrderStatusPaid
	case totalPaidIDR > 0:
		return model.OrderStatusPartial
	default:
		return model.OrderStatusPending
	}
}

/* ======================================================
   Allocation
====================================================== */

type AllocationLine struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	AmountIDR   int64     `json:"amount_idr"`
}

// SortItemsOldestFirst mengurutkan items hutang-tertua-dulu:
// created_at naik, tie-break id supaya stabil.
func SortItemsOldestFirst(items []model.OrderItemModel) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.OrderItemCreatedAt.Equal(b.OrderItemCreatedAt) {
			return a.OrderItemCreatedAt.Before(b.OrderItemCreatedAt)
		}
		return a.OrderItemID.String() < b.OrderItemID.String()
	})
}

// AutoAllocate membagi amountIDR ke items secara greedy oldest-first:
// per item ambil min(remaining, sisa), berhenti saat sisa habis.
// Kalau amount melebihi total sisa hutang → AllocationExceedsDebtError;
// kebijakan: jangan pernah overpay order, jangan drop surplus diam-diam.
// items diasumsikan sudah terurut (SortItemsOldestFirst / ORDER BY query).
func AutoAllocate(orderID uuid.UUID, items []model.OrderItemModel, amountIDR int64) ([]AllocationLine, error) {
	if amountIDR <= 0 {
		return nil, ErrAmountNotPositive
	}
	left := amountIDR
	out := make([]AllocationLine, 0, len(items))
	var outstanding int64
	for _, it := range items {
		remaining := ItemRemainingIDR(it)
		if remaining <= 0 {
			continue
		}
		outstanding += remaining
		if left <= 0 {
			continue
		}
		take := remaining
		if left < take {
			take = left
		}
		out = append(out, AllocationLine{OrderItemID: it.OrderItemID, AmountIDR: take})
		left -= take
	}
	if left > 0 {
		return nil, &AllocationExceedsDebtError{
			OrderID:        orderID,
			RequestedIDR:   amountIDR,
			OutstandingIDR: outstanding,
		}
	}
	return out, nil
}

// ValidateManualAllocations memeriksa set alokasi caller tanpa memutasi
// apa pun: item harus milik order, amount positif, dan tidak melebihi
// remaining per item (alokasi ganda ke item yang sama dijumlahkan).
// Return total alokasi; all-or-nothing — satu gagal, semua ditolak.
func ValidateManualAllocations(orderID uuid.UUID, items []model.OrderItemModel, allocs []AllocationLine) (int64, error) {
	byID := make(map[uuid.UUID]*model.OrderItemModel, len(items))
	for i := range items {
		byID[items[i].OrderItemID] = &items[i]
	}
	requested := make(map[uuid.UUID]int64, len(allocs))
	var total int64
	for _, a := range allocs {
		if a.AmountIDR <= 0 {
			return 0, ErrAmountNotPositive
		}
		it, ok := byID[a.OrderItemID]
		if !ok {
			return 0, &ItemNotFoundError{OrderID: orderID, OrderItemID: a.OrderItemID}
		}
		requested[a.OrderItemID] += a.AmountIDR
		if remaining := ItemRemainingIDR(*it); requested[a.OrderItemID] > remaining {
			return 0, &OverpaymentError{
				OrderItemID:  it.OrderItemID,
				ItemLabel:    it.OrderItemLabel,
				RemainingIDR: remaining,
				RequestedIDR: requested[a.OrderItemID],
			}
		}
		total += a.AmountIDR
	}
	if total <= 0 {
		return 0, ErrAmountNotPositive
	}
	return total, nil
}
