// file: internals/features/finance/tuition/service/money_test.go
package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

func item(amountIDR int64, vatPercent float64, paidIDR int64) model.OrderItemModel {
	return model.OrderItemModel{
		OrderItemID:             uuid.New(),
		OrderItemLabel:          "test line",
		OrderItemAmountIDR:      amountIDR,
		OrderItemVATRatePercent: vatPercent,
		OrderItemPaidAmountIDR:  paidIDR,
	}
}

func TestItemVATAmountIDR(t *testing.T) {
	assert.Equal(t, int64(0), service.ItemVATAmountIDR(150000, 0))
	assert.Equal(t, int64(16500), service.ItemVATAmountIDR(150000, 11))
	// pembulatan half-up ke rupiah utuh
	assert.Equal(t, int64(1), service.ItemVATAmountIDR(5, 11))      // 0.55 → 1
	assert.Equal(t, int64(0), service.ItemVATAmountIDR(4, 11))      // 0.44 → 0
	assert.Equal(t, int64(111), service.ItemVATAmountIDR(1005, 11)) // 110.55 → 111
}

func TestItemDerivations(t *testing.T) {
	it := item(150000, 11, 100000)
	assert.Equal(t, int64(166500), service.ItemTotalIDR(it))
	assert.Equal(t, int64(66500), service.ItemRemainingIDR(it))
	assert.False(t, service.ItemFullyPaid(it))

	it.OrderItemPaidAmountIDR = 166500
	assert.True(t, service.ItemFullyPaid(it))
}

func TestApplyPayment(t *testing.T) {
	t.Run("menaikkan paid amount", func(t *testing.T) {
		it := item(100000, 0, 0)
		require.NoError(t, service.ApplyPayment(&it, 60000))
		assert.Equal(t, int64(60000), it.OrderItemPaidAmountIDR)
	})

	t.Run("menolak amount tidak positif", func(t *testing.T) {
		it := item(100000, 0, 0)
		assert.ErrorIs(t, service.ApplyPayment(&it, 0), service.ErrAmountNotPositive)
		assert.ErrorIs(t, service.ApplyPayment(&it, -5), service.ErrAmountNotPositive)
	})

	t.Run("menolak overpayment per line", func(t *testing.T) {
		it := item(100000, 0, 40000)
		err := service.ApplyPayment(&it, 60001)
		var ov *service.OverpaymentError
		require.ErrorAs(t, err, &ov)
		assert.Equal(t, int64(60000), ov.RemainingIDR)
		assert.Equal(t, int64(60001), ov.RequestedIDR)
		// state tidak berubah
		assert.Equal(t, int64(40000), it.OrderItemPaidAmountIDR)
	})
}

func TestComputeOrderTotals(t *testing.T) {
	o := model.OrderModel{OrderDiscountTotalIDR: 200000}
	items := []model.OrderItemModel{
		item(1500000, 0, 0),
		item(100000, 11, 50000),
	}
	tot := service.ComputeOrderTotals(o, items)
	assert.Equal(t, int64(1600000), tot.SubTotalIDR)
	assert.Equal(t, int64(11000), tot.TaxTotalIDR)
	assert.Equal(t, int64(200000), tot.DiscountTotalIDR)
	assert.Equal(t, int64(1411000), tot.FinalAmountIDR)
	assert.Equal(t, int64(50000), tot.TotalPaidIDR)
}

func TestDeriveOrderStatus(t *testing.T) {
	// pending → partial → paid seiring pembayaran masuk
	assert.Equal(t, model.OrderStatusPending, service.DeriveOrderStatus(false, 0, 100000))
	assert.Equal(t, model.OrderStatusPartial, service.DeriveOrderStatus(false, 1, 100000))
	assert.Equal(t, model.OrderStatusPartial, service.DeriveOrderStatus(false, 99999, 100000))
	assert.Equal(t, model.OrderStatusPaid, service.DeriveOrderStatus(false, 100000, 100000))
	// cancelled selalu menang
	assert.Equal(t, model.OrderStatusCanceled, service.DeriveOrderStatus(true, 100000, 100000))
	// order gratis (final 0) langsung paid
	assert.Equal(t, model.OrderStatusPaid, service.DeriveOrderStatus(false, 0, 0))
}

func TestAutoAllocate(t *testing.T) {
	orderID := uuid.New()

	t.Run("oldest-first greedy", func(t *testing.T) {
		older := item(100000, 0, 0)
		newer := item(50000, 0, 0)
		allocs, err := service.AutoAllocate(orderID, []model.OrderItemModel{older, newer}, 120000)
		require.NoError(t, err)
		require.Len(t, allocs, 2)
		assert.Equal(t, older.OrderItemID, allocs[0].OrderItemID)
		assert.Equal(t, int64(100000), allocs[0].AmountIDR)
		assert.Equal(t, newer.OrderItemID, allocs[1].OrderItemID)
		assert.Equal(t, int64(20000), allocs[1].AmountIDR)
	})

	t.Run("line lunas dilewati", func(t *testing.T) {
		paid := item(100000, 0, 100000)
		open := item(50000, 0, 0)
		allocs, err := service.AutoAllocate(orderID, []model.OrderItemModel{paid, open}, 30000)
		require.NoError(t, err)
		require.Len(t, allocs, 1)
		assert.Equal(t, open.OrderItemID, allocs[0].OrderItemID)
	})

	t.Run("surplus ditolak, bukan di-drop", func(t *testing.T) {
		a := item(100000, 0, 0)
		b := item(50000, 0, 0)
		_, err := service.AutoAllocate(orderID, []model.OrderItemModel{a, b}, 150001)
		var ex *service.AllocationExceedsDebtError
		require.ErrorAs(t, err, &ex)
		assert.Equal(t, int64(150000), ex.OutstandingIDR)
		assert.Equal(t, int64(150001), ex.RequestedIDR)
	})
}

func TestValidateManualAllocations(t *testing.T) {
	orderID := uuid.New()
	a := item(100000, 0, 0)
	b := item(50000, 0, 20000)
	items := []model.OrderItemModel{a, b}

	t.Run("total = Σ alokasi", func(t *testing.T) {
		total, err := service.ValidateManualAllocations(orderID, items, []service.AllocationLine{
			{OrderItemID: a.OrderItemID, AmountIDR: 70000},
			{OrderItemID: b.OrderItemID, AmountIDR: 30000},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100000), total)
	})

	t.Run("all-or-nothing: satu berlebih, semua tertolak", func(t *testing.T) {
		_, err := service.ValidateManualAllocations(orderID, items, []service.AllocationLine{
			{OrderItemID: a.OrderItemID, AmountIDR: 70000},
			{OrderItemID: b.OrderItemID, AmountIDR: 30001}, // remaining b = 30000
		})
		var ov *service.OverpaymentError
		require.ErrorAs(t, err, &ov)
		assert.Equal(t, b.OrderItemID, ov.OrderItemID)
	})

	t.Run("alokasi ganda ke item sama dijumlahkan", func(t *testing.T) {
		_, err := service.ValidateManualAllocations(orderID, items, []service.AllocationLine{
			{OrderItemID: a.OrderItemID, AmountIDR: 60000},
			{OrderItemID: a.OrderItemID, AmountIDR: 50000}, // 110000 > 100000
		})
		var ov *service.OverpaymentError
		require.ErrorAs(t, err, &ov)
	})

	t.Run("item bukan milik order", func(t *testing.T) {
		_, err := service.ValidateManualAllocations(orderID, items, []service.AllocationLine{
			{OrderItemID: uuid.New(), AmountIDR: 1000},
		})
		var nf *service.ItemNotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestSortItemsOldestFirst(t *testing.T) {
	a := item(1, 0, 0)
	b := item(2, 0, 0)
	c := item(3, 0, 0)
	a.OrderItemCreatedAt = a.OrderItemCreatedAt.Add(2)
	items := []model.OrderItemModel{a, b, c}
	service.SortItemsOldestFirst(items)
	assert.Equal(t, a.OrderItemID, items[2].OrderItemID)
}
