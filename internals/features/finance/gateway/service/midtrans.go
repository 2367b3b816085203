// file: internals/features/finance/gateway/service/midtrans.go
package service

import (
	"context"
	"fmt"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	tuitionService "lesgo_backend/internals/features/finance/tuition/service"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

/* ======================================================
   CheckoutService — jembatan order internal → Snap.

   Satu checkout = satu Snap transaction sebesar SISA
   tagihan order saat itu. Midtrans mewajibkan order_id
   unik per transaksi, jadi dipakai "<order_uuid>.<unix>";
   webhook memetakan balik lewat prefix UUID-nya.
====================================================== */

type CheckoutService struct {
	Orders *tuitionService.OrderService
}

func NewCheckoutService(orders *tuitionService.OrderService) *CheckoutService {
	return &CheckoutService{Orders: orders}
}

type CheckoutResult struct {
	SnapToken      string `json:"snap_token"`
	GatewayOrderID string `json:"gateway_order_id"`
	AmountIDR      int64  `json:"amount_idr"`
	RedirectURL    string `json:"redirect_url,omitempty"`
}

// CreateCheckout membuat Snap token untuk melunasi sisa tagihan order.
func (s *CheckoutService) CreateCheckout(ctx context.Context, orderID string) (*CheckoutResult, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	view, err := s.Orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.Order.IsCanceled() {
		return nil, tuitionService.ErrOrderCanceled
	}
	remaining := view.Totals.FinalAmountIDR - view.Totals.TotalPaidIDR
	if remaining <= 0 {
		return nil, tuitionService.ErrAmountNotPositive
	}

	gatewayOrderID := fmt.Sprintf("%s.%d", view.Order.OrderID, time.Now().Unix())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  gatewayOrderID,
			GrossAmt: remaining,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: view.Order.OrderPayerName,
		},
	}
	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{
		SnapToken:      resp.Token,
		GatewayOrderID: gatewayOrderID,
		AmountIDR:      remaining,
		RedirectURL:    resp.RedirectURL,
	}, nil
}
