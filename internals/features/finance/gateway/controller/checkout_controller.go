// file: internals/features/finance/gateway/controller/checkout_controller.go
package controller

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	gatewayService "lesgo_backend/internals/features/finance/gateway/service"
	"lesgo_backend/internals/features/finance/tuition/model"
	tuitionService "lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type CheckoutController struct {
	DB                *gorm.DB
	Checkout          *gatewayService.CheckoutService
	Payments          *tuitionService.PaymentService
	MidtransServerKey string
}

func NewCheckoutController(db *gorm.DB, co *gatewayService.CheckoutService, pay *tuitionService.PaymentService, serverKey string) *CheckoutController {
	return &CheckoutController{
		DB:                db,
		Checkout:          co,
		Payments:          pay,
		MidtransServerKey: serverKey,
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/orders/:id/checkout — Snap token sebesar sisa tagihan
func (ctl *CheckoutController) Create(c *fiber.Ctx) error {
	res, err := ctl.Checkout.CreateCheckout(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, gatewayService.ErrBadOrderRef):
			return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
		case errors.Is(err, tuitionService.ErrOrderNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, tuitionService.ErrOrderCanceled):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, tuitionService.ErrAmountNotPositive):
			return helper.JsonError(c, fiber.StatusConflict, "order sudah lunas")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.JsonCreated(c, "checkout dibuat", res)
}

/* =======================================================================
   Webhook Midtrans
======================================================================= */

type midtransNotif struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"` // string dari Midtrans
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

// POST /api/midtrans/notification
//
// Hanya settlement / capture(accept) yang dicatat sebagai pembayaran
// (bank_transfer, auto-allocate). Status lain dibalas 200 saja supaya
// Midtrans berhenti retry.
func (ctl *CheckoutController) MidtransWebhook(c *fiber.Ctx) error {
	var notif midtransNotif
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}

	// Verify signature — SHA512(order_id + status_code + gross_amount + ServerKey)
	want := strings.ToLower(notif.SignatureKey)
	got := sha512sum(notif.OrderID + notif.StatusCode + notif.GrossAmount + ctl.MidtransServerKey)
	if want == "" || got != want {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
	}

	settled := notif.TransactionStatus == "settlement" ||
		(notif.TransactionStatus == "capture" && notif.FraudStatus == "accept")
	if !settled {
		return c.JSON(fiber.Map{"status": "ignored", "transaction_status": notif.TransactionStatus})
	}

	orderID, err := gatewayService.ParseGatewayOrderID(notif.OrderID)
	if err != nil {
		// bukan order kita; balas 200 supaya tidak retry terus
		return c.JSON(fiber.Map{"status": "ignored", "reason": "unknown order reference"})
	}

	// Guard idempotensi: notif settlement bisa dikirim ulang
	var dup int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.PaymentTransactionModel{}).
		Where(datatypes.JSONQuery("payment_transaction_meta").
			Equals(notif.TransactionID, "midtrans_transaction_id")).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if dup > 0 {
		return c.JSON(fiber.Map{"status": "ignored", "reason": "already recorded"})
	}

	amtFloat, err := strconv.ParseFloat(notif.GrossAmount, 64)
	if err != nil || amtFloat <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid gross_amount")
	}
	amount := int64(amtFloat + 0.5)

	paidAt := time.Now()
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", notif.SettlementTime, time.Local); err == nil {
		paidAt = t
	} else if t, err := time.ParseInLocation("2006-01-02 15:04:05", notif.TransactionTime, time.Local); err == nil {
		paidAt = t
	}

	meta, _ := sonic.Marshal(fiber.Map{
		"midtrans_transaction_id": notif.TransactionID,
		"midtrans_order_id":       notif.OrderID,
		"payment_type":            notif.PaymentType,
		"transaction_status":      notif.TransactionStatus,
	})
	res, err := ctl.Payments.RecordPayment(c.Context(), tuitionService.RecordPaymentInput{
		OrderID:     orderID,
		TotalAmount: amount,
		Method:      model.PaymentMethodBankTransfer,
		PaidAt:      &paidAt,
		Meta:        datatypes.JSON(meta),
	})
	if err != nil {
		// state conflict (mis. order sudah lunas karena bayar cash duluan)
		// tetap dibalas 200 — retry dari Midtrans tidak akan memperbaikinya
		if tuitionService.IsStateConflict(err) {
			return c.JSON(fiber.Map{"status": "ignored", "reason": err.Error()})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"status":                 "ok",
		"payment_transaction_id": res.Transaction.PaymentTransactionID,
		"order_status":           res.Status,
	})
}

/* =======================================================================
   Helpers
======================================================================= */

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}
