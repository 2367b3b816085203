// file: internals/features/finance/tuition/controller/payment_controller.go
package controller

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lesgo_backend/internals/features/finance/tuition/dto"
	"lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
	"lesgo_backend/internals/helpers/oss"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type PaymentController struct {
	Service   *service.PaymentService
	OSS       *oss.Client // nil = upload bukti nonaktif
	Validator *validator.Validate
}

func NewPaymentController(svc *service.PaymentService, ossClient *oss.Client) *PaymentController {
	return &PaymentController{
		Service:   svc,
		OSS:       ossClient,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/orders/:id/payments
//
// Dua bentuk request:
//   - application/json → body RecordPaymentDTO langsung
//   - multipart/form-data → field "payload" (JSON RecordPaymentDTO)
//     + file "evidence" (slip transfer, di-upload ke OSS)
func (ctl *PaymentController) Record(c *fiber.Ctx) error {
	orderID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var (
		req         dto.RecordPaymentDTO
		evidenceURL *string
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		payload := c.FormValue("payload")
		if payload == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "field payload wajib diisi")
		}
		if err := sonic.Unmarshal([]byte(payload), &req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
		}
		if fh, err := c.FormFile("evidence"); err == nil && fh != nil {
			if ctl.OSS == nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "upload bukti belum dikonfigurasi")
			}
			url, err := ctl.OSS.UploadEvidence(fh)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
			evidenceURL = &url
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
		}
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	res, err := ctl.Service.RecordPayment(c.Context(), req.ToInput(orderID, evidenceURL))
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "pembayaran tercatat", dto.ToRecordPaymentResponse(*res))
}

// GET /api/a/tuition/orders/:id/payments — audit trail order
func (ctl *PaymentController) ListByOrder(c *fiber.Ctx) error {
	orderID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	rows, err := ctl.Service.Transactions(c.Context(), orderID)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "riwayat pembayaran", dto.ToPaymentTransactionResponses(rows))
}

// GET /api/a/tuition/payments/:id/allocations
func (ctl *PaymentController) Allocations(c *fiber.Ctx) error {
	trxID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	rows, err := ctl.Service.AllocationsOf(c.Context(), trxID)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "alokasi transaksi", dto.ToPaymentAllocationResponses(rows))
}
