// file: internals/features/finance/tuition/controller/billing_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lesgo_backend/internals/features/finance/tuition/dto"
	"lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type BillingController struct {
	Service   *service.BillingService
	Validator *validator.Validate
}

func NewBillingController(svc *service.BillingService) *BillingController {
	return &BillingController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/periods/:id/billing
// mode=preview → hitung saja (idempotent, nol write)
// mode=commit  → persist order + items, debit wallet, CREATED→ACTIVE
func (ctl *BillingController) Generate(c *fiber.Ctx) error {
	periodID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.BillingGenerateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	res, err := ctl.Service.Generate(c.Context(), periodID, req.Mode)
	if err != nil {
		return httpError(c, err)
	}
	if req.Mode == service.ModePreview {
		return helper.JsonOK(c, "preview billing", res)
	}
	return helper.JsonCreated(c, "billing berhasil di-commit", res)
}
