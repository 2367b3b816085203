// file: internals/features/finance/tuition/controller/reconcile_controller.go
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

type ReconcileController struct {
	Service   *service.ReconcileService
	Validator *validator.Validate
}

func NewReconcileController(svc *service.ReconcileService) *ReconcileController {
	return &ReconcileController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/periods/:id/reconcile
// mode=preview → hitung refund izin, nol side effect
// mode=execute → kredit wallet + mark reconciled + ACTIVE→CLOSED
//
//	(satu transaksi; gagal sebagian = rollback semua)
func (ctl *ReconcileController) Run(c *fiber.Ctx) error {
	periodID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.ReconcileRunDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	res, err := ctl.Service.Reconcile(c.Context(), periodID, req.Mode)
	if err != nil {
		return httpError(c, err)
	}
	if req.Mode == service.ModePreview {
		return helper.JsonOK(c, "preview rekonsiliasi", res)
	}
	return helper.JsonOK(c, "periode berhasil ditutup", res)
}
