// file: internals/features/finance/tuition/controller/wallet_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"lesgo_backend/internals/features/finance/tuition/dto"
	"lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type WalletController struct {
	Service *service.WalletService
}

func NewWalletController(svc *service.WalletService) *WalletController {
	return &WalletController{Service: svc}
}

// =======================================================
// HANDLERS
// =======================================================

// GET /api/a/tuition/wallets
func (ctl *WalletController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonList(c, "daftar wallet",
		dto.ToStudentWalletResponses(rows),
		helper.BuildPagination(p.Page, p.PerPage, total))
}

// GET /api/a/tuition/wallets/:student_id
func (ctl *WalletController) GetByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	w, err := ctl.Service.ByStudent(c.Context(), studentID)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "detail wallet", dto.ToStudentWalletResponse(*w))
}

// DELETE /api/a/tuition/wallets/:student_id — reset saldo ke 0 (revert refund)
func (ctl *WalletController) Reset(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	if err := ctl.Service.ResetToZero(c.Context(), studentID); err != nil {
		return httpError(c, err)
	}
	return helper.JsonDeleted(c, "saldo wallet direset", fiber.Map{"student_wallet_student_id": studentID})
}
