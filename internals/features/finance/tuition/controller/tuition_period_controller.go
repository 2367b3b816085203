// file: internals/features/finance/tuition/controller/tuition_period_controller.go
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

type TuitionPeriodController struct {
	Service   *service.PeriodService
	Validator *validator.Validate
}

func NewTuitionPeriodController(svc *service.PeriodService) *TuitionPeriodController {
	return &TuitionPeriodController{
		Service:   svc,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/periods
func (ctl *TuitionPeriodController) Create(c *fiber.Ctx) error {
	var req dto.TuitionPeriodCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}
	m, err := ctl.Service.Create(c.Context(), service.CreatePeriodInput{
		Name:      req.TuitionPeriodName,
		Month:     req.TuitionPeriodMonth,
		Year:      req.TuitionPeriodYear,
		StartDate: req.TuitionPeriodStartDate,
		EndDate:   req.TuitionPeriodEndDate,
	})
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "periode berhasil dibuat", dto.ToTuitionPeriodResponse(*m))
}

// GET /api/a/tuition/periods
func (ctl *TuitionPeriodController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonList(c, "daftar periode",
		dto.ToTuitionPeriodResponses(rows),
		helper.BuildPagination(p.Page, p.PerPage, total))
}

// GET /api/a/tuition/periods/:id
func (ctl *TuitionPeriodController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	m, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "detail periode", dto.ToTuitionPeriodResponse(*m))
}

// PATCH /api/a/tuition/periods/:id — hanya saat CREATED
func (ctl *TuitionPeriodController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.TuitionPeriodUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}
	m, err := ctl.Service.Update(c.Context(), id, service.UpdatePeriodInput{
		Name:      req.TuitionPeriodName,
		StartDate: req.TuitionPeriodStartDate,
		EndDate:   req.TuitionPeriodEndDate,
	})
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "periode berhasil diupdate", dto.ToTuitionPeriodResponse(*m))
}

// DELETE /api/a/tuition/periods/:id — hanya CREATED tanpa order
func (ctl *TuitionPeriodController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	if err := ctl.Service.Delete(c.Context(), id); err != nil {
		return httpError(c, err)
	}
	return helper.JsonDeleted(c, "periode berhasil dihapus", fiber.Map{"tuition_period_id": id})
}
