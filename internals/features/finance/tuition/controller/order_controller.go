// file: internals/features/finance/tuition/controller/order_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lesgo_backend/internals/features/finance/tuition/dto"
	"lesgo_backend/internals/features/finance/tuition/service"
	helper "lesgo_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type OrderController struct {
	Service   *service.OrderService
	Policy    service.BillingPolicy
	Validator *validator.Validate
}

func NewOrderController(svc *service.OrderService, pol service.BillingPolicy) *OrderController {
	return &OrderController{
		Service:   svc,
		Policy:    pol,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/tuition/orders — order manual (material/adjustment/tuition susulan)
func (ctl *OrderController) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}
	view, err := ctl.Service.CreateManual(c.Context(), req.ToInput(ctl.Policy.DefaultVATRatePercent))
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonCreated(c, "order berhasil dibuat", dto.ToOrderResponse(*view))
}

// GET /api/a/tuition/orders?period_id=&student_id=
func (ctl *OrderController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	f := service.ListOrdersFilter{Limit: p.Limit, Offset: p.Offset}
	if raw := c.Query("period_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "period_id tidak valid")
		}
		f.PeriodID = &id
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		f.StudentID = &id
	}
	views, total, err := ctl.Service.List(c.Context(), f)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonList(c, "daftar order",
		dto.ToOrderResponses(views),
		helper.BuildPagination(p.Page, p.PerPage, total))
}

// GET /api/a/tuition/orders/:id
func (ctl *OrderController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	view, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonOK(c, "detail order", dto.ToOrderResponse(*view))
}

// POST /api/a/tuition/orders/:id/cancel
func (ctl *OrderController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	if err := ctl.Service.Cancel(c.Context(), id); err != nil {
		return httpError(c, err)
	}
	view, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return helper.JsonUpdated(c, "order dibatalkan", dto.ToOrderResponse(*view))
}
