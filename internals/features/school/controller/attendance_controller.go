// file: internals/features/school/controller/attendance_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lesgo_backend/internals/features/school/dto"
	"lesgo_backend/internals/features/school/model"
	helper "lesgo_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/school/attendances — bulk mark satu sesi
func (ctl *AttendanceController) BulkMark(c *fiber.Ctx) error {
	var req dto.AttendanceBulkMarkDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	rows := make([]model.StudentAttendanceModel, 0, len(req.Records))
	for _, r := range req.Records {
		rows = append(rows, r.ToModel())
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "absensi tercatat", dto.ToAttendanceResponses(rows))
}

// GET /api/a/school/attendances?student_id=&class_id=&status=&from=&to=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	q := ctl.DB.WithContext(c.Context()).Model(&model.StudentAttendanceModel{})
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("student_attendance_student_id = ?", id)
	}
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("student_attendance_class_id = ?", id)
	}
	if st := c.Query("status"); st != "" {
		q = q.Where("student_attendance_status = ?", st)
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("student_attendance_date >= ?", t)
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("student_attendance_date <= ?", t)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var rows []model.StudentAttendanceModel
	if err := q.Order("student_attendance_date DESC, student_attendance_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "daftar absensi",
		dto.ToAttendanceResponses(rows),
		helper.BuildPagination(p.Page, p.PerPage, total))
}
