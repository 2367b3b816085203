// file: internals/features/school/controller/enrollment_controller.go
package controller

import (
	"errors"

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

type EnrollmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:        db,
		Validator: validator.New(),
	}
}

// =======================================================
// HANDLERS
// =======================================================

// POST /api/a/school/enrollments
//
// Caches (nama murid/kelas/ortu) di-snapshot dari registry saat create —
// billing generator tinggal baca enrollment tanpa join tambahan.
func (ctl *EnrollmentController) Create(c *fiber.Ctx) error {
	var req dto.EnrollmentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	var out model.ClassEnrollmentModel
	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var student model.StudentModel
		if err := tx.First(&student, "student_id = ?", req.ClassEnrollmentStudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "murid tidak ditemukan")
			}
			return err
		}
		var class model.ClassModel
		if err := tx.First(&class, "class_id = ?", req.ClassEnrollmentClassID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "kelas tidak ditemukan")
			}
			return err
		}

		// Tolak enrollment aktif dobel di kelas yang sama
		var n int64
		if err := tx.Model(&model.ClassEnrollmentModel{}).
			Where("class_enrollment_student_id = ? AND class_enrollment_class_id = ? AND class_enrollment_status = ?",
				student.StudentID, class.ClassID, model.EnrollmentActive).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fiber.NewError(fiber.StatusConflict, "murid sudah aktif di kelas ini")
		}

		out = model.ClassEnrollmentModel{
			ClassEnrollmentStudentID:   student.StudentID,
			ClassEnrollmentClassID:     class.ClassID,
			ClassEnrollmentStatus:      model.EnrollmentActive,
			ClassEnrollmentStartDate:   req.ClassEnrollmentStartDate,
			ClassEnrollmentDiscountIDR: req.ClassEnrollmentDiscountIDR,

			ClassEnrollmentStudentNameCache: student.StudentName,
			ClassEnrollmentClassNameCache:   class.ClassName,
			ClassEnrollmentParentNameCache:  student.StudentParentName,
			ClassEnrollmentParentPhoneCache: student.StudentParentPhone,
		}
		return tx.Create(&out).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "enrollment berhasil dibuat", dto.ToEnrollmentResponse(out))
}

// GET /api/a/school/enrollments?class_id=&student_id=&status=
func (ctl *EnrollmentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.WithContext(c.Context()).Model(&model.ClassEnrollmentModel{})
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("class_enrollment_class_id = ?", id)
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("class_enrollment_student_id = ?", id)
	}
	if st := c.Query("status"); st != "" {
		q = q.Where("class_enrollment_status = ?", st)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var rows []model.ClassEnrollmentModel
	if err := q.Order("class_enrollment_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "daftar enrollment",
		dto.ToEnrollmentResponses(rows),
		helper.BuildPagination(p.Page, p.PerPage, total))
}

// POST /api/a/school/enrollments/:id/end — akhiri keikutsertaan
func (ctl *EnrollmentController) End(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	var req dto.EnrollmentEndDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationErrors(err))
	}

	var m model.ClassEnrollmentModel
	if err := ctl.DB.WithContext(c.Context()).First(&m, "class_enrollment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "enrollment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.ClassEnrollmentStatus == model.EnrollmentEnded {
		return helper.JsonError(c, fiber.StatusConflict, "enrollment sudah berakhir")
	}
	if req.ClassEnrollmentEndDate.Before(m.ClassEnrollmentStartDate) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "end date sebelum start date")
	}

	end := req.ClassEnrollmentEndDate
	m.ClassEnrollmentStatus = model.EnrollmentEnded
	m.ClassEnrollmentEndDate = &end
	if err := ctl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "enrollment diakhiri", dto.ToEnrollmentResponse(m))
}
