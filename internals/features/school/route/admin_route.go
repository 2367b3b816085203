// file: internals/features/school/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "lesgo_backend/internals/features/school/controller"
)

// SchoolAdminRoutes memasang registry murid/kelas/enrollment/absensi.
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	classCtl := schoolController.NewClassController(db)
	studentCtl := schoolController.NewStudentController(db)
	enrollCtl := schoolController.NewEnrollmentController(db)
	attCtl := schoolController.NewAttendanceController(db)

	classes := r.Group("/classes")
	{
		classes.Post("/", classCtl.Create)
		classes.Get("/", classCtl.List)
		classes.Get("/:id", classCtl.GetByID)
		classes.Patch("/:id", classCtl.Update)
		classes.Delete("/:id", classCtl.Delete)
	}

	students := r.Group("/students")
	{
		students.Post("/", studentCtl.Create)
		students.Get("/", studentCtl.List)
		students.Get("/:id", studentCtl.GetByID)
		students.Patch("/:id", studentCtl.Update)
		students.Delete("/:id", studentCtl.Delete)
	}

	enrollments := r.Group("/enrollments")
	{
		enrollments.Post("/", enrollCtl.Create)
		enrollments.Get("/", enrollCtl.List)
		enrollments.Post("/:id/end", enrollCtl.End)
	}

	attendances := r.Group("/attendances")
	{
		attendances.Post("/", attCtl.BulkMark)
		attendances.Get("/", attCtl.List)
	}
}
