// file: internals/databases/migrate.go
package database

import (
	"log"

	tuitionModel "lesgo_backend/internals/features/finance/tuition/model"
	schoolModel "lesgo_backend/internals/features/school/model"
)

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
func Migrate() {
	if err := DB.AutoMigrate(
		&schoolModel.ClassModel{},
		&schoolModel.StudentModel{},
		&schoolModel.ClassEnrollmentModel{},
		&schoolModel.StudentAttendanceModel{},
		&tuitionModel.TuitionPeriodModel{},
		&tuitionModel.OrderModel{},
		&tuitionModel.OrderItemModel{},
		&tuitionModel.PaymentTransactionModel{},
		&tuitionModel.PaymentAllocationModel{},
		&tuitionModel.StudentWalletModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi database: %v", err)
	}
	log.Println("✅ Migrasi database selesai")
}
