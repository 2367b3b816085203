// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lesgo_backend/internals/configs"
	gatewayRoute "lesgo_backend/internals/features/finance/gateway/route"
	tuitionRoute "lesgo_backend/internals/features/finance/tuition/route"
	tuitionService "lesgo_backend/internals/features/finance/tuition/service"
	schoolRoute "lesgo_backend/internals/features/school/route"
	schoolService "lesgo_backend/internals/features/school/service"
	"lesgo_backend/internals/helpers/oss"
)

// SetupRoutes: composition root — semua service di-wire sekali di sini.
func SetupRoutes(app *fiber.App, db *gorm.DB, ossClient *oss.Client) {
	BaseRoutes(app, db)

	policy := tuitionService.NewBillingPolicy(configs.DefaultVATPercent)

	periods := tuitionService.NewPeriodService(db)
	orders := tuitionService.NewOrderService(db)
	payments := tuitionService.NewPaymentService(db)
	wallets := tuitionService.NewWalletService(db)
	billing := tuitionService.NewBillingService(db,
		schoolService.GormEnrollmentProvider{},
		schoolService.GormClassCatalog{},
		schoolService.PhonePayerResolver{},
		policy)
	reconcile := tuitionService.NewReconcileService(db,
		schoolService.GormAttendanceProvider{},
		schoolService.GormClassCatalog{},
		policy)

	api := app.Group("/api")
	admin := api.Group("/a")

	tuitionRoute.TuitionAdminRoutes(admin.Group("/tuition"), tuitionRoute.Deps{
		Periods:   periods,
		Orders:    orders,
		Payments:  payments,
		Billing:   billing,
		Reconcile: reconcile,
		Wallets:   wallets,
		Policy:    policy,
		OSS:       ossClient,
	})

	schoolRoute.SchoolAdminRoutes(admin.Group("/school"), db)

	// checkout admin-scoped; webhook Midtrans public
	gatewayRoute.GatewayRoutes(admin.Group("/tuition"), api, db,
		orders, payments, configs.MidtransServerKey)
}
