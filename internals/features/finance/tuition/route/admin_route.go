// file: internals/features/finance/tuition/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	tuitionController "lesgo_backend/internals/features/finance/tuition/controller"
	"lesgo_backend/internals/features/finance/tuition/service"
	"lesgo_backend/internals/helpers/oss"
)

// Deps: service yang sudah di-wire di composition root (route/index.go).
type Deps struct {
	Periods   *service.PeriodService
	Orders    *service.OrderService
	Payments  *service.PaymentService
	Billing   *service.BillingService
	Reconcile *service.ReconcileService
	Wallets   *service.WalletService
	Policy    service.BillingPolicy
	OSS       *oss.Client
}

// TuitionAdminRoutes memasang seluruh endpoint back-office tuition.
func TuitionAdminRoutes(r fiber.Router, d Deps) {
	periodCtl := tuitionController.NewTuitionPeriodController(d.Periods)
	orderCtl := tuitionController.NewOrderController(d.Orders, d.Policy)
	paymentCtl := tuitionController.NewPaymentController(d.Payments, d.OSS)
	billingCtl := tuitionController.NewBillingController(d.Billing)
	reconcileCtl := tuitionController.NewReconcileController(d.Reconcile)
	walletCtl := tuitionController.NewWalletController(d.Wallets)

	// ===== Tuition Periods (lifecycle CREATED→ACTIVE→CLOSED) =====
	periods := r.Group("/periods")
	{
		periods.Post("/", periodCtl.Create)
		periods.Get("/", periodCtl.List)
		periods.Get("/:id", periodCtl.GetByID)
		periods.Patch("/:id", periodCtl.Update)
		periods.Delete("/:id", periodCtl.Delete)

		// billing generator & reconciliation per periode
		periods.Post("/:id/billing", billingCtl.Generate)
		periods.Post("/:id/reconcile", reconcileCtl.Run)
	}

	// ===== Orders (invoice aggregate) =====
	orders := r.Group("/orders")
	{
		orders.Post("/", orderCtl.Create)
		orders.Get("/", orderCtl.List)
		orders.Get("/:id", orderCtl.GetByID)
		orders.Post("/:id/cancel", orderCtl.Cancel)

		orders.Post("/:id/payments", paymentCtl.Record)
		orders.Get("/:id/payments", paymentCtl.ListByOrder)
	}

	// ===== Payment transactions =====
	payments := r.Group("/payments")
	{
		payments.Get("/:id/allocations", paymentCtl.Allocations)
	}

	// ===== Student wallets =====
	wallets := r.Group("/wallets")
	{
		wallets.Get("/", walletCtl.List)
		wallets.Get("/:student_id", walletCtl.GetByStudent)
		wallets.Delete("/:student_id", walletCtl.Reset)
	}
}
