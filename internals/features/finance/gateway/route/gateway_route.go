// file: internals/features/finance/gateway/route/gateway_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gatewayController "lesgo_backend/internals/features/finance/gateway/controller"
	gatewayService "lesgo_backend/internals/features/finance/gateway/service"
	tuitionService "lesgo_backend/internals/features/finance/tuition/service"
)

// GatewayRoutes memasang checkout (admin) + webhook (public, dipanggil Midtrans).
func GatewayRoutes(admin fiber.Router, public fiber.Router, db *gorm.DB,
	orders *tuitionService.OrderService, payments *tuitionService.PaymentService, serverKey string) {

	checkout := gatewayService.NewCheckoutService(orders)
	ctl := gatewayController.NewCheckoutController(db, checkout, payments, serverKey)

	admin.Post("/orders/:id/checkout", ctl.Create)
	public.Post("/midtrans/notification", ctl.MidtransWebhook)
}
