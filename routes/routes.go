package routes

import (
	"payments-gateway/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	payments := r.Group("/payments")
	payments.POST("/create-payment-session", pc.CreatePaymentSession)
	payments.GET("/success", pc.Success)
	payments.GET("/cancelled", pc.Cancelled)

	// Stripe webhook (no auth, signature-verified)
	payments.POST("/webhook", pc.StripeWebhook)
}
