package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/http/middleware"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/logging"
)

func NewRouter(cart *CartHandler, store *StorefrontHandler, checkout *CheckoutHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1/:tenant", authz.Require("storefront.read"), middleware.CartSession())
	{
		v1.GET("/cart", cart.GetCart)
		v1.GET("/slots", store.GetSlots)

		write := v1.Group("", authz.Require("storefront.write"))
		{
			write.POST("/cart/items", cart.AddItem)
			write.PUT("/cart/items/:id", cart.SetQuantity)
			write.DELETE("/cart/items/:id", cart.RemoveItem)

			write.POST("/delivery/quote", store.QuoteDelivery)
			write.GET("/delivery/carriers", store.GetCarriers)
			write.POST("/delivery/carrier", store.SelectCarrier)
			write.POST("/fulfillment", store.SetFulfillment)

			write.POST("/checkout/readiness", checkout.Readiness)
			write.POST("/checkout", checkout.Submit)
		}
	}

	return r
}
