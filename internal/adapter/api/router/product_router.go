package router

import (
	"github.com/labstack/echo/v4"

	"voltbay/internal/adapter/api/handler"
	"voltbay/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	products := e.Group("/products")
	products.Use(authMiddleware.Authenticate)

	products.GET("/:id", productHandler.GetProduct) // GET /products/:id
}
