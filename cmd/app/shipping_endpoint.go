package main

import (
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"

	"github.com/labstack/echo/v4"
)

func registerShippingRoutes(g *echo.Group, sr *repository.ShippingRepository) {
	g.GET("/shipping-methods", func(c echo.Context) error {
		methods, err := sr.ListActive(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"methods": methods})
	})
}
