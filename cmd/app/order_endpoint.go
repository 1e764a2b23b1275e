package main

import (
	"errors"
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/middleware"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

func registerOrderRoutes(g *echo.Group, os *services.OrderService, customers *repository.CustomerRepository) {
	p := g.Group("/orders")

	// order tracking by number: public, the number itself is the capability
	p.GET("/track/:orderNumber", func(c echo.Context) error {
		order, err := os.GetByNumber(c.Request().Context(), c.Param("orderNumber"))
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, order)
	})

	// order history for logged-in customers
	mine := p.Group("/mine")
	mine.Use(middleware.JWTMiddleware())

	mine.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		cust, err := customers.GetByAuthID(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}

		orders, err := os.ListForCustomer(c.Request().Context(), cust.CustomerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": orders})
	})
}
