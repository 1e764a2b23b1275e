package main

import (
	"errors"
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// open a hosted payment session for the current checkout
	p.POST("", func(c echo.Context) error {
		sess, err := ps.StartPayment(c.Request().Context(), sessionID(c))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPaymentNotReady),
				errors.Is(err, services.ErrEmptyCart):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			case errors.Is(err, services.ErrPaymentInFlight):
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			default:
				return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, sess)
	})

	// ============================
	// GATEWAY NOTIFICATION
	// (NO JWT, must be public)
	// ============================
	p.POST("/notifications", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": "invalid payload",
			})
		}

		if err := ps.HandleNotification(c.Request().Context(), payload); err != nil {
			if errors.Is(err, services.ErrBadSignature) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid signature"})
			}
			// the gateway requires HTTP 200 or it will retry
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
