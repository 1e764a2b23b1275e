package main

import (
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func registerNewsletterRoutes(g *echo.Group, ns *services.NewsletterService) {
	p := g.Group("/newsletter")

	p.POST("/subscribe", func(c echo.Context) error {
		var req subscribeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		sub, err := ns.Subscribe(c.Request().Context(), req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"email":     sub.Email,
			"confirmed": sub.Confirmed,
		})
	})

	p.GET("/confirm", func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
		}
		if err := ns.Confirm(c.Request().Context(), token); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "confirmed"})
	})
}
