package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/middleware"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

type statusUpdateRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func registerAdminOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/admin/orders")
	p.Use(
		middleware.JWTMiddleware(),
		middleware.AdminOnly,
	)

	// list with status filter, search and pagination
	// GET /admin/orders?status=shipped&q=PS-2026&limit=20&offset=0
	p.GET("", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))

		f := repository.OrderFilter{
			Status: model.OrderStatus(c.QueryParam("status")),
			Search: c.QueryParam("q"),
			Limit:  limit,
			Offset: offset,
		}

		orders, total, err := os.List(c.Request().Context(), f)
		if err != nil {
			if errors.Is(err, services.ErrUnknownStatus) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"orders": orders,
			"total":  total,
		})
	})

	// full detail with items and timeline
	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}

		order, err := os.Get(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, order)
	})

	// apply one state-machine transition
	p.PUT("/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}

		var req statusUpdateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		err = os.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status), req.Note)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownStatus),
				errors.Is(err, services.ErrInvalidTransition):
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			case errors.Is(err, repository.ErrOrderNotFound):
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	})
}
