package main

import (
	"net/http"
	"strconv"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/middleware"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

type soldOutRequest struct {
	SoldOut bool `json:"soldout"`
}

func registerTourRoutes(g *echo.Group, ts *services.TourService) {
	p := g.Group("/tours")

	// public tour dates page
	p.GET("", func(c echo.Context) error {
		shows, err := ts.ListUpcoming(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"shows": shows})
	})

	// admin show management
	admin := p.Group("/admin")
	admin.Use(
		middleware.JWTMiddleware(),
		middleware.AdminOnly,
	)

	admin.POST("", func(c echo.Context) error {
		var req model.TourDate
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := ts.Announce(c.Request().Context(), &req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"tourid": id})
	})

	admin.PUT("/:id/soldout", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour id"})
		}

		var req soldOutRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := ts.SetSoldOut(c.Request().Context(), id, req.SoldOut); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	})
}
