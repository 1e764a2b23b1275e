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

func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	p := g.Group("/products")

	// public catalog
	p.GET("", func(c echo.Context) error {
		products, err := ps.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"products": products})
	})

	p.GET("/:slug", func(c echo.Context) error {
		product, err := ps.GetBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, product)
	})

	// admin catalog management
	admin := p.Group("/admin")
	admin.Use(
		middleware.JWTMiddleware(),
		middleware.AdminOnly,
	)

	admin.POST("", func(c echo.Context) error {
		var req model.Product
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := ps.Create(c.Request().Context(), &req)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"productid": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}

		var req model.Product
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		req.ProductID = id

		if err := ps.Update(c.Request().Context(), &req); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
	})

	admin.POST("/:id/variants", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}

		var req model.ProductVariant
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		req.ProductID = id

		variantID, err := ps.CreateVariant(c.Request().Context(), &req)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"variantid": variantID})
	})
}
