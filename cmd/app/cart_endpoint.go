package main

import (
	"errors"
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/pricing"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

// Carts are keyed by an opaque session id the client holds. The id comes in
// on X-Session-ID and goes back out on every response, so a first request
// without one still ends up with a durable cart.
const sessionHeader = "X-Session-ID"

func sessionID(c echo.Context) string {
	return c.Request().Header.Get(sessionHeader)
}

type addCartRequest struct {
	ProductID int64  `json:"productid"`
	VariantID *int64 `json:"variantid,omitempty"`
	Qty       int    `json:"quantity"`
}

type updateCartRequest struct {
	Qty int `json:"quantity"`
}

type promoRequest struct {
	Code string `json:"code"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		sess, err := cs.Load(c.Request().Context(), sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		view, err := cs.View(c.Request().Context(), sess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, view)
	})

	// add item
	p.POST("/items", func(c echo.Context) error {
		var req addCartRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		sess, err := cs.Add(c.Request().Context(), sessionID(c), req.ProductID, req.VariantID, req.Qty)
		if err != nil {
			return cartError(c, err)
		}

		view, err := cs.View(c.Request().Context(), sess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, view)
	})

	// change quantity (0 removes)
	p.PUT("/items/:lineId", func(c echo.Context) error {
		var req updateCartRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		sess, err := cs.UpdateQuantity(c.Request().Context(), sessionID(c), c.Param("lineId"), req.Qty)
		if err != nil {
			return cartError(c, err)
		}

		view, err := cs.View(c.Request().Context(), sess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, view)
	})

	// remove item
	p.DELETE("/items/:lineId", func(c echo.Context) error {
		sess, err := cs.Remove(c.Request().Context(), sessionID(c), c.Param("lineId"))
		if err != nil {
			return cartError(c, err)
		}

		view, err := cs.View(c.Request().Context(), sess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, view)
	})

	// empty the cart
	p.DELETE("", func(c echo.Context) error {
		sess, err := cs.Clear(c.Request().Context(), sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, echo.Map{"status": "cleared"})
	})

	// apply promo code
	p.POST("/promo", func(c echo.Context) error {
		var req promoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		sess, err := cs.ApplyPromo(c.Request().Context(), sessionID(c), req.Code)
		if err != nil {
			return cartError(c, err)
		}

		view, err := cs.View(c.Request().Context(), sess)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, sess.ID)
		return c.JSON(http.StatusOK, view)
	})
}

func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, pricing.ErrPromoInvalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, services.ErrLineNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
