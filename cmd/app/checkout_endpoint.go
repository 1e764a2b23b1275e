package main

import (
	"errors"
	"net/http"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/middleware"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/services"

	"github.com/labstack/echo/v4"
)

type shippingRequest struct {
	Email           string        `json:"email"`
	ShippingAddress model.Address `json:"shippingaddress"`
	BillingAddress  model.Address `json:"billingaddress"`
	ShippingMethod  string        `json:"shippingmethod"`
}

type gotoRequest struct {
	Step string `json:"step"`
}

func registerCheckoutRoutes(g *echo.Group, cs *services.CheckoutService) {
	p := g.Group("/checkout")

	// current step, completed steps and fresh totals
	p.GET("", func(c echo.Context) error {
		state, err := cs.State(c.Request().Context(), sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, state.SessionID)
		return c.JSON(http.StatusOK, state)
	})

	// complete the current step and move forward
	p.POST("/advance", func(c echo.Context) error {
		state, err := cs.Advance(c.Request().Context(), sessionID(c))
		if err != nil {
			return checkoutError(c, err)
		}
		c.Response().Header().Set(sessionHeader, state.SessionID)
		return c.JSON(http.StatusOK, state)
	})

	// navigate to a completed step (or the next reachable one)
	p.POST("/goto", func(c echo.Context) error {
		var req gotoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		state, err := cs.GoTo(c.Request().Context(), sessionID(c), checkout.Step(req.Step))
		if err != nil {
			return checkoutError(c, err)
		}
		c.Response().Header().Set(sessionHeader, state.SessionID)
		return c.JSON(http.StatusOK, state)
	})

	// reset the flow back to the cart step
	p.POST("/restart", func(c echo.Context) error {
		state, err := cs.Restart(c.Request().Context(), sessionID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set(sessionHeader, state.SessionID)
		return c.JSON(http.StatusOK, state)
	})

	// shipping step: contact email, addresses, shipping method
	p.PUT("/shipping", func(c echo.Context) error {
		var req shippingRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		// checkout works for guests, but a signed-in shopper gets the
		// order linked to their account
		var authID *int64
		if claims := middleware.TryGetClaimsFromAuthHeader(c); claims != nil {
			authID = &claims.AuthID
		}

		state, err := cs.SetShipping(
			c.Request().Context(),
			sessionID(c),
			req.Email,
			req.ShippingAddress,
			req.BillingAddress,
			req.ShippingMethod,
			authID,
		)
		if err != nil {
			return checkoutError(c, err)
		}
		c.Response().Header().Set(sessionHeader, state.SessionID)
		return c.JSON(http.StatusOK, state)
	})
}

func checkoutError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, checkout.ErrStepIncomplete),
		errors.Is(err, checkout.ErrStepNotAccessible),
		errors.Is(err, services.ErrInvalidAddress):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, checkout.ErrCheckoutFinished):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrShippingMethodNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
