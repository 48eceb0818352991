package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	middleware "skill-market.com/skill-market/internal/http/middlewares"
	"skill-market.com/skill-market/internal/http/validators"
)

func (h *Handler) CreateOffer(c echo.Context) error {
	var req dto.OfferRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateOfferRequest(&req)
	if err != nil {
		return err
	}

	offer, err := h.offers.CreateOffer(c.Request().Context(), middleware.CallerID(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, offer)
}

func (h *Handler) GetOffer(c echo.Context) error {
	offer, err := h.offers.GetOffer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, offer)
}

func (h *Handler) ListOffersByTask(c echo.Context) error {
	offers, err := h.offers.ListOffersByTask(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) ListOffersByProvider(c echo.Context) error {
	offers, err := h.offers.ListOffersByProvider(c.Request().Context(), c.Param("providerId"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(offers),
		"offers": offers,
	})
}

func (h *Handler) AcceptOffer(c echo.Context) error {
	offer, err := h.offers.AcceptOffer(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, offer)
}

func (h *Handler) RejectOffer(c echo.Context) error {
	offer, err := h.offers.RejectOffer(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, offer)
}
