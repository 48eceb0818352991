package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	middleware "skill-market.com/skill-market/internal/http/middlewares"
	"skill-market.com/skill-market/internal/http/validators"
)

func (h *Handler) RegisterUser(c echo.Context) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateUserSignup(&req)
	if err != nil {
		return err
	}

	user, err := h.auth.RegisterUser(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) RegisterProvider(c echo.Context) error {
	var req dto.ProviderSignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateProviderSignup(&req)
	if err != nil {
		return err
	}

	provider, err := h.auth.RegisterProvider(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, provider)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Me(c echo.Context) error {
	me, err := h.auth.Me(c.Request().Context(), middleware.CallerID(c), middleware.Role(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, me)
}

func (h *Handler) ProviderProfile(c echo.Context) error {
	provider, err := h.auth.ProviderProfile(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, provider)
}
