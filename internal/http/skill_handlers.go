package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	middleware "skill-market.com/skill-market/internal/http/middlewares"
	"skill-market.com/skill-market/internal/http/validators"
)

func (h *Handler) CreateSkill(c echo.Context) error {
	var req dto.SkillRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateSkillRequest(&req)
	if err != nil {
		return err
	}

	skill, err := h.skills.CreateSkill(c.Request().Context(), middleware.CallerID(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, skill)
}

func (h *Handler) GetSkill(c echo.Context) error {
	skill, err := h.skills.GetSkill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, skill)
}

func (h *Handler) ListSkills(c echo.Context) error {
	return h.listSkillsIn(c, c.QueryParam("category"))
}

func (h *Handler) ListSkillsByCategory(c echo.Context) error {
	return h.listSkillsIn(c, c.Param("category"))
}

func (h *Handler) listSkillsIn(c echo.Context, category string) error {
	skills, err := h.skills.ListSkills(c.Request().Context(), category)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(skills),
		"skills": skills,
	})
}

func (h *Handler) ListSkillsByProvider(c echo.Context) error {
	skills, err := h.skills.ListSkillsByProvider(c.Request().Context(), c.Param("providerId"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(skills),
		"skills": skills,
	})
}

func (h *Handler) UpdateSkill(c echo.Context) error {
	var req dto.SkillRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateSkillRequest(&req)
	if err != nil {
		return err
	}

	skill, err := h.skills.UpdateSkill(c.Request().Context(), c.Param("id"), middleware.CallerID(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, skill)
}

func (h *Handler) DeleteSkill(c echo.Context) error {
	if err := h.skills.DeleteSkill(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
