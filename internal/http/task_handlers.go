package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	middleware "skill-market.com/skill-market/internal/http/middlewares"
	"skill-market.com/skill-market/internal/http/validators"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), in, middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.tasks.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListTasksByUser(c echo.Context) error {
	tasks, err := h.tasks.ListTasksByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) ListTasksByProvider(c echo.Context) error {
	tasks, err := h.tasks.ListTasksByProvider(c.Request().Context(), c.Param("providerId"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), c.Param("id"), middleware.CallerID(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RecordProgress(c echo.Context) error {
	var req dto.ProgressRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in, err := validators.ValidateProgressRequest(&req)
	if err != nil {
		return err
	}

	entry, err := h.tasks.RecordProgress(c.Request().Context(), c.Param("id"), middleware.CallerID(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) ListProgress(c echo.Context) error {
	entries, err := h.tasks.ListProgress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(entries),
		"progress": entries,
	})
}

func (h *Handler) MarkProviderCompleted(c echo.Context) error {
	task, err := h.tasks.MarkProviderCompleted(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AcceptCompletion(c echo.Context) error {
	task, err := h.tasks.AcceptCompletion(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) RejectCompletion(c echo.Context) error {
	task, err := h.tasks.RejectCompletion(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}
