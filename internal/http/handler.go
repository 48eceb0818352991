package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "skill-market.com/skill-market/internal/errors"
	"skill-market.com/skill-market/internal/services"
)

type Handler struct {
	tasks  *services.TaskService
	offers *services.OfferService
	auth   *services.AuthService
	skills *services.SkillService
	db     *gorm.DB
}

func NewHandler(
	tasks *services.TaskService,
	offers *services.OfferService,
	auth *services.AuthService,
	skills *services.SkillService,
	db *gorm.DB,
) *Handler {
	return &Handler{
		tasks:  tasks,
		offers: offers,
		auth:   auth,
		skills: skills,
		db:     db,
	}
}

// fail turns a service error into the HTTP error echo renders. Anything that
// is not an Exception is logged and hidden behind a 500.
func fail(c echo.Context, err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}

	log.Printf("http: %s %s failed: %v", c.Request().Method, c.Path(), err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	return nil
}
