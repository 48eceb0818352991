package validators

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	dto "skill-market.com/skill-market/internal/data_models"
	"skill-market.com/skill-market/internal/services"
	"skill-market.com/skill-market/pkg/constants"
)

func ValidateTaskRequest(r *dto.TaskRequest) (services.TaskInput, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)

	if len(r.Name) < 3 {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "name must be at least 3 characters")
	}
	if len(r.Category) < 2 {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "category must be at least 2 characters")
	}
	if len(r.Description) < 10 {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "description must be at least 10 characters")
	}

	startDate, err := time.Parse(time.DateOnly, r.ExpectedStartDate)
	if err != nil {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "expectedStartDate must be formatted YYYY-MM-DD")
	}

	if r.ExpectedHours <= 0 {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "expectedHours must be positive")
	}
	if r.HourlyRate.IsNegative() {
		return services.TaskInput{}, echo.NewHTTPError(http.StatusBadRequest, "hourlyRate must not be negative")
	}

	currency, err := parseCurrency(r.Currency)
	if err != nil {
		return services.TaskInput{}, err
	}

	return services.TaskInput{
		Name:              r.Name,
		Category:          r.Category,
		Description:       r.Description,
		ExpectedStartDate: datatypes.Date(startDate),
		ExpectedHours:     r.ExpectedHours,
		HourlyRate:        r.HourlyRate,
		Currency:          currency,
	}, nil
}

func ValidateProgressRequest(r *dto.ProgressRequest) (services.ProgressInput, error) {
	r.Description = strings.TrimSpace(r.Description)

	if len(r.Description) < 10 {
		return services.ProgressInput{}, echo.NewHTTPError(http.StatusBadRequest, "description must be at least 10 characters")
	}
	if !r.HoursSpent.IsPositive() {
		return services.ProgressInput{}, echo.NewHTTPError(http.StatusBadRequest, "hoursSpent must be positive")
	}

	return services.ProgressInput{
		Description: r.Description,
		HoursSpent:  r.HoursSpent,
	}, nil
}

func parseCurrency(raw string) (constants.Currency, error) {
	c := constants.Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "currency must be one of USD, AUD, SGD, INR")
	}
	return c, nil
}
