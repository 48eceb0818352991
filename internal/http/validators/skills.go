package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	"skill-market.com/skill-market/internal/services"
)

func ValidateSkillRequest(r *dto.SkillRequest) (services.SkillInput, error) {
	r.Category = strings.TrimSpace(r.Category)
	r.WorkNature = strings.TrimSpace(r.WorkNature)

	if len(r.Category) < 2 {
		return services.SkillInput{}, echo.NewHTTPError(http.StatusBadRequest, "category must be at least 2 characters")
	}
	if len(r.WorkNature) < 2 {
		return services.SkillInput{}, echo.NewHTTPError(http.StatusBadRequest, "workNature must be at least 2 characters")
	}

	currency, err := parseCurrency(r.Currency)
	if err != nil {
		return services.SkillInput{}, err
	}

	return services.SkillInput{
		Category:   r.Category,
		Experience: r.Experience,
		WorkNature: r.WorkNature,
		HourlyRate: r.HourlyRate,
		Currency:   currency,
	}, nil
}
