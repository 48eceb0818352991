package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	"skill-market.com/skill-market/internal/services"
)

// ValidateOfferRequest checks shape only. Rate positivity is a business rule
// enforced by the offer service.
func ValidateOfferRequest(r *dto.OfferRequest) (services.OfferInput, error) {
	r.TaskID = strings.TrimSpace(r.TaskID)
	if r.TaskID == "" {
		return services.OfferInput{}, echo.NewHTTPError(http.StatusBadRequest, "taskId is required")
	}

	currency, err := parseCurrency(r.Currency)
	if err != nil {
		return services.OfferInput{}, err
	}

	return services.OfferInput{
		TaskID:     r.TaskID,
		HourlyRate: r.HourlyRate,
		Currency:   currency,
	}, nil
}
