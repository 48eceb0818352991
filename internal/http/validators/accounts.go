package validators

import (
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"

	dto "skill-market.com/skill-market/internal/data_models"
	"skill-market.com/skill-market/internal/services"
	"skill-market.com/skill-market/pkg/constants"
)

var mobileNumber = regexp.MustCompile(`^[0-9+]{10,15}$`)

const (
	passwordSpecials = "@$!%*?&"
	// bcrypt only hashes the first 72 bytes.
	maxPasswordBytes = 72
)

func ValidateUserSignup(r *dto.SignupRequest) (services.AccountInput, error) {
	if err := validateSignup(r, false, false); err != nil {
		return services.AccountInput{}, err
	}
	return accountInput(r), nil
}

func ValidateProviderSignup(r *dto.ProviderSignupRequest) (services.ProviderInput, error) {
	providerType := constants.ProviderType(strings.ToUpper(strings.TrimSpace(r.ProviderType)))
	if !providerType.Valid() {
		return services.ProviderInput{}, echo.NewHTTPError(http.StatusBadRequest, "providerType must be INDIVIDUAL or COMPANY")
	}

	// Company providers may sign up without personal names.
	if err := validateSignup(&r.SignupRequest, true, providerType == constants.ProviderTypeCompany); err != nil {
		return services.ProviderInput{}, err
	}

	return services.ProviderInput{
		AccountInput:      accountInput(&r.SignupRequest),
		ProviderType:      providerType,
		CompanyName:       strings.TrimSpace(r.CompanyName),
		BusinessTaxNumber: strings.TrimSpace(r.BusinessTaxNumber),
	}, nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if _, err := mail.ParseAddress(r.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

func validateSignup(r *dto.SignupRequest, provider, company bool) error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	if _, err := mail.ParseAddress(r.Email); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email address")
	}
	if len(r.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "password must be at most 72 bytes")
	}
	if provider && !isStrongPassword(r.Password) {
		return echo.NewHTTPError(
			http.StatusBadRequest,
			"password must contain an uppercase letter, a lowercase letter, a number and one of "+passwordSpecials,
		)
	}
	if !namesOptional(r, company) {
		if len(r.FirstName) < 2 {
			return echo.NewHTTPError(http.StatusBadRequest, "firstName must be at least 2 characters")
		}
		if len(r.LastName) < 2 {
			return echo.NewHTTPError(http.StatusBadRequest, "lastName must be at least 2 characters")
		}
	}
	if !mobileNumber.MatchString(r.MobileNumber) {
		return echo.NewHTTPError(http.StatusBadRequest, "mobileNumber must be 10 to 15 digits or +")
	}
	return nil
}

func namesOptional(r *dto.SignupRequest, company bool) bool {
	return company && r.FirstName == "" && r.LastName == ""
}

func isStrongPassword(p string) bool {
	var upper, lower, digit, special bool
	for _, c := range p {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		case strings.ContainsRune(passwordSpecials, c):
			special = true
		}
	}
	return upper && lower && digit && special
}

func accountInput(r *dto.SignupRequest) services.AccountInput {
	return services.AccountInput{
		Email:        r.Email,
		Password:     r.Password,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		FullName:     strings.TrimSpace(r.FullName),
		MobileNumber: r.MobileNumber,
		StreetNumber: r.StreetNumber,
		StreetName:   r.StreetName,
		City:         r.City,
		State:        r.State,
		PostCode:     r.PostCode,
	}
}
